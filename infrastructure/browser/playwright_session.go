package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"

	"pageauto/domain/entities"
	"pageauto/domain/interfaces"
)

// PlaywrightSession drives a browser through Playwright. Frame switching is
// modeled by moving the search scope between the main frame and the frame an
// element points into.
type PlaywrightSession struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	scope   playwright.Frame
	logger  *logrus.Logger
}

// NewPlaywrightSession - wraps an already-open Playwright page.
func NewPlaywrightSession(page playwright.Page, logger *logrus.Logger) *PlaywrightSession {
	return &PlaywrightSession{
		page:   page,
		scope:  page.MainFrame(),
		logger: logger,
	}
}

// LaunchPlaywright - starts Playwright, launches Chromium and opens a page.
func LaunchPlaywright(headless bool, logger *logrus.Logger) (*PlaywrightSession, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browserContext, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  1280,
			Height: 720,
		},
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := browserContext.NewPage()
	if err != nil {
		browserContext.Close()
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	session := NewPlaywrightSession(page, logger)
	session.pw = pw
	session.browser = browser
	session.context = browserContext
	return session, nil
}

// Navigate - navigates to the specified URL
func (s *PlaywrightSession) Navigate(ctx context.Context, url string) error {
	s.logger.Infof("Navigating to: %s", url)
	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	return classifyPlaywrightErr(err)
}

// FindElements - finds elements scoped to the current frame context.
func (s *PlaywrightSession) FindElements(ctx context.Context, by entities.Strategy, pattern string) ([]interfaces.Element, error) {
	handles, err := s.scope.QuerySelectorAll(playwrightSelector(by, pattern))
	if err != nil {
		return nil, classifyPlaywrightErr(err)
	}
	wrapped := make([]interfaces.Element, len(handles))
	for i, handle := range handles {
		wrapped[i] = &playwrightElement{handle: handle}
	}
	return wrapped, nil
}

// SwitchFrame - moves the search scope into the frame an element points into.
func (s *PlaywrightSession) SwitchFrame(ctx context.Context, frame interfaces.Element) error {
	el, ok := frame.(*playwrightElement)
	if !ok {
		return fmt.Errorf("frame element does not belong to this session")
	}
	content, err := el.handle.ContentFrame()
	if err != nil {
		return classifyPlaywrightErr(err)
	}
	if content == nil {
		return entities.NewFailure(entities.FailNoSuchFrame, fmt.Errorf("element has no content frame"))
	}
	s.scope = content
	return nil
}

// SwitchToDefault - restores the search scope to the main frame.
func (s *PlaywrightSession) SwitchToDefault(ctx context.Context) error {
	s.scope = s.page.MainFrame()
	return nil
}

// ExecuteScript - runs a script in the current page
func (s *PlaywrightSession) ExecuteScript(ctx context.Context, script string, args []interface{}) (interface{}, error) {
	var result interface{}
	var err error
	if len(args) > 0 {
		result, err = s.page.Evaluate(script, args[0])
	} else {
		result, err = s.page.Evaluate(script)
	}
	return result, classifyPlaywrightErr(err)
}

// Screenshot - captures the current page as PNG bytes
func (s *PlaywrightSession) Screenshot(ctx context.Context) ([]byte, error) {
	png, err := s.page.Screenshot()
	return png, classifyPlaywrightErr(err)
}

// GetCurrentURL - returns the current page URL
func (s *PlaywrightSession) GetCurrentURL(ctx context.Context) (string, error) {
	return s.page.URL(), nil
}

// GetPageTitle - returns the current page title
func (s *PlaywrightSession) GetPageTitle(ctx context.Context) (string, error) {
	title, err := s.page.Title()
	return title, classifyPlaywrightErr(err)
}

// Close - closes the page, context and browser owned by this session
func (s *PlaywrightSession) Close() error {
	if s.page != nil {
		s.page.Close()
	}
	if s.context != nil {
		s.context.Close()
	}
	if s.browser != nil {
		s.browser.Close()
	}
	if s.pw != nil {
		return s.pw.Stop()
	}
	return nil
}

type playwrightElement struct {
	handle playwright.ElementHandle
}

func (e *playwrightElement) Click(ctx context.Context) error {
	return classifyPlaywrightErr(e.handle.Click())
}

func (e *playwrightElement) SendKeys(ctx context.Context, text string) error {
	return classifyPlaywrightErr(e.handle.Type(text))
}

func (e *playwrightElement) Text(ctx context.Context) (string, error) {
	text, err := e.handle.TextContent()
	return text, classifyPlaywrightErr(err)
}

func (e *playwrightElement) Attribute(ctx context.Context, name string) (string, error) {
	value, err := e.handle.GetAttribute(name)
	return value, classifyPlaywrightErr(err)
}

func (e *playwrightElement) Style(ctx context.Context) (string, error) {
	value, err := e.handle.GetAttribute("style")
	if err != nil {
		return "", nil
	}
	return value, nil
}

func (e *playwrightElement) SetStyle(ctx context.Context, style string) error {
	_, err := e.handle.Evaluate("(el, style) => el.setAttribute('style', style)", style)
	return classifyPlaywrightErr(err)
}

func (e *playwrightElement) FindElements(ctx context.Context, by entities.Strategy, pattern string) ([]interfaces.Element, error) {
	handles, err := e.handle.QuerySelectorAll(playwrightSelector(by, pattern))
	if err != nil {
		return nil, classifyPlaywrightErr(err)
	}
	wrapped := make([]interfaces.Element, len(handles))
	for i, handle := range handles {
		wrapped[i] = &playwrightElement{handle: handle}
	}
	return wrapped, nil
}

// playwrightSelector - translates a locator strategy and pattern into a
// Playwright selector-engine expression.
func playwrightSelector(by entities.Strategy, pattern string) string {
	switch by {
	case entities.ByXPath:
		return "xpath=" + pattern
	case entities.ByID:
		return fmt.Sprintf("[id=%q]", pattern)
	case entities.ByName:
		return fmt.Sprintf("[name=%q]", pattern)
	case entities.ByTagName:
		return pattern
	case entities.ByClassName:
		return "." + pattern
	case entities.ByLinkText:
		return fmt.Sprintf("a:text-is(%q)", pattern)
	case entities.ByPartialLinkText:
		return fmt.Sprintf("a:has-text(%q)", pattern)
	default:
		return pattern
	}
}

// classifyPlaywrightErr - tags a Playwright error with its failure kind.
func classifyPlaywrightErr(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	var kind entities.FailureKind
	switch {
	case strings.Contains(msg, "timeout"):
		kind = entities.FailTimeout
	case strings.Contains(msg, "detached"), strings.Contains(msg, "stale"):
		kind = entities.FailStaleElement
	case strings.Contains(msg, "unknown engine"), strings.Contains(msg, "while parsing selector"):
		kind = entities.FailInvalidSelector
	case strings.Contains(msg, "no node found"), strings.Contains(msg, "not found"):
		kind = entities.FailNoSuchElement
	default:
		kind = entities.FailUnknown
	}
	return entities.NewFailure(kind, err)
}

// Ensure PlaywrightSession implements Session interface
var (
	_ interfaces.Session = (*PlaywrightSession)(nil)
	_ interfaces.Element = (*playwrightElement)(nil)
)
