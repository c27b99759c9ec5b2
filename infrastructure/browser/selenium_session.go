package browser

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"

	"pageauto/domain/entities"
	"pageauto/domain/interfaces"
)

const chromeDriverPort = 9515

// SeleniumSession drives a browser through a WebDriver remote.
type SeleniumSession struct {
	wd      selenium.WebDriver
	service *selenium.Service
	logger  *logrus.Logger
}

// NewSeleniumSession - wraps an already-connected WebDriver.
func NewSeleniumSession(wd selenium.WebDriver, logger *logrus.Logger) *SeleniumSession {
	return &SeleniumSession{wd: wd, logger: logger}
}

// findChromeDriver - finds ChromeDriver executable path
func findChromeDriver() (string, error) {
	if path := os.Getenv("BROWSER_DRIVER_PATH"); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	commonPaths := []string{
		"/usr/local/bin/chromedriver",
		"/usr/bin/chromedriver",
		"/opt/homebrew/bin/chromedriver",
		filepath.Join(os.Getenv("HOME"), "bin", "chromedriver"),
	}

	for _, path := range commonPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	if path, err := exec.LookPath("chromedriver"); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("chromedriver not found. Please install it or set BROWSER_DRIVER_PATH environment variable")
}

// findChromeBinary - finds Chrome/Chromium browser executable path
func findChromeBinary() string {
	if path := os.Getenv("CHROME_BINARY_PATH"); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	chromePaths := []string{
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		"/Applications/Chromium.app/Contents/MacOS/Chromium",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		`C:\Program Files\Google\Chrome\Application\chrome.exe`,
		`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
	}

	for _, path := range chromePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	if path, err := exec.LookPath("google-chrome"); err == nil {
		return path
	}
	if path, err := exec.LookPath("chromium"); err == nil {
		return path
	}
	if path, err := exec.LookPath("chromium-browser"); err == nil {
		return path
	}

	return ""
}

// StartChrome - starts a local chromedriver service and opens a Chrome session.
func StartChrome(logger *logrus.Logger) (*SeleniumSession, error) {
	driverPath, err := findChromeDriver()
	if err != nil {
		return nil, fmt.Errorf("failed to find chromedriver: %w", err)
	}
	logger.Infof("Using ChromeDriver at: %s", driverPath)

	chromeBinary := findChromeBinary()
	if chromeBinary != "" {
		logger.Infof("Using Chrome binary at: %s", chromeBinary)
	}

	service, err := selenium.NewChromeDriverService(driverPath, chromeDriverPort)
	if err != nil {
		return nil, fmt.Errorf("failed to start chromedriver: %w", err)
	}

	caps := selenium.Capabilities{
		"browserName": "chrome",
	}
	chromeCaps := chrome.Capabilities{
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--disable-dev-shm-usage",
			"--no-sandbox",
		},
	}
	if chromeBinary != "" {
		chromeCaps.Path = chromeBinary
	}
	caps.AddChrome(chromeCaps)

	wd, err := selenium.NewRemote(caps, fmt.Sprintf("http://localhost:%d/wd/hub", chromeDriverPort))
	if err != nil {
		service.Stop()
		if strings.Contains(err.Error(), "cannot find Chrome binary") {
			return nil, fmt.Errorf("failed to create webdriver: Chrome browser not found. Please install Google Chrome or set CHROME_BINARY_PATH environment variable. Error: %w", err)
		}
		return nil, fmt.Errorf("failed to create webdriver: %w", err)
	}

	return &SeleniumSession{wd: wd, service: service, logger: logger}, nil
}

// Navigate - navigates browser to specified URL
func (s *SeleniumSession) Navigate(ctx context.Context, url string) error {
	s.logger.Infof("Navigating to: %s", url)
	return classifySeleniumErr(s.wd.Get(url))
}

// FindElements - finds elements scoped to the session root (or the currently
// switched frame).
func (s *SeleniumSession) FindElements(ctx context.Context, by entities.Strategy, pattern string) ([]interfaces.Element, error) {
	els, err := s.wd.FindElements(seleniumBy(by), pattern)
	if err != nil {
		return nil, classifySeleniumErr(err)
	}
	return s.wrapElements(els), nil
}

// SwitchFrame - switches the browsing context into a frame element.
func (s *SeleniumSession) SwitchFrame(ctx context.Context, frame interfaces.Element) error {
	el, ok := frame.(*seleniumElement)
	if !ok {
		return fmt.Errorf("frame element does not belong to this session")
	}
	return classifySeleniumErr(s.wd.SwitchFrame(el.el))
}

// SwitchToDefault - restores the top-level browsing context.
func (s *SeleniumSession) SwitchToDefault(ctx context.Context) error {
	return classifySeleniumErr(s.wd.SwitchFrame(nil))
}

// ExecuteScript - runs a script in the current page
func (s *SeleniumSession) ExecuteScript(ctx context.Context, script string, args []interface{}) (interface{}, error) {
	unwrapped := make([]interface{}, len(args))
	for i, arg := range args {
		if el, ok := arg.(*seleniumElement); ok {
			unwrapped[i] = el.el
			continue
		}
		unwrapped[i] = arg
	}
	result, err := s.wd.ExecuteScript(script, unwrapped)
	return result, classifySeleniumErr(err)
}

// Screenshot - captures the current page as PNG bytes
func (s *SeleniumSession) Screenshot(ctx context.Context) ([]byte, error) {
	png, err := s.wd.Screenshot()
	return png, classifySeleniumErr(err)
}

// GetCurrentURL - returns current page URL
func (s *SeleniumSession) GetCurrentURL(ctx context.Context) (string, error) {
	url, err := s.wd.CurrentURL()
	return url, classifySeleniumErr(err)
}

// GetPageTitle - returns current page title
func (s *SeleniumSession) GetPageTitle(ctx context.Context) (string, error) {
	title, err := s.wd.Title()
	return title, classifySeleniumErr(err)
}

// Close - closes the browser and stops the ChromeDriver service
func (s *SeleniumSession) Close() error {
	if s.wd != nil {
		s.wd.Quit()
	}
	if s.service != nil {
		s.service.Stop()
	}
	return nil
}

func (s *SeleniumSession) wrapElements(els []selenium.WebElement) []interfaces.Element {
	wrapped := make([]interfaces.Element, len(els))
	for i, el := range els {
		wrapped[i] = &seleniumElement{wd: s.wd, el: el}
	}
	return wrapped
}

type seleniumElement struct {
	wd selenium.WebDriver
	el selenium.WebElement
}

func (e *seleniumElement) Click(ctx context.Context) error {
	return classifySeleniumErr(e.el.Click())
}

func (e *seleniumElement) SendKeys(ctx context.Context, text string) error {
	return classifySeleniumErr(e.el.SendKeys(text))
}

func (e *seleniumElement) Text(ctx context.Context) (string, error) {
	text, err := e.el.Text()
	return text, classifySeleniumErr(err)
}

func (e *seleniumElement) Attribute(ctx context.Context, name string) (string, error) {
	value, err := e.el.GetAttribute(name)
	return value, classifySeleniumErr(err)
}

// Style - returns the inline style attribute. WebDriver reports a missing
// attribute as an error; that maps to an empty style here.
func (e *seleniumElement) Style(ctx context.Context) (string, error) {
	value, err := e.el.GetAttribute("style")
	if err != nil {
		return "", nil
	}
	return value, nil
}

func (e *seleniumElement) SetStyle(ctx context.Context, style string) error {
	_, err := e.wd.ExecuteScript("arguments[0].setAttribute('style', arguments[1]);", []interface{}{e.el, style})
	return classifySeleniumErr(err)
}

func (e *seleniumElement) FindElements(ctx context.Context, by entities.Strategy, pattern string) ([]interfaces.Element, error) {
	els, err := e.el.FindElements(seleniumBy(by), pattern)
	if err != nil {
		return nil, classifySeleniumErr(err)
	}
	wrapped := make([]interfaces.Element, len(els))
	for i, el := range els {
		wrapped[i] = &seleniumElement{wd: e.wd, el: el}
	}
	return wrapped, nil
}

// seleniumBy - maps a locator strategy to its WebDriver constant.
func seleniumBy(by entities.Strategy) string {
	switch by {
	case entities.ByXPath:
		return selenium.ByXPATH
	case entities.ByID:
		return selenium.ByID
	case entities.ByName:
		return selenium.ByName
	case entities.ByTagName:
		return selenium.ByTagName
	case entities.ByClassName:
		return selenium.ByClassName
	case entities.ByLinkText:
		return selenium.ByLinkText
	case entities.ByPartialLinkText:
		return selenium.ByPartialLinkText
	default:
		return selenium.ByCSSSelector
	}
}

// classifySeleniumErr - tags a WebDriver error with its failure kind.
func classifySeleniumErr(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	var kind entities.FailureKind
	switch {
	case strings.Contains(msg, "no such element"):
		kind = entities.FailNoSuchElement
	case strings.Contains(msg, "stale element"):
		kind = entities.FailStaleElement
	case strings.Contains(msg, "no such frame"):
		kind = entities.FailNoSuchFrame
	case strings.Contains(msg, "invalid selector"), strings.Contains(msg, "invalid xpath"):
		kind = entities.FailInvalidSelector
	case strings.Contains(msg, "timeout"):
		kind = entities.FailTimeout
	default:
		kind = entities.FailUnknown
	}
	return entities.NewFailure(kind, err)
}

// Ensure SeleniumSession implements Session interface
var (
	_ interfaces.Session = (*SeleniumSession)(nil)
	_ interfaces.Element = (*seleniumElement)(nil)
)
