package demo

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"pageauto/application/page"
	"pageauto/domain/interfaces"
	"pageauto/infrastructure/browser"
	"pageauto/infrastructure/storage"
)

// Config selects how the example flow runs.
type Config struct {
	// Backend is the session adapter to use: "selenium" or "playwright".
	Backend string

	// Headless applies to the playwright backend.
	Headless bool

	// PagePath is the page document describing the GitHub index page.
	PagePath string

	// ScreenshotDir is where action screenshots are written.
	ScreenshotDir string
}

const (
	startURL          = "https://github.com"
	searchQuery       = "PageAuto"
	expectedSearchURL = "https://github.com/search?q=pageauto"
)

// Run - drives the GitHub search example: type a query into the header
// search box, click the first suggestion and check where the browser landed.
func Run(cfg Config) error {
	if err := godotenv.Load(); err != nil {
		// .env file is optional
		fmt.Println("Warning: .env file not found, using environment variables")
	}

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	session, err := newSession(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize browser: %w", err)
	}
	defer session.Close()

	ctx := context.Background()
	if err := session.Navigate(ctx, startURL); err != nil {
		return fmt.Errorf("failed to open %s: %w", startURL, err)
	}

	opts := &page.Options{
		Logger:      logger,
		Screenshots: storage.NewScreenshotStore(afero.NewOsFs(), cfg.ScreenshotDir),
	}
	index, err := page.Load(cfg.PagePath, opts)
	if err != nil {
		return fmt.Errorf("failed to load page document: %w", err)
	}
	index.Attach(session)

	input, err := index.At("header", "search", "input")
	if err != nil {
		return err
	}
	if err := input.SendKeys(ctx, searchQuery); err != nil {
		return fmt.Errorf("failed to type search query: %w", err)
	}

	popup, err := index.At("header", "search", "popup")
	if err != nil {
		return err
	}
	if err := popup.Click(ctx); err != nil {
		return fmt.Errorf("failed to click search suggestion: %w", err)
	}

	url, err := session.GetCurrentURL(ctx)
	if err != nil {
		return fmt.Errorf("failed to read current URL: %w", err)
	}
	if url == expectedSearchURL {
		logger.Infof("Jumped to search result: %s", url)
	} else {
		logger.Errorf("Failed to jump to search result, landed on: %s", url)
	}
	return nil
}

func newSession(cfg Config, logger *logrus.Logger) (interfaces.Session, error) {
	switch cfg.Backend {
	case "playwright":
		return browser.LaunchPlaywright(cfg.Headless, logger)
	case "selenium", "":
		return browser.StartChrome(logger)
	default:
		return nil, fmt.Errorf("unknown backend %q, must be selenium or playwright", cfg.Backend)
	}
}
