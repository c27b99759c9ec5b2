package interfaces

import (
	"context"

	"pageauto/domain/entities"
)

// Element is a live handle to a located page element
type Element interface {
	// Click clicks the element
	Click(ctx context.Context) error

	// SendKeys types text into the element
	SendKeys(ctx context.Context, text string) error

	// Text returns the visible text of the element
	Text(ctx context.Context) (string, error)

	// Attribute returns the value of an HTML attribute
	Attribute(ctx context.Context, name string) (string, error)

	// Style returns the element's style attribute
	Style(ctx context.Context) (string, error)

	// SetStyle overwrites the element's style attribute
	SetStyle(ctx context.Context, style string) error

	// FindElements finds matching elements scoped under this element
	FindElements(ctx context.Context, by entities.Strategy, pattern string) ([]Element, error)
}

// Session defines the remote browser-control surface the page layer drives.
// Implementations live in infrastructure/browser.
type Session interface {
	// Navigate navigates to a URL
	Navigate(ctx context.Context, url string) error

	// FindElements finds matching elements scoped to the session root
	// (or to the currently switched frame)
	FindElements(ctx context.Context, by entities.Strategy, pattern string) ([]Element, error)

	// SwitchFrame switches the browsing context into a frame element
	SwitchFrame(ctx context.Context, frame Element) error

	// SwitchToDefault restores the top-level browsing context
	SwitchToDefault(ctx context.Context) error

	// ExecuteScript runs a script in the page
	ExecuteScript(ctx context.Context, script string, args []interface{}) (interface{}, error)

	// Screenshot captures the current page as PNG bytes
	Screenshot(ctx context.Context) ([]byte, error)

	// GetCurrentURL returns the current page URL
	GetCurrentURL(ctx context.Context) (string, error)

	// GetPageTitle returns the current page title
	GetPageTitle(ctx context.Context) (string, error)

	// Close closes the browser session
	Close() error
}
