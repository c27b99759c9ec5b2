package entities

import "fmt"

// Strategy identifies how a selector pattern is interpreted by the browser.
// The values mirror the WebDriver locator strategy names.
type Strategy string

const (
	ByCSSSelector     Strategy = "css selector"
	ByXPath           Strategy = "xpath"
	ByID              Strategy = "id"
	ByName            Strategy = "name"
	ByTagName         Strategy = "tag name"
	ByClassName       Strategy = "class name"
	ByLinkText        Strategy = "link text"
	ByPartialLinkText Strategy = "partial link text"
)

// Strategies - the full set of allowed locator strategies.
var Strategies = []Strategy{
	ByCSSSelector,
	ByXPath,
	ByID,
	ByName,
	ByTagName,
	ByClassName,
	ByLinkText,
	ByPartialLinkText,
}

// ParseStrategy - validates a strategy name from a page document.
// An empty name falls back to the default css selector strategy.
func ParseStrategy(name string) (Strategy, error) {
	if name == "" {
		return ByCSSSelector, nil
	}
	for _, s := range Strategies {
		if Strategy(name) == s {
			return s, nil
		}
	}
	return "", fmt.Errorf("invalid locator strategy %q, must be one of %v", name, Strategies)
}
