package browser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"pageauto/domain/entities"
)

func TestPlaywrightSelector(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		by      entities.Strategy
		pattern string
		exp     string
	}{
		{entities.ByCSSSelector, "div.header", "div.header"},
		{entities.ByXPath, "//div[@id='x']", "xpath=//div[@id='x']"},
		{entities.ByID, "login", `[id="login"]`},
		{entities.ByName, "q", `[name="q"]`},
		{entities.ByTagName, "button", "button"},
		{entities.ByClassName, "btn-primary", ".btn-primary"},
		{entities.ByLinkText, "Sign in", `a:text-is("Sign in")`},
		{entities.ByPartialLinkText, "Sign", `a:has-text("Sign")`},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.exp, playwrightSelector(tc.by, tc.pattern), "strategy %s", tc.by)
	}
}

func TestClassifyPlaywrightErr(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		msg string
		exp entities.FailureKind
	}{
		{"timeout 30000ms exceeded", entities.FailTimeout},
		{"element is detached from document", entities.FailStaleElement},
		{"unknown engine bogus while parsing selector bogus=x", entities.FailInvalidSelector},
		{"no node found for selector", entities.FailNoSuchElement},
		{"browser has been closed", entities.FailUnknown},
	}
	for _, tc := range testCases {
		got := classifyPlaywrightErr(errors.New(tc.msg))
		assert.Equal(t, tc.exp, entities.KindOf(got), "message %q", tc.msg)
	}

	assert.NoError(t, classifyPlaywrightErr(nil))
}
