package browser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tebeka/selenium"

	"pageauto/domain/entities"
)

func TestSeleniumBy(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		by  entities.Strategy
		exp string
	}{
		{entities.ByCSSSelector, selenium.ByCSSSelector},
		{entities.ByXPath, selenium.ByXPATH},
		{entities.ByID, selenium.ByID},
		{entities.ByName, selenium.ByName},
		{entities.ByTagName, selenium.ByTagName},
		{entities.ByClassName, selenium.ByClassName},
		{entities.ByLinkText, selenium.ByLinkText},
		{entities.ByPartialLinkText, selenium.ByPartialLinkText},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.exp, seleniumBy(tc.by), "strategy %s", tc.by)
	}
}

func TestClassifySeleniumErr(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		msg string
		exp entities.FailureKind
	}{
		{"no such element: Unable to locate element", entities.FailNoSuchElement},
		{"stale element reference: element is not attached", entities.FailStaleElement},
		{"no such frame", entities.FailNoSuchFrame},
		{"invalid selector: An invalid or illegal selector was specified", entities.FailInvalidSelector},
		{"invalid xpath expression //[", entities.FailInvalidSelector},
		{"timeout waiting for page", entities.FailTimeout},
		{"disconnected: not connected to DevTools", entities.FailUnknown},
	}
	for _, tc := range testCases {
		got := classifySeleniumErr(errors.New(tc.msg))
		assert.Equal(t, tc.exp, entities.KindOf(got), "message %q", tc.msg)
	}

	assert.NoError(t, classifySeleniumErr(nil))
}
