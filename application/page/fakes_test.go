package page_test

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"pageauto/application/page"
	"pageauto/domain/entities"
	"pageauto/domain/interfaces"
)

// quietOpts - build options with a discarded logger for tests.
func quietOpts() *page.Options {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &page.Options{Logger: logger}
}

type findResult struct {
	els []interfaces.Element
	err error
}

func found(els ...interfaces.Element) findResult { return findResult{els: els} }
func failed(err error) findResult                { return findResult{err: err} }

func scopeKey(by entities.Strategy, pattern string) string {
	return string(by) + "|" + pattern
}

// popResult consumes the next scripted result for a scope key; the last
// result sticks, an unscripted key reports no matches.
func popResult(results map[string][]findResult, calls map[string]int, key string) findResult {
	calls[key]++
	queue := results[key]
	if len(queue) == 0 {
		return findResult{}
	}
	r := queue[0]
	if len(queue) > 1 {
		results[key] = queue[1:]
	}
	return r
}

// fakeSession is a scripted Session: lookups pop pre-programmed results and
// every call is counted.
type fakeSession struct {
	results  map[string][]findResult
	calls    map[string]int
	frameLog []string
	shots    int
	shot     []byte
	shotErr  error
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		results: make(map[string][]findResult),
		calls:   make(map[string]int),
		shot:    []byte("png-bytes"),
	}
}

func (s *fakeSession) on(by entities.Strategy, pattern string, results ...findResult) {
	key := scopeKey(by, pattern)
	s.results[key] = append(s.results[key], results...)
}

func (s *fakeSession) callCount(by entities.Strategy, pattern string) int {
	return s.calls[scopeKey(by, pattern)]
}

func (s *fakeSession) Navigate(context.Context, string) error { return nil }

func (s *fakeSession) FindElements(_ context.Context, by entities.Strategy, pattern string) ([]interfaces.Element, error) {
	r := popResult(s.results, s.calls, scopeKey(by, pattern))
	return r.els, r.err
}

func (s *fakeSession) SwitchFrame(_ context.Context, frame interfaces.Element) error {
	s.frameLog = append(s.frameLog, "frame:"+frame.(*fakeElement).id)
	return nil
}

func (s *fakeSession) SwitchToDefault(context.Context) error {
	s.frameLog = append(s.frameLog, "default")
	return nil
}

func (s *fakeSession) ExecuteScript(context.Context, string, []interface{}) (interface{}, error) {
	return nil, nil
}

func (s *fakeSession) Screenshot(context.Context) ([]byte, error) {
	s.shots++
	return s.shot, s.shotErr
}

func (s *fakeSession) GetCurrentURL(context.Context) (string, error) { return "", nil }
func (s *fakeSession) GetPageTitle(context.Context) (string, error)  { return "", nil }
func (s *fakeSession) Close() error                                  { return nil }

// fakeElement is a scripted Element.
type fakeElement struct {
	id      string
	results map[string][]findResult
	calls   map[string]int

	clicks   int
	typed    []string
	text     string
	attrs    map[string]string
	style    string
	styleLog []string

	clickErr error
	styleErr error
}

func newFakeElement(id string) *fakeElement {
	return &fakeElement{
		id:      id,
		results: make(map[string][]findResult),
		calls:   make(map[string]int),
		attrs:   make(map[string]string),
	}
}

func (e *fakeElement) on(by entities.Strategy, pattern string, results ...findResult) {
	key := scopeKey(by, pattern)
	e.results[key] = append(e.results[key], results...)
}

func (e *fakeElement) callCount(by entities.Strategy, pattern string) int {
	return e.calls[scopeKey(by, pattern)]
}

func (e *fakeElement) Click(context.Context) error {
	e.clicks++
	return e.clickErr
}

func (e *fakeElement) SendKeys(_ context.Context, text string) error {
	e.typed = append(e.typed, text)
	return nil
}

func (e *fakeElement) Text(context.Context) (string, error) { return e.text, nil }

func (e *fakeElement) Attribute(_ context.Context, name string) (string, error) {
	return e.attrs[name], nil
}

func (e *fakeElement) Style(context.Context) (string, error) { return e.style, nil }

func (e *fakeElement) SetStyle(_ context.Context, style string) error {
	if e.styleErr != nil {
		return e.styleErr
	}
	e.style = style
	e.styleLog = append(e.styleLog, style)
	return nil
}

func (e *fakeElement) FindElements(_ context.Context, by entities.Strategy, pattern string) ([]interfaces.Element, error) {
	r := popResult(e.results, e.calls, scopeKey(by, pattern))
	return r.els, r.err
}

var (
	_ interfaces.Session = (*fakeSession)(nil)
	_ interfaces.Element = (*fakeElement)(nil)
)
