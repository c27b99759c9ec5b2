package entities

import "time"

// Wait-loop defaults applied when a page document omits the field.
const (
	DefaultTimeout = 5 * time.Second
	DefaultGap     = 1 * time.Second
)

// ElementConfig describes one named element of a page: how to locate it and
// how patiently to wait for it. Built once from the page document and never
// mutated afterwards.
type ElementConfig struct {
	Name    string
	Pattern string
	By      Strategy
	Timeout time.Duration
	Gap     time.Duration
	Ignore  []FailureKind
	IsFrame bool
	Order   int
}

// Ignores - reports whether a failure kind is absorbed during the wait loop.
func (c ElementConfig) Ignores(kind FailureKind) bool {
	for _, k := range c.Ignore {
		if k == kind {
			return true
		}
	}
	return false
}
