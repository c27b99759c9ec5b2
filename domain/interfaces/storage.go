package interfaces

// ScreenshotSink persists before/after action screenshots
type ScreenshotSink interface {
	// Save persists one capture and returns the path it was written to
	Save(element, action, stage string, png []byte) (string, error)
}
