package storage

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"pageauto/domain/interfaces"
)

const shotTimeFormat = "20060102150405"

// ScreenshotStore persists action screenshots as timestamped PNG files,
// named <timestamp>_<element>_<stage>_<action>.png.
type ScreenshotStore struct {
	fs  afero.Fs
	dir string
	now func() time.Time
}

// NewScreenshotStore - creates a screenshot store writing into dir. An empty
// dir means the working directory.
func NewScreenshotStore(fs afero.Fs, dir string) *ScreenshotStore {
	return &ScreenshotStore{
		fs:  fs,
		dir: dir,
		now: time.Now,
	}
}

// Save - persists one capture and returns the path it was written to.
func (s *ScreenshotStore) Save(element, action, stage string, png []byte) (string, error) {
	ts := s.now()
	name := fmt.Sprintf("%s%06d_%s_%s_%s.png",
		ts.Format(shotTimeFormat), ts.Nanosecond()/1000, element, stage, action)

	path := name
	if s.dir != "" {
		if err := s.fs.MkdirAll(s.dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create screenshot directory: %w", err)
		}
		path = filepath.Join(s.dir, name)
	}

	if err := afero.WriteFile(s.fs, path, png, 0644); err != nil {
		return "", fmt.Errorf("failed to save screenshot: %w", err)
	}
	return path, nil
}

// Ensure ScreenshotStore implements ScreenshotSink interface
var _ interfaces.ScreenshotSink = (*ScreenshotStore)(nil)
