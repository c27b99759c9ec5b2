package page

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/afero"
)

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Template is a page document with {key} placeholders, rendered against a
// mapping before parsing.
type Template struct {
	text string
	opts *Options
}

// NewTemplate - creates a template from document text.
func NewTemplate(text string, opts *Options) *Template {
	return &Template{text: text, opts: opts.normalized()}
}

// LoadTemplate - reads a template document from the filesystem.
func LoadTemplate(path string, opts *Options) (*Template, error) {
	o := opts.normalized()
	data, err := afero.ReadFile(o.FS, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read page template %q: %w", path, err)
	}
	return &Template{text: string(data), opts: o}, nil
}

// Render - substitutes every placeholder from the mapping and builds the
// resulting page tree. A placeholder without a mapping entry is an error.
func (t *Template) Render(mapping map[string]string) (*PageObject, error) {
	var missing []string
	rendered := placeholderPattern.ReplaceAllStringFunc(t.text, func(m string) string {
		key := m[1 : len(m)-1]
		value, ok := mapping[key]
		if !ok {
			missing = append(missing, key)
			return m
		}
		return value
	})
	if len(missing) > 0 {
		return nil, fmt.Errorf("template placeholders without values: %s", strings.Join(missing, ", "))
	}
	return parse([]byte(rendered), t.opts)
}
