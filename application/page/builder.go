package page

import (
	"fmt"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"pageauto/domain/entities"
)

// eleTreeKey - the document key holding a node's child elements.
const eleTreeKey = "ele_tree"

// reservedNames cannot be used as element names: they collide with the child
// map key or with native element operations.
var reservedNames = map[string]struct{}{
	eleTreeKey:      {},
	"click":         {},
	"send_keys":     {},
	"text":          {},
	"attribute":     {},
	"style":         {},
	"set_style":     {},
	"find_elements": {},
}

// nodeSpec mirrors one element entry of a page document. Pointer fields
// distinguish "absent" from a zero value so defaults apply only when the
// document says nothing.
type nodeSpec struct {
	Pattern  *string              `yaml:"pattern"`
	By       string               `yaml:"by"`
	Timeout  *float64             `yaml:"timeout"`
	Gap      *float64             `yaml:"gap"`
	Ignore   []string             `yaml:"ignore"`
	IsFrame  bool                 `yaml:"is_frame"`
	Order    *int                 `yaml:"order"`
	Children map[string]*nodeSpec `yaml:"ele_tree"`
}

// Load - reads a page document from the filesystem and builds its tree.
func Load(path string, opts *Options) (*PageObject, error) {
	o := opts.normalized()
	data, err := afero.ReadFile(o.FS, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read page document %q: %w", path, err)
	}
	return parse(data, o)
}

// Parse - builds a page tree from a YAML page document.
func Parse(data []byte, opts *Options) (*PageObject, error) {
	return parse(data, opts.normalized())
}

func parse(data []byte, o *Options) (*PageObject, error) {
	var doc map[string]*nodeSpec
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse page document: %w", err)
	}
	if len(doc) != 1 {
		return nil, fmt.Errorf("page document must have exactly one root element, got %d", len(doc))
	}

	for name, spec := range doc {
		return buildNode(name, spec, nil, nil, o)
	}
	return nil, nil // unreachable
}

// buildNode validates one element entry and recursively builds its children.
// frame is the nearest frame-marked ancestor; a frame-marked node becomes the
// frame of its own subtree.
func buildNode(name string, spec *nodeSpec, parent, frame *PageObject, o *Options) (*PageObject, error) {
	if _, ok := reservedNames[name]; ok {
		return nil, fmt.Errorf("element name %q is reserved", name)
	}
	if spec == nil || spec.Pattern == nil || *spec.Pattern == "" {
		return nil, fmt.Errorf("element %q must have a pattern", name)
	}

	by, err := entities.ParseStrategy(spec.By)
	if err != nil {
		return nil, fmt.Errorf("element %q: %w", name, err)
	}

	ignore := []entities.FailureKind{entities.FailNoSuchElement}
	if spec.Ignore != nil {
		ignore = make([]entities.FailureKind, 0, len(spec.Ignore))
		for _, raw := range spec.Ignore {
			kind, err := entities.ParseFailureKind(raw)
			if err != nil {
				return nil, fmt.Errorf("element %q: %w", name, err)
			}
			ignore = append(ignore, kind)
		}
	}

	cfg := entities.ElementConfig{
		Name:    name,
		Pattern: *spec.Pattern,
		By:      by,
		Timeout: entities.DefaultTimeout,
		Gap:     entities.DefaultGap,
		Ignore:  ignore,
		IsFrame: spec.IsFrame,
	}
	if spec.Timeout != nil {
		cfg.Timeout = time.Duration(*spec.Timeout * float64(time.Second))
	}
	if spec.Gap != nil {
		cfg.Gap = time.Duration(*spec.Gap * float64(time.Second))
	}
	if spec.Order != nil {
		if *spec.Order < 0 {
			return nil, fmt.Errorf("element %q: order must not be negative", name)
		}
		cfg.Order = *spec.Order
	}

	node := &PageObject{
		cfg:      cfg,
		parent:   parent,
		frame:    frame,
		children: make(map[string]*PageObject, len(spec.Children)),
		log:      o.Logger,
		actions:  o.actionChain(),
		reads:    o.readChain(),
	}

	childFrame := frame
	if cfg.IsFrame {
		childFrame = node
	}
	for childName, childSpec := range spec.Children {
		child, err := buildNode(childName, childSpec, node, childFrame, o)
		if err != nil {
			return nil, err
		}
		node.children[childName] = child
	}

	return node, nil
}
