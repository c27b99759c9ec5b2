package page

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"pageauto/domain/entities"
	"pageauto/domain/interfaces"
)

var (
	// ErrNoSession - an operation was invoked before a session was attached
	ErrNoSession = errors.New("no session attached")

	// ErrAncestorNotFound - a parent element could not be resolved in time
	ErrAncestorNotFound = errors.New("ancestor not found")

	// ErrFrameNotFound - an enclosing frame could not be resolved in time
	ErrFrameNotFound = errors.New("frame not found")

	// ErrElementNotFound - the action target could not be resolved in time
	ErrElementNotFound = errors.New("element not found")

	// ErrUnknownChild - Child was called with a name the document never declared
	ErrUnknownChild = errors.New("unknown child element")
)

// PageObject describes and operates one named element of a web page. A tree
// of page objects is built once from a page document and never restructured;
// only the attached session and the per-node match cache change afterwards.
type PageObject struct {
	cfg      entities.ElementConfig
	parent   *PageObject
	frame    *PageObject
	children map[string]*PageObject

	session interfaces.Session
	log     *logrus.Logger
	actions []Hook
	reads   []Hook

	// match cache, valid for cfg.Gap after lastFound
	matches   []interfaces.Element
	lastFound time.Time
}

// Name returns the element name from the page document.
func (p *PageObject) Name() string {
	return p.cfg.Name
}

// Config returns the element's locator configuration.
func (p *PageObject) Config() entities.ElementConfig {
	return p.cfg
}

// Parent returns the page object this element is scoped under, nil for the root.
func (p *PageObject) Parent() *PageObject {
	return p.parent
}

// Frame returns the nearest frame-marked ancestor, nil when the element lives
// in the top-level browsing context.
func (p *PageObject) Frame() *PageObject {
	return p.frame
}

// Child - returns the named child element.
func (p *PageObject) Child(name string) (*PageObject, error) {
	child, ok := p.children[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q has no child %q", ErrUnknownChild, p.cfg.Name, name)
	}
	return child, nil
}

// At - descends through several levels of the tree at once.
func (p *PageObject) At(path ...string) (*PageObject, error) {
	node := p
	for _, name := range path {
		child, err := node.Child(name)
		if err != nil {
			return nil, err
		}
		node = child
	}
	return node, nil
}

// ChildNames returns the declared child names in sorted order.
func (p *PageObject) ChildNames() []string {
	names := make([]string, 0, len(p.children))
	for name := range p.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p *PageObject) String() string {
	parent := "none"
	if p.parent != nil {
		parent = p.parent.cfg.Name
	}
	return fmt.Sprintf("<PageObject name=%q pattern=%q parent=%s>", p.cfg.Name, p.cfg.Pattern, parent)
}

// Attach - attaches a browser session to this element and, depth-first, to
// every element below it.
func (p *PageObject) Attach(session interfaces.Session) {
	p.session = session
	for _, child := range p.children {
		child.Attach(session)
	}
}

// Resolve finds the elements matching this descriptor. A result cached less
// than one gap ago is returned as is. Absence is not an error: a nil slice
// with a nil error means the pattern matched nothing within the timeout.
func (p *PageObject) Resolve(ctx context.Context) ([]interfaces.Element, error) {
	if p.session == nil {
		return nil, fmt.Errorf("%w: element %q", ErrNoSession, p.cfg.Name)
	}
	if p.matches != nil && time.Since(p.lastFound) < p.cfg.Gap {
		return p.matches, nil
	}
	p.matches = nil

	find, err := p.searchScope(ctx)
	if err != nil {
		return nil, err
	}

	found, err := p.await(ctx, find)
	if err != nil {
		return nil, err
	}
	if found == nil {
		p.log.Debugf("timeout finding element %s<%s(%q)>", p.cfg.Name, p.cfg.By, p.cfg.Pattern)
		return nil, nil
	}

	p.matches = found
	p.lastFound = time.Now()
	p.log.Debugf("found element %s<%s(%q)>, %d match(es)", p.cfg.Name, p.cfg.By, p.cfg.Pattern, len(found))
	return found, nil
}

// ElementHandle returns the match this descriptor designates, nil when the
// pattern matched nothing or the ordinal index is out of bounds.
func (p *PageObject) ElementHandle(ctx context.Context) (interfaces.Element, error) {
	found, err := p.Resolve(ctx)
	if err != nil || found == nil {
		return nil, err
	}
	if p.cfg.Order >= len(found) {
		return nil, nil
	}
	return found[p.cfg.Order], nil
}

// Count returns how many elements currently match this descriptor.
func (p *PageObject) Count(ctx context.Context) (int, error) {
	found, err := p.Resolve(ctx)
	if err != nil {
		return 0, err
	}
	return len(found), nil
}

// searchScope picks where the pattern is searched: the session root for a
// parentless element or a child of a frame, the parent's resolved element
// otherwise. Resolving the parent happens first, recursively.
func (p *PageObject) searchScope(ctx context.Context) (func(context.Context) ([]interfaces.Element, error), error) {
	if p.parent == nil || p.parent.cfg.IsFrame {
		return func(ctx context.Context) ([]interfaces.Element, error) {
			return p.session.FindElements(ctx, p.cfg.By, p.cfg.Pattern)
		}, nil
	}

	anchor, err := p.parent.ElementHandle(ctx)
	if err != nil {
		return nil, err
	}
	if anchor == nil {
		return nil, fmt.Errorf("%w: ancestor %q of %q", ErrAncestorNotFound, p.parent.cfg.Name, p.cfg.Name)
	}
	return func(ctx context.Context) ([]interfaces.Element, error) {
		return anchor.FindElements(ctx, p.cfg.By, p.cfg.Pattern)
	}, nil
}

// await polls for a non-empty match list until the timeout elapses, sleeping
// one gap between attempts. Failures of an ignored kind are swallowed and
// retried; any other failure aborts the wait immediately.
func (p *PageObject) await(ctx context.Context, find func(context.Context) ([]interfaces.Element, error)) ([]interfaces.Element, error) {
	deadline := time.Now().Add(p.cfg.Timeout)
	for {
		found, err := find(ctx)
		if err != nil {
			if !p.cfg.Ignores(entities.KindOf(err)) {
				return nil, fmt.Errorf("failed to find element %q: %w", p.cfg.Name, err)
			}
		} else if len(found) > 0 {
			return found, nil
		}

		if !time.Now().Before(deadline) {
			return nil, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.cfg.Gap):
		}
	}
}
