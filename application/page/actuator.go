package page

import (
	"context"
	"fmt"

	"pageauto/domain/interfaces"
)

// Click - clicks the element this descriptor designates.
func (p *PageObject) Click(ctx context.Context) error {
	return p.perform(ctx, "click", p.actions, func(ctx context.Context, el interfaces.Element) error {
		return el.Click(ctx)
	})
}

// SendKeys - types text into the element this descriptor designates.
func (p *PageObject) SendKeys(ctx context.Context, text string) error {
	return p.perform(ctx, "send_keys", p.actions, func(ctx context.Context, el interfaces.Element) error {
		return el.SendKeys(ctx, text)
	})
}

// Text - returns the element's visible text, switching frames as needed.
func (p *PageObject) Text(ctx context.Context) (string, error) {
	var out string
	err := p.perform(ctx, "text", p.reads, func(ctx context.Context, el interfaces.Element) error {
		var err error
		out, err = el.Text(ctx)
		return err
	})
	return out, err
}

// Attribute - returns an HTML attribute of the element, switching frames as needed.
func (p *PageObject) Attribute(ctx context.Context, name string) (string, error) {
	var out string
	err := p.perform(ctx, "attribute", p.reads, func(ctx context.Context, el interfaces.Element) error {
		var err error
		out, err = el.Attribute(ctx, name)
		return err
	})
	return out, err
}

// perform runs one action through the hook chain. After hooks run in reverse
// order for every hook whose Before succeeded, whether or not the action
// itself failed, so the browsing context is always left in a usable state.
func (p *PageObject) perform(ctx context.Context, action string, hooks []Hook, fn func(context.Context, interfaces.Element) error) error {
	if p.session == nil {
		return fmt.Errorf("%w: element %q cannot %s", ErrNoSession, p.cfg.Name, action)
	}

	inv := &Invocation{Page: p, Action: action}

	entered := 0
	var err error
	for _, h := range hooks {
		if err = h.Before(ctx, inv); err != nil {
			break
		}
		entered++
	}
	if err == nil {
		err = fn(ctx, inv.Target)
	}
	for i := entered - 1; i >= 0; i-- {
		hooks[i].After(ctx, inv)
	}
	return err
}
