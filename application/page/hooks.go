package page

import (
	"context"
	"fmt"
	"strings"

	"pageauto/domain/entities"
	"pageauto/domain/interfaces"
)

// Invocation carries one action's state through the hook chain.
type Invocation struct {
	// Page is the element the action targets.
	Page *PageObject

	// Action is the action name ("click", "send_keys", ...).
	Action string

	// Target is the resolved element, set by the resolve hook.
	Target interfaces.Element

	inFrame    bool
	origStyle  string
	styleSaved bool
}

// Hook runs before and after a page action. Before errors abort the action;
// After always runs for every hook whose Before succeeded, in reverse order.
type Hook interface {
	Before(ctx context.Context, inv *Invocation) error
	After(ctx context.Context, inv *Invocation)
}

// frameHook switches the browsing context into the element's enclosing frame
// and unconditionally restores the top-level context afterwards.
type frameHook struct{}

func (frameHook) Before(ctx context.Context, inv *Invocation) error {
	p := inv.Page
	if p.frame == nil {
		return nil
	}
	frameEl, err := p.frame.ElementHandle(ctx)
	if err != nil {
		return err
	}
	if frameEl == nil {
		return fmt.Errorf("%w: %q", ErrFrameNotFound, p.frame.cfg.Name)
	}
	if err := p.session.SwitchFrame(ctx, frameEl); err != nil {
		return fmt.Errorf("failed to switch to frame %q: %w", p.frame.cfg.Name, err)
	}
	p.log.Debugf("switched to frame %q", p.frame.cfg.Name)
	inv.inFrame = true
	return nil
}

func (frameHook) After(ctx context.Context, inv *Invocation) {
	if !inv.inFrame {
		return
	}
	if err := inv.Page.session.SwitchToDefault(ctx); err != nil {
		inv.Page.log.Warnf("failed to switch back to default content: %v", err)
		return
	}
	inv.Page.log.Debugf("switched back to default content")
}

// resolveHook resolves the action target. Runs after the frame switch so the
// lookup happens in the right browsing context.
type resolveHook struct{}

func (resolveHook) Before(ctx context.Context, inv *Invocation) error {
	target, err := inv.Page.ElementHandle(ctx)
	if err != nil {
		return err
	}
	if target == nil {
		return fmt.Errorf("%w: %q", ErrElementNotFound, inv.Page.cfg.Name)
	}
	inv.Target = target
	return nil
}

func (resolveHook) After(context.Context, *Invocation) {}

const highlightBorder = "border: 2px solid red;"

// highlightHook outlines the target element during the action and restores
// its original style afterwards, tolerating the element having disappeared.
type highlightHook struct{}

func (highlightHook) Before(ctx context.Context, inv *Invocation) error {
	orig, err := inv.Target.Style(ctx)
	if err != nil {
		return fmt.Errorf("failed to read style of %q: %w", inv.Page.cfg.Name, err)
	}
	inv.origStyle = orig
	inv.styleSaved = true

	style := strings.TrimSpace(orig)
	if style != "" && !strings.HasSuffix(style, ";") {
		style += ";"
	}
	if err := inv.Target.SetStyle(ctx, strings.TrimSpace(style+" "+highlightBorder)); err != nil {
		return fmt.Errorf("failed to highlight %q: %w", inv.Page.cfg.Name, err)
	}
	return nil
}

func (highlightHook) After(ctx context.Context, inv *Invocation) {
	if !inv.styleSaved {
		return
	}
	if err := inv.Target.SetStyle(ctx, inv.origStyle); err != nil {
		switch entities.KindOf(err) {
		case entities.FailNoSuchElement, entities.FailStaleElement:
			// element is gone, nothing to restore
		default:
			inv.Page.log.Warnf("failed to restore style of %q: %v", inv.Page.cfg.Name, err)
		}
	}
}

// screenshotHook captures the page before and after the action and hands the
// images to the configured sink.
type screenshotHook struct {
	sink interfaces.ScreenshotSink
}

func (h screenshotHook) Before(ctx context.Context, inv *Invocation) error {
	h.capture(ctx, inv, "before")
	return nil
}

func (h screenshotHook) After(ctx context.Context, inv *Invocation) {
	h.capture(ctx, inv, "after")
}

func (h screenshotHook) capture(ctx context.Context, inv *Invocation, stage string) {
	png, err := inv.Page.session.Screenshot(ctx)
	if err != nil {
		inv.Page.log.Warnf("failed to capture %s screenshot for %q: %v", stage, inv.Page.cfg.Name, err)
		return
	}
	path, err := h.sink.Save(inv.Page.cfg.Name, inv.Action, stage, png)
	if err != nil {
		inv.Page.log.Warnf("failed to save %s screenshot for %q: %v", stage, inv.Page.cfg.Name, err)
		return
	}
	inv.Page.log.Debugf("saved screenshot %s", path)
}
