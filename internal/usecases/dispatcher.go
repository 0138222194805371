package usecases

import (
	"context"
	"fmt"
	"sync"

	"github.com/miskreant/GitWebLinks/internal/domain"
)

// Dispatcher carries out the post-generation action for a link and owns the
// two actionable notification flows. Notification follow-ups run detached
// from the invoking pipeline so that a pending user response never delays
// command completion; Wait blocks until every detached flow has settled.
type Dispatcher struct {
	clipboard domain.Clipboard
	opener    domain.URLOpener
	settings  domain.SettingsOpener
	notifier  domain.Notifier
	logger    Logger

	// showCopyMessage enables the follow-up notification after a copy.
	showCopyMessage bool

	wg sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with the given collaborators.
func NewDispatcher(
	clipboard domain.Clipboard,
	opener domain.URLOpener,
	settings domain.SettingsOpener,
	notifier domain.Notifier,
	log Logger,
	showCopyMessage bool,
) *Dispatcher {
	return &Dispatcher{
		clipboard:       clipboard,
		opener:          opener,
		settings:        settings,
		notifier:        notifier,
		logger:          log,
		showCopyMessage: showCopyMessage,
	}
}

// Dispatch performs action on url. A copy returns as soon as the clipboard
// write has finished; its follow-up notification is spawned detached.
func (d *Dispatcher) Dispatch(ctx context.Context, action domain.LinkAction, url string) error {
	switch action {
	case domain.ActionOpen:
		return d.opener.Open(ctx, url)

	case domain.ActionCopy:
		if err := d.clipboard.Write(ctx, url); err != nil {
			return fmt.Errorf("write link to clipboard: %w", err)
		}
		if d.showCopyMessage {
			d.notifyDetached(ctx, msgLinkCopied, domain.NotificationAction{
				Title: actionTitleOpenInBrowser,
				Tag:   domain.ActionTagOpen,
			}, url)
		}
		return nil

	default:
		return fmt.Errorf("unknown link action %q", action)
	}
}

// OfferSettings shows an error notification whose single action opens the
// user's settings. Like the copy follow-up, the flow runs detached.
func (d *Dispatcher) OfferSettings(ctx context.Context, message string) {
	d.notifyDetached(ctx, message, domain.NotificationAction{
		Title: actionTitleOpenSettings,
		Tag:   domain.ActionTagSettings,
	}, "")
}

// notifyDetached runs the notification flow without gating the caller on the
// user's eventual response.
func (d *Dispatcher) notifyDetached(ctx context.Context, message string, action domain.NotificationAction, url string) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		tag, err := d.notifier.Ask(ctx, message, action)
		if err != nil {
			d.logger.Warn(ctx, "notification failed", map[string]interface{}{
				"error": err.Error(),
			})
			return
		}
		d.handleAction(ctx, tag, url)
	}()
}

// handleAction carries out the user's chosen notification action. Both
// notification flows land here, keyed by the action tag. An empty tag means
// the notification was dismissed and nothing happens.
func (d *Dispatcher) handleAction(ctx context.Context, tag, url string) {
	switch tag {
	case domain.ActionTagOpen:
		if err := d.opener.Open(ctx, url); err != nil {
			d.logger.Warn(ctx, "could not open link in browser", map[string]interface{}{
				"url":   url,
				"error": err.Error(),
			})
		}

	case domain.ActionTagSettings:
		if err := d.settings.OpenSettings(ctx); err != nil {
			d.logger.Warn(ctx, "could not open settings", map[string]interface{}{
				"error": err.Error(),
			})
		}

	case "":
		// Dismissed.

	default:
		d.logger.Warn(ctx, "unknown notification action", map[string]interface{}{
			"tag": tag,
		})
	}
}

// Wait blocks until every detached notification flow has finished. The
// command boundary calls this before exiting so a pending prompt is never
// abandoned, and tests use it to await follow-ups deterministically.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
