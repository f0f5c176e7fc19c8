package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pfrederiksen/event-manager/internal/api"
	"github.com/pfrederiksen/event-manager/internal/category"
	"github.com/pfrederiksen/event-manager/internal/config"
	"github.com/pfrederiksen/event-manager/internal/event"
	"github.com/pfrederiksen/event-manager/internal/filter"
	"github.com/pfrederiksen/event-manager/internal/logger"
	"github.com/pfrederiksen/event-manager/internal/notifier"
	"github.com/pfrederiksen/event-manager/internal/session"
	"github.com/pfrederiksen/event-manager/internal/store"
)

// app is the client side wiring shared by the event commands
type app struct {
	cfg    *config.Config
	out    io.Writer
	errOut io.Writer

	client *api.Client
	index  *category.Index
	store  *store.Store
	editor *session.Editor
}

func (o *options) newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	client, err := api.NewClient(cfg.ServiceBaseURL, timeout)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	a := &app{
		cfg:    cfg,
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
		client: client,
		index:  category.NewIndex(client),
	}
	a.store = store.New(client, a.index)
	a.editor = session.NewEditor(a.store, a.notifiers())

	logger.Debug("Client configured", logger.Fields{"service": client.BaseURL(), "timeout": timeout.String()})
	return a, nil
}

// notifiers builds the notification fan-out from config
func (a *app) notifiers() notifier.Notifier {
	multi := notifier.Multi{notifier.NewLogNotifier()}

	if a.cfg.Notifications.ConsoleEnabled() {
		multi = append(multi, notifier.NewConsoleNotifier(a.errOut))
	}

	if a.cfg.Notifications.Twitter {
		tw, err := notifier.NewTwitterNotifier()
		if err != nil {
			logger.Warn("Twitter announcements disabled, printing instead", logger.Fields{"error": err.Error()})
			multi = append(multi, notifier.NewDryRunNotifier(a.errOut))
		} else {
			multi = append(multi, tw)
		}
	}

	if a.cfg.Notifications.Telegram {
		tg, err := notifier.NewTelegramNotifierFromEnv()
		if err != nil {
			logger.Warn("Telegram announcements disabled", logger.Fields{"error": err.Error()})
		} else {
			multi = append(multi, tg)
		}
	}

	return multi
}

// loadAll fetches categories and events concurrently. A category failure is
// tolerated and leaves fallback labels; an event failure is returned.
func (a *app) loadAll(ctx context.Context) error {
	fmt.Fprintln(a.errOut, "Loading events...")

	// Plain Group: neither load cancels the other
	var g errgroup.Group
	g.Go(func() error {
		a.loadCategories(ctx)
		return nil
	})
	g.Go(func() error {
		_, err := a.store.LoadAll(ctx)
		return err
	})

	err := g.Wait()
	// Events may have arrived before categories
	a.store.Refresh()

	if err != nil {
		return fmt.Errorf("loading events: %w", err)
	}
	return nil
}

func (a *app) loadCategories(ctx context.Context) {
	if _, err := a.index.Load(ctx); err != nil {
		logger.Warn("Categories unavailable, labels fall back to Unknown", logger.Fields{"error": err.Error()})
	}
}

// resolveSelector resolves a filter selector, where "All" passes through as
// the match-everything value.
func (a *app) resolveSelector(values []string) ([]event.ID, error) {
	return a.resolve(values, true)
}

// resolveCategories resolves category memberships for a draft. "All" is
// rejected since it names no category.
func (a *app) resolveCategories(values []string) ([]event.ID, error) {
	return a.resolve(values, false)
}

// resolve turns names or identifiers into category identifiers. When the
// index is not loaded, values are taken as identifiers.
func (a *app) resolve(values []string, allowAll bool) ([]event.ID, error) {
	ids := make([]event.ID, 0, len(values))
	for _, v := range values {
		if event.ID(v) == filter.All {
			if !allowAll {
				return nil, fmt.Errorf("%q is a filter, not a category", v)
			}
			ids = append(ids, filter.All)
			continue
		}
		if c, ok := a.index.Lookup(v); ok {
			ids = append(ids, c.ID)
			continue
		}
		if a.index.Loaded() {
			return nil, fmt.Errorf("unknown category %q", v)
		}
		id, err := event.ParseID(v)
		if err != nil {
			return nil, fmt.Errorf("parsing category: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseIDArg(raw string) (event.ID, error) {
	id, err := event.ParseID(raw)
	if err != nil {
		return "", fmt.Errorf("invalid event id: %w", err)
	}
	return id, nil
}
