// -----------------------------------------------------------------------
// Quote Watcher - Scheduled background checks of forum quote pages
// Runs alongside the stdio server and logs newly found mentions.
// -----------------------------------------------------------------------

package watcher

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/jvidalv/lo-claude/internal/common"
	"github.com/jvidalv/lo-claude/internal/forum"
)

// QuoteSource is one profile quotes page to watch.
type QuoteSource struct {
	Name string // Forum name, for logs
	URL  string
	// Check fetches the page and classifies its quotes against the
	// persisted cursor.
	Check func(ctx context.Context, profileURL string) (*forum.QuoteCheck, error)
}

// Watcher runs periodic quote checks on a cron schedule
type Watcher struct {
	cron    *cron.Cron
	sources []QuoteSource
	logger  arbor.ILogger

	mu      sync.Mutex
	running bool
}

// New creates a quote watcher. Schedules use the seconds-first cron
// format, e.g. "0 */30 * * * *" for every 30 minutes.
func New(logger arbor.ILogger) *Watcher {
	return &Watcher{
		cron:   cron.New(cron.WithSeconds()),
		logger: logger,
	}
}

// AddSource registers a quote page to watch
func (w *Watcher) AddSource(source QuoteSource) {
	if source.URL == "" || source.Check == nil {
		return
	}
	w.sources = append(w.sources, source)
}

// Start begins the schedule. No-op when no sources are registered.
func (w *Watcher) Start(config common.WatcherConfig) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return fmt.Errorf("watcher already running")
	}
	if len(w.sources) == 0 {
		w.logger.Debug().Msg("Quote watcher has no sources, not starting")
		return nil
	}

	schedule := config.Schedule
	if schedule == "" {
		schedule = "0 */30 * * * *"
	}

	if _, err := w.cron.AddFunc(schedule, w.checkAll); err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	w.cron.Start()
	w.running = true

	w.logger.Info().
		Str("schedule", schedule).
		Int("sources", len(w.sources)).
		Msg("Quote watcher started")

	return nil
}

// Stop halts the schedule and waits for a running check to finish
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}

	ctx := w.cron.Stop()
	<-ctx.Done()
	w.running = false

	w.logger.Info().Msg("Quote watcher stopped")
}

func (w *Watcher) checkAll() {
	for _, source := range w.sources {
		source := source
		common.SafeGo(w.logger, "quote-check-"+source.Name, func() {
			w.checkSource(source)
		})
	}
}

func (w *Watcher) checkSource(source QuoteSource) {
	check, err := source.Check(context.Background(), source.URL)
	if err != nil {
		w.logger.Warn().Err(err).Str("forum", source.Name).Msg("Scheduled quote check failed")
		return
	}

	if check.FirstCheck {
		w.logger.Info().
			Str("forum", source.Name).
			Int("quotes", len(check.Quotes)).
			Msg("Quote baseline established")
		return
	}

	if check.NewCount > 0 {
		w.logger.Info().
			Str("forum", source.Name).
			Int("new", check.NewCount).
			Msg("New quotes found")
	} else {
		w.logger.Debug().Str("forum", source.Name).Msg("No new quotes")
	}
}
