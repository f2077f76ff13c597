// Package theme owns the site-wide presentation and feature-flag state. The
// Engine is the single writer of the settings document: every consumer reads
// a snapshot from it and every mutation goes through Update, ApplyPreset or
// Reset.
package theme

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/teamcipx/portofolio-sub000/shared/models"
	"github.com/teamcipx/portofolio-sub000/shared/store"
)

const (
	// SettingsCollection and SettingsDocID locate the singleton settings
	// document in the store.
	SettingsCollection = "settings"
	SettingsDocID      = "site"

	persistTimeout = 10 * time.Second
)

// Engine mediates between the document store and every consumer of the
// theme settings. Mutations apply to the in-memory snapshot synchronously
// and are persisted asynchronously in call order by a single persister
// goroutine; a persist failure is logged and never rolled back.
type Engine struct {
	store store.Store
	log   *logrus.Logger

	mu       sync.RWMutex
	settings models.ThemeSettings
	ready    bool

	persistCh chan models.ThemeSettings
	done      chan struct{}

	// onPersist, when set, observes the outcome of every persist attempt.
	// Callers that do not care simply never set it.
	onPersist func(error)
}

// Option configures an Engine.
type Option func(*Engine)

// WithPersistHook registers a callback invoked after every persist attempt
// with its error (nil on success). Intended for tests and future retry
// logic; the UI path never waits on it.
func WithPersistHook(fn func(error)) Option {
	return func(e *Engine) { e.onPersist = fn }
}

// NewEngine creates an Engine seeded with the hardcoded defaults and starts
// its persister. The engine reports not ready until Load has run.
func NewEngine(st store.Store, log *logrus.Logger, opts ...Option) *Engine {
	e := &Engine{
		store:     st,
		log:       log,
		settings:  models.DefaultThemeSettings(),
		persistCh: make(chan models.ThemeSettings, 64),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	go e.persister()
	return e
}

// Load fetches the stored settings document once and merges it over the
// defaults. Fetched fields win; fields the document does not carry keep
// their defaults, which is how documents saved by older versions degrade
// gracefully. Absent documents and fetch failures both leave the defaults
// in place — the engine becomes ready regardless.
func (e *Engine) Load(ctx context.Context) {
	var patch models.SettingsPatch
	found, err := e.store.Get(ctx, SettingsCollection, SettingsDocID, &patch)

	e.mu.Lock()
	defer e.mu.Unlock()

	switch {
	case err != nil:
		e.log.WithError(err).Warn("settings fetch failed, serving defaults")
	case !found || patch.IsZero():
		e.log.Info("no stored settings, serving defaults")
	default:
		if patch.System == nil {
			// Legacy documents predate the system section; treat the
			// admin kill switch as enabled but make it visible.
			e.log.Warn("stored settings have no system section, admin stays enabled")
		}
		e.settings = patch.ApplyTo(e.settings)
	}
	e.ready = true
}

// Ready reports whether the initial load has completed. Nothing should be
// rendered or gated before this is true.
func (e *Engine) Ready() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ready
}

// Settings returns the current snapshot. The copy is consistent; callers
// never observe a half-applied mutation.
func (e *Engine) Settings() models.ThemeSettings {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.settings
}

// Update merges the patch over the current settings and marks the preset as
// custom — any hand edit leaves the named bundles behind. The in-memory
// snapshot changes before Update returns; persistence is fire-and-forget.
func (e *Engine) Update(patch models.SettingsPatch) {
	e.mu.Lock()
	next := patch.ApplyTo(e.settings)
	next.Preset = models.PresetCustom
	e.settings = next
	e.mu.Unlock()

	e.enqueuePersist(next)
}

// ApplyPreset replaces colors, font, radius, style and layout with the named
// bundle, leaving sections, nav, pages, seo and system untouched. Unknown
// names are ignored with a log line.
func (e *Engine) ApplyPreset(name models.Preset) bool {
	bundle, ok := presets[name]
	if !ok {
		e.log.WithField("preset", name).Warn("unknown preset")
		return false
	}

	e.mu.Lock()
	next := e.settings
	next.Preset = name
	next.Colors = bundle.Colors
	next.Font = bundle.Font
	next.Radius = bundle.Radius
	next.Style = bundle.Style
	next.Layout = bundle.Layout
	e.settings = next
	e.mu.Unlock()

	e.enqueuePersist(next)
	return true
}

// Reset replaces the entire configuration with the hardcoded defaults.
func (e *Engine) Reset() {
	next := models.DefaultThemeSettings()

	e.mu.Lock()
	e.settings = next
	e.mu.Unlock()

	e.enqueuePersist(next)
}

// Close stops the persister after draining queued writes.
func (e *Engine) Close() {
	close(e.persistCh)
	<-e.done
}

func (e *Engine) enqueuePersist(snapshot models.ThemeSettings) {
	select {
	case e.persistCh <- snapshot:
	default:
		// The queue only backs up if the store has been stalled for a
		// long while; dropping intermediates is safe because the final
		// queued snapshot wins anyway.
		e.log.Warn("settings persist queue full, dropping intermediate snapshot")
	}
}

// persister serializes writes so the store receives snapshots in call order
// and the last write wins.
func (e *Engine) persister() {
	defer close(e.done)
	for snapshot := range e.persistCh {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		err := e.store.Set(ctx, SettingsCollection, SettingsDocID, snapshot, true)
		cancel()
		if err != nil {
			e.log.WithError(err).Error("failed to persist settings")
		}
		if e.onPersist != nil {
			e.onPersist(err)
		}
	}
}
