package services

import (
	"bytes"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// SaveFunc persists one queued payload.
type SaveFunc func(key string, payload []byte) error

// Autosaver debounces writes per key. A burst of Queue calls within
// the quiet period collapses into one save carrying the last payload.
// Saves are single-flight per key: a save in flight suppresses a
// concurrent one, and edits that arrive mid-save trigger exactly one
// trailing save.
type Autosaver struct {
	delay time.Duration
	save  SaveFunc
	log   *logrus.Entry

	mu      sync.Mutex
	entries map[string]*autosaveEntry
}

type autosaveEntry struct {
	timer     *time.Timer
	pending   []byte
	lastSaved []byte
	inFlight  bool
	dirty     bool
}

func NewAutosaver(delay time.Duration, save SaveFunc) *Autosaver {
	return &Autosaver{
		delay:   delay,
		save:    save,
		log:     logrus.WithField("service", "autosave"),
		entries: make(map[string]*autosaveEntry),
	}
}

// Queue schedules a debounced save of payload under key. Payloads
// identical to the last successfully persisted snapshot, and empty
// payloads, are skipped. Any pending timer for the key is
// cancel-and-replaced.
func (a *Autosaver) Queue(key string, payload []byte) {
	if len(payload) == 0 {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	entry, ok := a.entries[key]
	if !ok {
		entry = &autosaveEntry{}
		a.entries[key] = entry
	}

	if bytes.Equal(payload, entry.lastSaved) && entry.timer == nil && !entry.inFlight {
		return
	}

	entry.pending = payload
	if entry.timer != nil {
		entry.timer.Stop()
	}
	entry.timer = time.AfterFunc(a.delay, func() {
		a.fire(key)
	})
}

func (a *Autosaver) fire(key string) {
	a.mu.Lock()
	entry, ok := a.entries[key]
	if !ok {
		a.mu.Unlock()
		return
	}
	entry.timer = nil
	if entry.inFlight {
		// a save is already running; let it schedule the trailing run
		entry.dirty = true
		a.mu.Unlock()
		return
	}
	payload := entry.pending
	if payload == nil || bytes.Equal(payload, entry.lastSaved) {
		a.mu.Unlock()
		return
	}
	entry.inFlight = true
	a.mu.Unlock()

	err := a.save(key, payload)

	a.mu.Lock()
	entry.inFlight = false
	if err != nil {
		// keep the payload pending so a later edit or flush retries it
		a.log.WithFields(logrus.Fields{
			"key":   key,
			"error": err.Error(),
		}).Warn("autosave failed")
	} else {
		entry.lastSaved = payload
	}
	if entry.dirty {
		entry.dirty = false
		if entry.timer == nil {
			entry.timer = time.AfterFunc(a.delay, func() {
				a.fire(key)
			})
		}
	}
	a.mu.Unlock()
}

// FlushKey runs any pending save for key synchronously. Used before an
// immediate write (e.g. completing the wizard) so the debounced state
// lands first.
func (a *Autosaver) FlushKey(key string) {
	a.mu.Lock()
	entry, ok := a.entries[key]
	if !ok {
		a.mu.Unlock()
		return
	}
	if entry.timer != nil {
		entry.timer.Stop()
		entry.timer = nil
	}
	a.mu.Unlock()
	a.fire(key)
}

// Flush synchronously persists every pending payload. Called on
// shutdown so a pending debounce window is never silently dropped.
func (a *Autosaver) Flush() {
	a.mu.Lock()
	keys := make([]string, 0, len(a.entries))
	for key, entry := range a.entries {
		if entry.timer != nil {
			entry.timer.Stop()
			entry.timer = nil
		}
		keys = append(keys, key)
	}
	a.mu.Unlock()

	for _, key := range keys {
		a.fire(key)
	}
}
