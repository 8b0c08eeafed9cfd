// Package notify turns hotkey validation problems into desktop
// notifications.
package notify

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/TanaroSch/keyremap/internal/logging"
)

// Mapping identifies a problem by content. Entry ids are regenerated on
// every store load, so they cannot tell a known problem from a new one.
type Mapping struct {
	Source string
	Target string
}

// Lookup resolves an entry id to its mapping.
type Lookup func(id uuid.UUID) (Mapping, bool)

type report struct {
	mapping Mapping
	id      uuid.UUID // set only when the lookup failed
	message string
}

// Notifier implements remap.Listener. A problem is shown once and stays
// quiet while later sanitize passes keep reporting it, including passes
// that follow a reload of the store.
type Notifier struct {
	useNotifications bool
	appName          string
	log              *slog.Logger
	lookup           Lookup
	notifyFn         func(title, message string) error

	mu       sync.Mutex
	previous map[report]bool
	current  map[report]bool
}

// New creates a notifier. With useNotifications false problems are only
// logged.
func New(useNotifications bool, appName string, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = logging.Discard()
	}
	n := &Notifier{
		useNotifications: useNotifications,
		appName:          appName,
		log:              logger.With("component", "notify"),
		previous:         make(map[report]bool),
		current:          make(map[report]bool),
	}
	n.notifyFn = n.platformNotify
	return n
}

// SetLookup installs the id resolver used for deduplication and
// notification text.
func (n *Notifier) SetLookup(lookup Lookup) {
	n.lookup = lookup
}

// ErrorCleared starts a new sanitize pass.
func (n *Notifier) ErrorCleared() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.previous = n.current
	n.current = make(map[report]bool)
}

// ErrorTriggered logs the problem and shows it unless the previous pass
// already reported it for the same mapping.
func (n *Notifier) ErrorTriggered(id uuid.UUID, message string) {
	r := report{message: message}
	text := message
	if m, ok := n.resolve(id); ok {
		r.mapping = m
		text = describe(m) + ": " + message
	} else {
		r.id = id
	}

	n.mu.Lock()
	n.current[r] = true
	seen := n.previous[r]
	n.mu.Unlock()

	n.log.Warn("hotkey problem", "id", id, "message", text)
	if seen {
		return
	}
	n.ShowNotification(n.appName, text)
}

// ShowNotification displays a desktop notification if enabled.
func (n *Notifier) ShowNotification(title, message string) {
	if !n.useNotifications {
		return
	}
	if err := n.notifyFn(title, message); err != nil {
		n.log.Warn("could not show notification", "error", err)
	}
}

func (n *Notifier) resolve(id uuid.UUID) (Mapping, bool) {
	if n.lookup == nil {
		return Mapping{}, false
	}
	return n.lookup(id)
}

func describe(m Mapping) string {
	source, target := m.Source, m.Target
	if source == "" {
		source = "(none)"
	}
	if target == "" {
		target = "(none)"
	}
	return source + " → " + target
}
