package remap

import "github.com/google/uuid"

// Messages carried by Listener.ErrorTriggered.
const (
	MsgDuplicateSource = "Shortcut already in use"
	MsgDuplicateTarget = "Fn function already in use"
	MsgBindFailed      = "Shortcut could not be registered"
)

// Listener receives validation state changes. ErrorCleared starts every
// sanitize pass; ErrorTriggered follows once per problem found.
type Listener interface {
	ErrorTriggered(id uuid.UUID, message string)
	ErrorCleared()
}

type nopListener struct{}

func (nopListener) ErrorTriggered(uuid.UUID, string) {}
func (nopListener) ErrorCleared()                    {}

// Sanitize recomputes the disabled flag of every entry. Entries sharing a
// non-empty source, or a non-empty target, are all disabled; an entry
// colliding on both axes is reported twice.
func Sanitize(entries []*Entry, listener Listener) {
	if listener == nil {
		listener = nopListener{}
	}

	for _, e := range entries {
		e.disabled = false
	}
	listener.ErrorCleared()

	for _, e := range duplicates(entries, (*Entry).Source) {
		e.disabled = true
		listener.ErrorTriggered(e.id, MsgDuplicateSource)
	}
	for _, e := range duplicates(entries, (*Entry).Target) {
		e.disabled = true
		listener.ErrorTriggered(e.id, MsgDuplicateTarget)
	}
}

// duplicates returns the members of every group of two or more entries
// sharing the same non-empty key. Groups come in order of first
// appearance, members in list order.
func duplicates(entries []*Entry, key func(*Entry) string) []*Entry {
	groups := make(map[string][]*Entry)
	var order []string
	for _, e := range entries {
		k := key(e)
		if k == "" {
			continue
		}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], e)
	}

	var out []*Entry
	for _, k := range order {
		if members := groups[k]; len(members) > 1 {
			out = append(out, members...)
		}
	}
	return out
}
