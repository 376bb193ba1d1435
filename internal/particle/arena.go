package particle

import "time"

// Arena owns a set of live entities. It is not safe for concurrent use.
type Arena struct {
	next  ID
	items []Entity
	cap   int
}

// NewArena returns an arena. A positive cap is an advisory ceiling on live
// entities; Spawn refuses once it is reached.
func NewArena(cap int) *Arena {
	return &Arena{cap: cap}
}

// SetCap changes the advisory ceiling.
func (a *Arena) SetCap(cap int) {
	a.cap = cap
}

// Spawn adds e and returns its new id. It reports false when the arena is
// at its cap.
func (a *Arena) Spawn(e Entity) (ID, bool) {
	if a.cap > 0 && len(a.items) >= a.cap {
		return 0, false
	}
	a.next++
	e.ID = a.next
	a.items = append(a.items, e)
	return e.ID, true
}

// Retire removes every entity expired at now and then runs their OnExpire
// callbacks in spawn order. Callbacks may spawn new entities.
func (a *Arena) Retire(now time.Time) int {
	var expired []Entity
	kept := a.items[:0]
	for _, e := range a.items {
		if e.Expired(now) {
			expired = append(expired, e)
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(a.items); i++ {
		a.items[i] = Entity{}
	}
	a.items = kept

	for _, e := range expired {
		if e.OnExpire != nil {
			e.OnExpire(e)
		}
	}
	return len(expired)
}

// Clear drops every entity without running callbacks.
func (a *Arena) Clear() int {
	n := len(a.items)
	clear(a.items)
	a.items = a.items[:0]
	return n
}

// Len returns the number of live entities.
func (a *Arena) Len() int {
	return len(a.items)
}

// Count returns the number of live entities of kind k.
func (a *Arena) Count(k Kind) int {
	n := 0
	for i := range a.items {
		if a.items[i].Kind == k {
			n++
		}
	}
	return n
}

// Each calls fn for every live entity in spawn order.
func (a *Arena) Each(fn func(e *Entity)) {
	for i := range a.items {
		fn(&a.items[i])
	}
}
