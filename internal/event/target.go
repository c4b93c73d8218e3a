// Package event is a small listener registry: named events dispatched to
// listeners attached to a Target.
package event

// Event is passed to listeners. Target is where the event originated,
// CurrentTarget the Target whose listeners are running.
type Event struct {
	Type          string
	Key           string
	Target        *Target
	CurrentTarget *Target
}

// Listener wraps a handler so it has an identity for removal.
type Listener struct {
	fn func(Event)
}

func NewListener(fn func(Event)) *Listener { return &Listener{fn: fn} }

type Target struct {
	Name      string
	listeners map[string][]*Listener
}

func NewTarget(name string) *Target {
	return &Target{Name: name, listeners: map[string][]*Listener{}}
}

// AddListener registers l for typ. Adding a listener that is already
// registered for typ does nothing.
func (t *Target) AddListener(typ string, l *Listener) {
	for _, have := range t.listeners[typ] {
		if have == l {
			return
		}
	}
	t.listeners[typ] = append(t.listeners[typ], l)
}

func (t *Target) RemoveListener(typ string, l *Listener) {
	ls := t.listeners[typ]
	for i, have := range ls {
		if have == l {
			t.listeners[typ] = append(ls[:i:i], ls[i+1:]...)
			return
		}
	}
}

func (t *Target) ListenerCount(typ string) int { return len(t.listeners[typ]) }

// Dispatch runs the listeners for ev.Type in registration order. A nil
// ev.Target means the event originated here.
func (t *Target) Dispatch(ev Event) {
	if ev.Target == nil {
		ev.Target = t
	}
	ev.CurrentTarget = t
	ls := append([]*Listener(nil), t.listeners[ev.Type]...)
	for _, l := range ls {
		l.fn(ev)
	}
}
