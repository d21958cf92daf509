// Package event provides a small multi-cast listener system used to observe
// simulation happenings (spawn resets) without coupling the core to its
// consumers.
package event

// Event allows multiple listeners to subscribe to a single notification.
type Event struct {
	listeners []func()
}

// AddListener adds a callback to be invoked when the event fires.
func (e *Event) AddListener(callback func()) {
	if callback == nil {
		return
	}
	e.listeners = append(e.listeners, callback)
}

// RemoveAllListeners clears all listeners.
func (e *Event) RemoveAllListeners() {
	e.listeners = nil
}

// Invoke calls all registered listeners.
func (e *Event) Invoke() {
	for _, listener := range e.listeners {
		if listener != nil {
			listener()
		}
	}
}

// ListenerCount returns the number of registered listeners (for debugging).
func (e *Event) ListenerCount() int {
	return len(e.listeners)
}

// EventWithArg is a generic event carrying one argument.
type EventWithArg[T any] struct {
	listeners []func(T)
}

func (e *EventWithArg[T]) AddListener(callback func(T)) {
	if callback == nil {
		return
	}
	e.listeners = append(e.listeners, callback)
}

func (e *EventWithArg[T]) RemoveAllListeners() {
	e.listeners = nil
}

func (e *EventWithArg[T]) Invoke(arg T) {
	for _, listener := range e.listeners {
		if listener != nil {
			listener(arg)
		}
	}
}

func (e *EventWithArg[T]) ListenerCount() int {
	return len(e.listeners)
}
