package event

import "testing"

func TestEventInvokesAllListeners(t *testing.T) {
	var e Event
	calls := 0
	e.AddListener(func() { calls++ })
	e.AddListener(func() { calls++ })
	e.AddListener(nil)

	e.Invoke()
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
	if e.ListenerCount() != 2 {
		t.Fatalf("ListenerCount = %d, want 2", e.ListenerCount())
	}

	e.RemoveAllListeners()
	e.Invoke()
	if calls != 2 {
		t.Fatalf("listeners fired after RemoveAllListeners")
	}
}

func TestEventWithArgPassesValue(t *testing.T) {
	var e EventWithArg[int]
	got := 0
	e.AddListener(func(v int) { got += v })
	e.AddListener(func(v int) { got += v })

	e.Invoke(7)
	if got != 14 {
		t.Fatalf("got = %d, want 14", got)
	}

	e.RemoveAllListeners()
	e.Invoke(7)
	if got != 14 {
		t.Fatalf("listeners fired after RemoveAllListeners")
	}
}
