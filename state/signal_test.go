package state

import "testing"

func TestSignal_SetAndSubscribe(t *testing.T) {
	sig := NewSignal(1)
	calls := 0

	unsub := sig.Subscribe(func() {
		calls++
	})

	if calls != 0 {
		t.Fatalf("expected no calls before set, got %d", calls)
	}
	if !sig.Set(2) {
		t.Fatalf("expected set to report change")
	}
	if calls != 1 {
		t.Fatalf("expected 1 call after set, got %d", calls)
	}

	unsub()
	unsub()
	sig.Set(3)
	if calls != 1 {
		t.Fatalf("expected no calls after unsubscribe, got %d", calls)
	}
	if n := sig.SubscriberCount(); n != 0 {
		t.Fatalf("expected no subscribers, got %d", n)
	}
}

func TestSignal_IdentityByDefault(t *testing.T) {
	type slice struct{ n int }
	first := &slice{n: 1}
	sig := NewSignal(first)

	if sig.Set(first) {
		t.Fatalf("expected set of the same pointer to report no change")
	}
	if !sig.Set(&slice{n: 1}) {
		t.Fatalf("expected set of a new pointer with equal contents to report change")
	}
}

func TestSignal_SetEqualFunc(t *testing.T) {
	sig := NewSignal(5)
	sig.SetEqualFunc(EqualComparable[int])

	if sig.Set(5) {
		t.Fatalf("expected set of equal value to report no change")
	}
	if !sig.Set(6) {
		t.Fatalf("expected set of new value to report change")
	}

	sig.SetEqualFunc(nil)
	if !sig.Set(6) {
		t.Fatalf("expected set without equality check to report change")
	}
}

func TestSignal_Update(t *testing.T) {
	sig := NewSignal(1)

	if !sig.Update(func(v int) int { return v + 1 }) {
		t.Fatalf("expected update to report change")
	}
	if sig.Get() != 2 {
		t.Fatalf("expected updated value 2, got %d", sig.Get())
	}
	if sig.Update(func(v int) int { return v }) {
		t.Fatalf("expected update of equal value to report no change")
	}
	if sig.Update(nil) {
		t.Fatalf("expected nil update to report no change")
	}
}

func TestSignal_NotifiesInRegistrationOrder(t *testing.T) {
	sig := NewSignal(0)
	var order []int
	for i := 0; i < 5; i++ {
		i := i
		sig.Subscribe(func() { order = append(order, i) })
	}

	sig.Set(1)
	if len(order) != 5 {
		t.Fatalf("expected 5 notifications, got %d", len(order))
	}
	for i, got := range order {
		if got != i {
			t.Fatalf("unexpected notification order: %v", order)
		}
	}
}

func TestSignal_SubscribeWithScheduler(t *testing.T) {
	sig := NewSignal(1)
	queue := NewQueue()
	calls := 0

	sig.SubscribeWithScheduler(queue, func() {
		calls++
	})

	if !sig.Set(2) {
		t.Fatalf("expected set to report change")
	}
	if calls != 0 {
		t.Fatalf("expected callback to be queued, got %d", calls)
	}
	if flushed := queue.Flush(); flushed != 1 {
		t.Fatalf("expected 1 callback flushed, got %d", flushed)
	}
	if calls != 1 {
		t.Fatalf("expected callback after flush, got %d", calls)
	}
}

func TestSignal_NilReceiver(t *testing.T) {
	var sig *Signal[int]
	if sig.Set(1) {
		t.Fatalf("expected nil signal set to report no change")
	}
	if got := sig.Get(); got != 0 {
		t.Fatalf("expected zero value from nil signal, got %d", got)
	}
	sig.Subscribe(func() {})()
}

func TestSignal_Version(t *testing.T) {
	sig := NewSignal("a")
	sig.Set("a")
	sig.Set("b")
	sig.Set("c")
	if got := sig.Version(); got != 2 {
		t.Fatalf("expected version 2, got %d", got)
	}
}

func TestSignal_SetFromListener(t *testing.T) {
	sig := NewSignal(0)
	sig.Subscribe(func() {
		if v := sig.Get(); v < 3 {
			sig.Set(v + 1)
		}
	})

	sig.Set(1)
	if got := sig.Get(); got != 3 {
		t.Fatalf("expected listener to drive value to 3, got %d", got)
	}
}
