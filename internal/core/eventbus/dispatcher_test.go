package eventbus

import (
	"errors"
	"testing"

	"github.com/lsevent/dispatcher/config"
	"github.com/lsevent/dispatcher/pkg/types"
)

func mustDispatcher(t *testing.T, source interface{}) *Dispatcher {
	t.Helper()
	d, err := New(source)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d
}

func TestScenarioSimple(t *testing.T) {
	d := mustDispatcher(t, "src")
	e, err := d.CreateEvent("E")
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	var calls int
	var seenData interface{}
	var seenHandled bool
	cb := func(evt *types.EventData, arg interface{}) {
		calls++
		seenData = evt.Data
	}
	if err := e.Bind(cb, nil); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	if err := e.Trigger("D", func(evt *types.EventData, handled bool, arg interface{}) {
		seenHandled = handled
	}, nil); err != nil {
		t.Fatalf("Trigger: %v", err)
	}

	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	if seenData != "D" {
		t.Fatalf("seenData = %v, want D", seenData)
	}
	if seenHandled {
		t.Fatal("handled should be false: no callback set it")
	}
}

func TestScenarioResultAggregation(t *testing.T) {
	d := mustDispatcher(t, "src")
	e, err := d.CreateEvent("E")
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	var log []string
	cbH := func(evt *types.EventData, arg interface{}) {
		evt.Handled = true
		log = append(log, "cbH")
	}
	if err := e.Bind(cbH, nil); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	err = e.Trigger("D", func(evt *types.EventData, handled bool, arg interface{}) {
		if !handled {
			t.Error("result callback saw handled=false, want true")
		}
		log = append(log, "R")
	}, nil)
	if err != nil {
		t.Fatalf("Trigger: %v", err)
	}

	want := []string{"cbH", "R"}
	if !equalStrings(log, want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
}

func TestScenarioNestedBreadthFirst(t *testing.T) {
	d := mustDispatcher(t, "src")
	e1, err := d.CreateEvent("E1")
	if err != nil {
		t.Fatalf("CreateEvent E1: %v", err)
	}
	e2, err := d.CreateEvent("E2")
	if err != nil {
		t.Fatalf("CreateEvent E2: %v", err)
	}

	var log []string

	a := func(evt *types.EventData, arg interface{}) {
		if err := e2.Trigger("inner", func(evt *types.EventData, handled bool, arg interface{}) {
			if !handled {
				t.Error("rB saw handled=false, want true")
			}
			log = append(log, "rB(true)")
		}, nil); err != nil {
			t.Fatalf("nested Trigger: %v", err)
		}
		log = append(log, "A")
	}
	b := func(evt *types.EventData, arg interface{}) {
		log = append(log, "B")
	}
	bPrime := func(evt *types.EventData, arg interface{}) {
		log = append(log, "B'")
	}
	c := func(evt *types.EventData, arg interface{}) {
		evt.Handled = true
		log = append(log, "C")
	}

	if err := e1.Bind(a, nil); err != nil {
		t.Fatalf("Bind A: %v", err)
	}
	if err := e1.Bind(b, nil); err != nil {
		t.Fatalf("Bind B: %v", err)
	}
	if err := e2.Bind(bPrime, nil); err != nil {
		t.Fatalf("Bind B': %v", err)
	}
	if err := e2.Bind(c, nil); err != nil {
		t.Fatalf("Bind C: %v", err)
	}

	err = e1.Trigger("outer", func(evt *types.EventData, handled bool, arg interface{}) {
		if handled {
			t.Error("rA saw handled=true, want false")
		}
		log = append(log, "rA(false)")
	}, nil)
	if err != nil {
		t.Fatalf("Trigger E1: %v", err)
	}

	want := []string{"A", "B", "rA(false)", "B'", "C", "rB(true)"}
	if !equalStrings(log, want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
}

func TestScenarioUnbindDuringDispatchOfLaterPeer(t *testing.T) {
	d := mustDispatcher(t, "src")
	e, err := d.CreateEvent("E")
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	var log []string
	var cb1 types.NotifyCallback
	cb1 = func(evt *types.EventData, arg interface{}) {
		log = append(log, "cb1")
	}
	u1 := func(evt *types.EventData, arg interface{}) {
		log = append(log, "U1")
		e.Unbind(cb1)
	}

	if err := e.Bind(u1, nil); err != nil {
		t.Fatalf("Bind U1: %v", err)
	}
	if err := e.Bind(cb1, nil); err != nil {
		t.Fatalf("Bind cb1: %v", err)
	}

	if err := e.Trigger(nil, nil, nil); err != nil {
		t.Fatalf("Trigger: %v", err)
	}

	want := []string{"U1", "cb1"}
	if !equalStrings(log, want) {
		t.Fatalf("log = %v, want %v", log, want)
	}

	ev := e.(*event)
	if ev.findBinding(callbackID(cb1)) != nil {
		t.Fatal("cb1 should be unlinked after the dispatch that unbound it")
	}
}

func TestScenarioUnbindMiddle(t *testing.T) {
	d := mustDispatcher(t, "src")
	e, err := d.CreateEvent("E")
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	var log []string
	cb1 := func(evt *types.EventData, arg interface{}) { log = append(log, "cb1") }
	cb2 := func(evt *types.EventData, arg interface{}) { log = append(log, "cb2") }
	var u1 types.NotifyCallback
	u1 = func(evt *types.EventData, arg interface{}) {
		log = append(log, "U1")
		e.Unbind(u1)
	}

	if err := e.Bind(cb1, nil); err != nil {
		t.Fatalf("Bind cb1: %v", err)
	}
	if err := e.Bind(u1, nil); err != nil {
		t.Fatalf("Bind U1: %v", err)
	}
	if err := e.Bind(cb2, nil); err != nil {
		t.Fatalf("Bind cb2: %v", err)
	}

	if err := e.Trigger(nil, nil, nil); err != nil {
		t.Fatalf("Trigger: %v", err)
	}

	want := []string{"cb1", "U1", "cb2"}
	if !equalStrings(log, want) {
		t.Fatalf("log = %v, want %v", log, want)
	}

	ev := e.(*event)
	var remaining []uintptr
	for b := ev.head; b != nil; b = b.next {
		remaining = append(remaining, b.cbID)
	}
	wantIDs := []uintptr{callbackID(cb1), callbackID(cb2)}
	if len(remaining) != 2 || remaining[0] != wantIDs[0] || remaining[1] != wantIDs[1] {
		t.Fatalf("remaining bindings = %v, want cb1,cb2", remaining)
	}
}

func TestScenarioDeferredDestroy(t *testing.T) {
	d := mustDispatcher(t, "src")
	e1, err := d.CreateEvent("E1")
	if err != nil {
		t.Fatalf("CreateEvent E1: %v", err)
	}
	e2, err := d.CreateEvent("E2")
	if err != nil {
		t.Fatalf("CreateEvent E2: %v", err)
	}

	var stillAliveInsideCallback bool
	cb := func(evt *types.EventData, arg interface{}) {
		if err := e2.Trigger(nil, nil, nil); err != nil {
			t.Fatalf("nested Trigger: %v", err)
		}
		d.Destroy()
		_, stillAliveInsideCallback = d.GetEvent("E1")
	}
	if err := e1.Bind(cb, nil); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	if err := e1.Trigger(nil, nil, nil); err != nil {
		t.Fatalf("Trigger: %v", err)
	}

	if !stillAliveInsideCallback {
		t.Fatal("dispatcher storage must survive until the outermost trigger returns")
	}
	if _, ok := d.GetEvent("E1"); ok {
		t.Fatal("dispatcher should be destroyed once the outer trigger has returned")
	}
}

func TestInvariantRebindIsNoOpOnPositionAndArg(t *testing.T) {
	d := mustDispatcher(t, "src")
	e, err := d.CreateEvent("E")
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	cb := func(evt *types.EventData, arg interface{}) {}
	if err := e.Bind(cb, "a1"); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if err := e.Bind(cb, "a2"); err != nil {
		t.Fatalf("rebind: %v", err)
	}

	ev := e.(*event)
	b := ev.findBinding(callbackID(cb))
	if b == nil {
		t.Fatal("binding missing")
	}
	if b.arg != "a1" {
		t.Fatalf("arg = %v, want a1 (rebind must not update arg)", b.arg)
	}
	if ev.head != b || ev.tail != b {
		t.Fatal("rebind must not move the binding")
	}
}

func TestInvariantOrderedInvocation(t *testing.T) {
	d := mustDispatcher(t, "src")
	e, err := d.CreateEvent("E")
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	var log []string
	// Four distinct top-level functions: closures generated from the same
	// literal (e.g. inside a loop) share one code pointer under
	// reflect.Value.Pointer, which would collide as the same callback
	// identity and defeat this test.
	c1 := func(evt *types.EventData, arg interface{}) { log = append(log, "c1") }
	c2 := func(evt *types.EventData, arg interface{}) { log = append(log, "c2") }
	c3 := func(evt *types.EventData, arg interface{}) { log = append(log, "c3") }
	c4 := func(evt *types.EventData, arg interface{}) { log = append(log, "c4") }
	for _, cb := range []types.NotifyCallback{c1, c2, c3, c4} {
		if err := e.Bind(cb, nil); err != nil {
			t.Fatalf("Bind: %v", err)
		}
	}

	if err := e.Trigger(nil, nil, nil); err != nil {
		t.Fatalf("Trigger: %v", err)
	}

	want := []string{"c1", "c2", "c3", "c4"}
	if !equalStrings(log, want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
}

func TestPrepareUnprepareTriggerBalancesAllocation(t *testing.T) {
	t.Cleanup(func() { _ = SetMemoryFuncs(MemoryFuncs{}) })

	var allocs, frees int
	next := Token(1)
	if err := SetMemoryFuncs(MemoryFuncs{
		Alloc: func(size int) (Token, bool) {
			allocs++
			tok := next
			next++
			return tok, true
		},
		Free: func(tok Token) { frees++ },
	}); err != nil {
		t.Fatalf("SetMemoryFuncs: %v", err)
	}

	d, err := New("src")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	allocsBefore := allocs

	record, err := d.PrepareTrigger()
	if err != nil {
		t.Fatalf("PrepareTrigger: %v", err)
	}
	d.UnprepareTrigger(record)

	if allocs-allocsBefore != 1 {
		t.Fatalf("expected exactly one allocation for the prepared record, got %d", allocs-allocsBefore)
	}
	if frees != 1 {
		t.Fatalf("expected exactly one free from UnprepareTrigger, got %d", frees)
	}
}

func TestCreateEventRejectsEmptyName(t *testing.T) {
	d := mustDispatcher(t, "src")
	if _, err := d.CreateEvent(""); err == nil {
		t.Fatal("expected an error for empty event name")
	}
}

func TestCreateEventRejectsDuplicateName(t *testing.T) {
	d := mustDispatcher(t, "src")
	if _, err := d.CreateEvent("E"); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if _, err := d.CreateEvent("e"); err == nil {
		t.Fatal("expected duplicate (case-folded) event name to be rejected")
	}
}

func TestGetEventIsCaseInsensitive(t *testing.T) {
	d := mustDispatcher(t, "src")
	if _, err := d.CreateEvent("Connect"); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if _, ok := d.GetEvent("CONNECT"); !ok {
		t.Fatal("GetEvent should be case-insensitive")
	}
}

func TestUnbindUnknownCallbackIsNoOp(t *testing.T) {
	d := mustDispatcher(t, "src")
	e, err := d.CreateEvent("E")
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	e.Unbind(func(evt *types.EventData, arg interface{}) {})
}

func TestWithQueueConfigRejectsTriggerPastMaxDepth(t *testing.T) {
	d, err := New("src", WithQueueConfig(config.QueueConfig{MaxDepth: 1}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e, err := d.CreateEvent("E")
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	// dequeue() pops the current moment before its callbacks run, so
	// queueLen is 0 for the first nested Trigger inside this callback; a
	// second nested Trigger, still within the same walk, finds the queue
	// already at MaxDepth from the first and must be rejected. Only the
	// outer moment's callback triggers; the nested moment it enqueued
	// returns at once, so the queue drains.
	var firstErr, secondErr error
	var nested bool
	if err := e.Bind(func(evt *types.EventData, arg interface{}) {
		if nested {
			return
		}
		nested = true
		firstErr = e.Trigger(nil, nil, nil)
		secondErr = e.Trigger(nil, nil, nil)
	}, nil); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	if err := e.Trigger(nil, nil, nil); err != nil {
		t.Fatalf("outer Trigger: %v", err)
	}
	if firstErr != nil {
		t.Fatalf("first nested Trigger should succeed under MaxDepth, got %v", firstErr)
	}
	if secondErr == nil {
		t.Fatal("expected the second nested Trigger to be rejected once the queue is at MaxDepth")
	}
}

func TestOperationsAfterDestroyReportClosed(t *testing.T) {
	d := mustDispatcher(t, "src")
	e, err := d.CreateEvent("E")
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	d.Destroy()

	if _, err := d.CreateEvent("F"); !errors.Is(err, types.ErrDispatcherClosed) {
		t.Fatalf("CreateEvent after Destroy = %v, want ErrDispatcherClosed", err)
	}
	if _, err := d.PrepareTrigger(); !errors.Is(err, types.ErrDispatcherClosed) {
		t.Fatalf("PrepareTrigger after Destroy = %v, want ErrDispatcherClosed", err)
	}
	if err := e.Trigger(nil, nil, nil); !errors.Is(err, types.ErrDispatcherClosed) {
		t.Fatalf("Trigger after Destroy = %v, want ErrDispatcherClosed", err)
	}
}

func equalStrings(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
