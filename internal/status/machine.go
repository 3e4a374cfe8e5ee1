package status

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// State constants for statekit integration.
// These must remain untyped string constants for statekit.StateID compatibility.
const (
	StateStopped = "stopped"
	StateRunning = "running"
)

// Timer events.
const (
	EventStart  = "start"  // stopped -> running
	EventSwitch = "switch" // running -> running, closing the previous task
	EventStop   = "stop"   // running -> stopped, logging the interval
	EventCancel = "cancel" // running -> stopped, discarding the interval
)

// events lists every timer event in a stable order.
var events = []string{EventStart, EventSwitch, EventStop, EventCancel}

// actionAccept runs on every transition the machine takes.
const actionAccept = "accept"

// timerContext is the statekit context. It counts the events the machine
// accepted; the persisted Status is the source of truth for the task.
type timerContext struct {
	Accepted int
	Last     string
}

// Machine enforces the allowed timer transitions.
type Machine struct {
	interpreter *statekit.Interpreter[timerContext]
}

// NewMachine builds a machine positioned at the given status kind.
func NewMachine(initial Kind) (*Machine, error) {
	builder := statekit.NewMachine[timerContext]("timer").
		WithInitial(statekit.StateID(stateOf(initial))).
		WithContext(timerContext{}).
		WithAction(actionAccept, func(ctx *timerContext, e statekit.Event) {
			ctx.Accepted++
			ctx.Last = string(e.Type)
		})

	builder.State(StateStopped).
		On(EventStart).Target(StateRunning).Do(actionAccept).
		Done()

	builder.State(StateRunning).
		On(EventSwitch).Target(StateRunning).Do(actionAccept).
		On(EventStop).Target(StateStopped).Do(actionAccept).
		On(EventCancel).Target(StateStopped).Do(actionAccept).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build timer machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &Machine{interpreter: interpreter}, nil
}

// Transition sends event to the machine, returning ErrInvalidTransition if
// the machine did not take a transition for it. A switch leaves the state
// unchanged, so acceptance is read from the context rather than the state.
func (m *Machine) Transition(event string) error {
	before := m.interpreter.State()
	m.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	after := m.interpreter.State()

	if after.Context.Accepted == before.Context.Accepted {
		return fmt.Errorf("%w: cannot %s while %s", ErrInvalidTransition, event, before.Value)
	}
	return nil
}

// Current returns the machine's state as a status Kind.
func (m *Machine) Current() Kind {
	if string(m.interpreter.State().Value) == StateRunning {
		return KindRunning
	}
	return KindStopped
}

// CanTransition reports whether event is valid from kind.
func CanTransition(kind Kind, event string) bool {
	m, err := NewMachine(kind)
	if err != nil {
		return false
	}
	return m.Transition(event) == nil
}

// ValidEvents returns the events accepted from kind.
func ValidEvents(kind Kind) []string {
	out := []string{}
	for _, e := range events {
		if CanTransition(kind, e) {
			out = append(out, e)
		}
	}
	return out
}

func stateOf(kind Kind) string {
	if kind == KindRunning {
		return StateRunning
	}
	return StateStopped
}
