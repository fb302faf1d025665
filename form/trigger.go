package form

import (
	"context"

	"github.com/looplab/fsm"
)

const (
	triggerIdle  = "idle"
	triggerArmed = "armed"

	triggerArm     = "arm"
	triggerConsume = "consume"
)

// trigger records that a value changed since the last store notification.
// Arming an armed trigger and consuming an idle one are rejected by the
// machine, which is what collapses several value dispatches into a single
// firing.
type trigger struct {
	machine *fsm.FSM
}

func newTrigger() *trigger {
	return &trigger{
		machine: fsm.NewFSM(
			triggerIdle,
			fsm.Events{
				{Name: triggerArm, Src: []string{triggerIdle}, Dst: triggerArmed},
				{Name: triggerConsume, Src: []string{triggerArmed}, Dst: triggerIdle},
			},
			fsm.Callbacks{},
		),
	}
}

// arm reports whether this call moved the trigger from idle to armed.
func (t *trigger) arm() bool {
	return t.machine.Event(context.Background(), triggerArm) == nil
}

// consume reports whether this call moved the trigger from armed to idle.
// Only one concurrent caller can win.
func (t *trigger) consume() bool {
	return t.machine.Event(context.Background(), triggerConsume) == nil
}
