package form

import "github.com/tailored-agentic-units/formkit/observability"

const (
	// Lifecycle
	EventCreate      observability.EventType = "form.create"
	EventReset       observability.EventType = "form.reset"
	EventClear       observability.EventType = "form.clear"
	EventUnsubscribe observability.EventType = "form.unsubscribe"

	// Value-triggered submission
	EventTriggerArmed observability.EventType = "form.trigger.armed"
	EventTriggerFired observability.EventType = "form.trigger.fired"

	// Validation
	EventValidateStart     observability.EventType = "form.validate.start"
	EventValidatorComplete observability.EventType = "form.validator.complete"
	EventValidateComplete  observability.EventType = "form.validate.complete"

	// Submission
	EventSubmitStart    observability.EventType = "form.submit.start"
	EventSubmitSkipped  observability.EventType = "form.submit.skipped"
	EventSubmitComplete observability.EventType = "form.submit.complete"
	EventListenerError  observability.EventType = "form.listener.error"
)

// Trigger values reported in submission events.
const (
	TriggerManual = "manual"
	TriggerValue  = "value"
)

// Reasons reported by EventSubmitSkipped.
const (
	SkipNoListeners = "no_listeners"
	SkipInvalid     = "invalid"
)
