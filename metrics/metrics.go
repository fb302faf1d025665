// Package metrics exposes form and store events as Prometheus metrics.
//
// Observer implements observability.Observer, so it can be passed to
// form.WithObserver and store.WithObserver directly or combined with a
// logging observer through observability.NewMultiObserver.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tailored-agentic-units/formkit/form"
	"github.com/tailored-agentic-units/formkit/observability"
	"github.com/tailored-agentic-units/formkit/store"
)

const (
	namespace = "formkit"

	resultValid   = "valid"
	resultInvalid = "invalid"

	outcomeSubmitted     = "submitted"
	outcomeListenerError = "listener_error"
)

// Observer counts validations, submissions and dispatches.
type Observer struct {
	validations       *prometheus.CounterVec
	validatorFailures *prometheus.CounterVec
	validatorDuration prometheus.Histogram
	submissions       *prometheus.CounterVec
	listenerErrors    *prometheus.CounterVec
	triggers          prometheus.Counter
	dispatches        *prometheus.CounterVec
	lifecycle         *prometheus.CounterVec
}

// NewObserver registers the form metrics with reg. A nil reg uses
// prometheus.DefaultRegisterer. Registering twice with the same registry
// panics, as with any Prometheus collector.
func NewObserver(reg prometheus.Registerer) *Observer {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Observer{
		validations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "form",
				Name:      "validations_total",
				Help:      "Total number of form validations by result",
			},
			[]string{"result"},
		),
		validatorFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "form",
				Name:      "validator_failures_total",
				Help:      "Total number of failed validator runs by field path",
			},
			[]string{"path"},
		),
		validatorDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "form",
				Name:      "validator_duration_seconds",
				Help:      "Duration of single validator runs in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
		),
		submissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "form",
				Name:      "submissions_total",
				Help:      "Total number of submissions by trigger and outcome",
			},
			[]string{"trigger", "outcome"},
		),
		listenerErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "form",
				Name:      "listener_errors_total",
				Help:      "Total number of submit listener failures by trigger",
			},
			[]string{"trigger"},
		),
		triggers: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "form",
				Name:      "value_triggers_total",
				Help:      "Total number of value-triggered submissions fired",
			},
		),
		dispatches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "dispatches_total",
				Help:      "Total number of store dispatches by action type",
			},
			[]string{"action"},
		),
		lifecycle: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "form",
				Name:      "lifecycle_total",
				Help:      "Total number of form resets and clears by operation",
			},
			[]string{"operation"},
		),
	}
}

func (o *Observer) OnEvent(ctx context.Context, event observability.Event) {
	switch event.Type {
	case form.EventValidateComplete:
		result := resultInvalid
		if valid, _ := event.Data["valid"].(bool); valid {
			result = resultValid
		}
		o.validations.WithLabelValues(result).Inc()

	case form.EventValidatorComplete:
		if valid, _ := event.Data["valid"].(bool); !valid {
			path, _ := event.Data["path"].(string)
			o.validatorFailures.WithLabelValues(path).Inc()
		}
		if d, ok := event.Data["duration"].(time.Duration); ok {
			o.validatorDuration.Observe(d.Seconds())
		}

	case form.EventSubmitSkipped:
		o.submissions.WithLabelValues(label(event, "trigger"), label(event, "reason")).Inc()

	case form.EventSubmitComplete:
		outcome := outcomeSubmitted
		if failed, _ := event.Data["failed"].(int); failed > 0 {
			outcome = outcomeListenerError
		}
		o.submissions.WithLabelValues(label(event, "trigger"), outcome).Inc()

	case form.EventListenerError:
		o.listenerErrors.WithLabelValues(label(event, "trigger")).Inc()

	case form.EventTriggerFired:
		o.triggers.Inc()

	case form.EventReset:
		o.lifecycle.WithLabelValues("reset").Inc()

	case form.EventClear:
		o.lifecycle.WithLabelValues("clear").Inc()

	case store.EventDispatch:
		o.dispatches.WithLabelValues(label(event, "action")).Inc()
	}
}

func label(event observability.Event, key string) string {
	s, _ := event.Data[key].(string)
	return s
}
