// Package saga runs a multi-store write as an ordered list of steps.
//
// Each step commits in its own store. When a step fails, the compensations
// of the already-committed steps run in reverse order and Run returns a
// *StepError naming the step that failed and the steps that had committed.
// Steps without a compensation are simply reported. When a failure leaves
// committed work behind, a TypeSagaStepFailed event is emitted.
//
// Once a step has committed, the remaining steps and any compensations run
// on a context detached from the caller's cancellation, so a client that
// disconnects mid-saga does not leave the later stores behind.
package saga

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/shop-api/internal/events"
	"github.com/phrazzld/shop-api/internal/platform/logger"
)

// Step is one write in a saga.
type Step struct {
	// Name identifies the step in errors, logs and events.
	Name string

	// Action performs the write.
	Action func(ctx context.Context) error

	// Compensate undoes Action. Optional.
	Compensate func(ctx context.Context) error

	// Tolerate, when set and returning true for the Action's error, records
	// the failure as drift and lets the saga continue.
	Tolerate func(err error) bool
}

// StepError reports a failed saga.
type StepError struct {
	Saga      string
	Step      string
	Committed []string
	Err       error

	// CompensationErrs holds failures of compensations that were attempted.
	CompensationErrs []error
}

func (e *StepError) Error() string {
	msg := fmt.Sprintf("%s: step %q failed", e.Saga, e.Step)
	if len(e.Committed) > 0 {
		msg += fmt.Sprintf(" after committing [%s]", strings.Join(e.Committed, ", "))
	}
	return msg + ": " + e.Err.Error()
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Saga is an ordered list of steps. It is not safe for concurrent Run calls;
// build one per operation.
type Saga struct {
	name    string
	steps   []Step
	emitter events.EventEmitter
	logger  *slog.Logger
	attrs   map[string]string
}

// New creates an empty saga. emitter may be nil, in which case failures
// are only logged.
func New(name string, emitter events.EventEmitter, l *slog.Logger) *Saga {
	if l == nil {
		l = slog.Default()
	}
	return &Saga{
		name:    name,
		emitter: emitter,
		logger:  l,
	}
}

// Step appends a step and returns the saga for chaining.
func (s *Saga) Step(step Step) *Saga {
	s.steps = append(s.steps, step)
	return s
}

// WithAttr attaches a key/value pair to any event the saga emits.
func (s *Saga) WithAttr(key, value string) *Saga {
	if s.attrs == nil {
		s.attrs = make(map[string]string)
	}
	s.attrs[key] = value
	return s
}

// Run executes the steps in order. Cancellation of ctx is honored only until
// the first step commits; context values are kept throughout.
func (s *Saga) Run(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("saga", s.name))

	committed := make([]int, 0, len(s.steps))
	for i, step := range s.steps {
		err := step.Action(ctx)
		if err == nil {
			if len(committed) == 0 {
				ctx = context.WithoutCancel(ctx)
			}
			committed = append(committed, i)
			continue
		}

		if step.Tolerate != nil && step.Tolerate(err) {
			log.Debug("tolerated step failure",
				slog.String("step", step.Name),
				slog.String("error", err.Error()))
			s.emitFailure(ctx, log, step.Name, s.names(committed), err, true)
			continue
		}

		stepErr := &StepError{
			Saga:      s.name,
			Step:      step.Name,
			Committed: s.names(committed),
			Err:       err,
		}
		stepErr.CompensationErrs = s.compensate(ctx, log, committed)
		if len(stepErr.Committed) > 0 {
			s.emitFailure(ctx, log, step.Name, stepErr.Committed, err, false)
		}
		return stepErr
	}
	return nil
}

func (s *Saga) names(idx []int) []string {
	out := make([]string, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.steps[i].Name)
	}
	return out
}

// compensate runs compensations of committed steps in reverse order.
func (s *Saga) compensate(ctx context.Context, log *slog.Logger, committed []int) []error {
	var errs []error
	for i := len(committed) - 1; i >= 0; i-- {
		step := s.steps[committed[i]]
		if step.Compensate == nil {
			continue
		}
		if err := step.Compensate(ctx); err != nil {
			log.Error("compensation failed",
				slog.String("step", step.Name),
				slog.String("error", err.Error()))
			errs = append(errs, fmt.Errorf("compensate %s: %w", step.Name, err))
		}
	}
	return errs
}

func (s *Saga) emitFailure(ctx context.Context, log *slog.Logger, step string, committed []string, cause error, tolerated bool) {
	if s.emitter == nil {
		log.Warn("saga step failed",
			slog.String("step", step),
			slog.Any("committed_steps", committed),
			slog.String("error", cause.Error()))
		return
	}

	event, err := events.NewEvent(events.TypeSagaStepFailed, events.StepFailedPayload{
		Saga:      s.name,
		Step:      step,
		Committed: committed,
		Error:     cause.Error(),
		Tolerated: tolerated,
		Attrs:     s.attrs,
	})
	if err == nil {
		err = s.emitter.EmitEvent(ctx, event)
	}
	if err != nil {
		log.Error("failed to publish saga failure", slog.String("error", err.Error()))
	}
}

// IsStepError reports whether err came from a failed saga and returns it.
func IsStepError(err error) (*StepError, bool) {
	var se *StepError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
