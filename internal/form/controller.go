// internal/form/controller.go
//
// PetManager – Forms subsystem: submission controller.
//
// Context
//   One Controller owns the state of one live form instance: its current
//   field values and the single-flight submission guard.  A submit trigger
//   walks the state machine
//
//       Idle → Validating → (Invalid | Submitting) → (Succeeded | Failed) → Idle
//
//   Validators run in the form definition’s declared field order and the
//   first failure wins: the controller surfaces that validator’s message and
//   returns to Idle without touching the network.  When every field passes,
//   an optional pre-check hook (e.g. the provider NIT uniqueness probe) may
//   still veto the submission.  Only then is the remote gateway invoked.
//
//   The guard admits exactly one in-flight submission per Controller; a
//   second trigger while one is pending is ignored and reported as such.
//   The guard is released on every exit path, like a scoped lock.
//
// Workflow
//   •  Success: values reset to empty, a success notification is emitted,
//      and an optional deferred action fires after SuccessDelay (1.5 s by
//      default) unless the Controller is closed first.
//   •  Failure: values are preserved for correction, and the error
//      notification carries the server-provided message when the gateway
//      error exposes one, else a generic fallback.  No automatic retries.
//
//------------------------------------------------------------------------------

package form

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/metrics"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/notify"
)

// State identifies a point in the submission state machine.  Idle is the
// rest state; Invalid, Succeeded, and Failed are the observable outcomes.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateInvalid
	StateSubmitting
	StateSucceeded
	StateFailed
)

// String returns the lowercase label used for metrics and logs.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateInvalid:
		return "invalid"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// MsgSubmitFailed is the generic fallback shown when the gateway rejects a
// submission without a usable message.
const MsgSubmitFailed = "Something went wrong while submitting.  Please try again."

// DefaultSuccessDelay is how long the success notice stays on screen before
// a deferred post-success action (typically navigation back) fires.
const DefaultSuccessDelay = 1500 * time.Millisecond

// Values holds the current field inputs of a live form instance, keyed by
// field name.  Reset to empty on successful submission; preserved on
// failure so the user can correct and resubmit.
type Values map[string]string

// SubmitFunc performs the remote create/register once local validation has
// passed.  clean only contains values that satisfied their validators.  The
// returned entity is handed back verbatim in the Outcome.
type SubmitFunc func(ctx context.Context, clean Values) (any, error)

// PrecheckFunc may veto a submission after local validation but before the
// gateway call.  A non-empty veto string halts the submission with that
// message; a non-nil error follows the Failed path.
type PrecheckFunc func(ctx context.Context, clean Values) (veto string, err error)

// Outcome reports how one submit trigger resolved.  Field is set for
// Invalid outcomes caused by a specific validator; Entity for Succeeded.
//
// A trigger that arrived while another submission was in flight resolves to
// StateSubmitting with no side effects: the trigger was ignored.
type Outcome struct {
	State   State
	Field   string
	Message string
	Entity  any
}

// userMessager is satisfied by gateway errors that carry a server-provided,
// human-readable message (see internal/api.Error).
type userMessager interface{ UserMessage() string }

// Controller drives submissions for one form instance.  Safe for concurrent
// use; concurrent triggers collapse to one remote call.
type Controller struct {
	def      *FormDef
	submit   SubmitFunc
	precheck PrecheckFunc
	notifier notify.Notifier

	onSuccess    func()
	successDelay time.Duration

	inFlight atomic.Bool

	mu       sync.Mutex
	values   Values
	navTimer *time.Timer
	closed   bool
}

// Option tweaks a Controller at construction time.
type Option func(*Controller)

// WithPrecheck installs a pre-submission veto hook.
func WithPrecheck(fn PrecheckFunc) Option { return func(c *Controller) { c.precheck = fn } }

// WithNotifier routes success and error notices to n instead of the
// process-wide logger.
func WithNotifier(n notify.Notifier) Option { return func(c *Controller) { c.notifier = n } }

// WithDeferred schedules fn to run SuccessDelay after a successful
// submission, unless the Controller is closed first.
func WithDeferred(fn func()) Option { return func(c *Controller) { c.onSuccess = fn } }

// WithSuccessDelay overrides DefaultSuccessDelay.  Tests use very short
// delays.
func WithSuccessDelay(d time.Duration) Option { return func(c *Controller) { c.successDelay = d } }

// NewController builds a Controller for def whose remote operation is
// submit.
func NewController(def *FormDef, submit SubmitFunc, opts ...Option) *Controller {
	c := &Controller{
		def:          def,
		submit:       submit,
		notifier:     notify.Log{},
		successDelay: DefaultSuccessDelay,
		values:       Values{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Def returns the form definition this controller drives.
func (c *Controller) Def() *FormDef { return c.def }

// SetValue records the current input for one field.
func (c *Controller) SetValue(name, v string) {
	c.mu.Lock()
	c.values[name] = v
	c.mu.Unlock()
}

// Values returns a copy of the current field inputs.
func (c *Controller) Values() Values {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(Values, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}

// Reset clears all field inputs, as after a successful submission.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.values = Values{}
	c.mu.Unlock()
}

// Submit runs the full state machine once: validate in declared order,
// pre-check, call the gateway, and interpret the result.  It is synchronous;
// the returned Outcome is the final state of this trigger.
func (c *Controller) Submit(ctx context.Context) Outcome {
	// Single-flight guard.  Released on every exit path below.
	if !c.inFlight.CompareAndSwap(false, true) {
		metrics.FormSubmissions.WithLabelValues(c.def.ID, "ignored").Inc()
		return Outcome{State: StateSubmitting}
	}
	defer c.inFlight.Store(false)

	vals := c.Values()

	// Validating: declared order, first failure wins, no network contact.
	clean := make(Values, len(c.def.Fields))
	for i := range c.def.Fields {
		f := &c.def.Fields[i]
		cleaned, verdict := ValidateField(f, vals[f.Name], vals[f.MatchField()])
		if !verdict.OK {
			metrics.FormValidationFailures.WithLabelValues(c.def.ID, f.Name).Inc()
			metrics.FormSubmissions.WithLabelValues(c.def.ID, "invalid").Inc()
			return Outcome{State: StateInvalid, Field: f.Name, Message: verdict.Message}
		}
		if cleaned != "" {
			clean[f.Name] = cleaned
		}
	}

	// Optional pre-check (uniqueness probes and similar).
	if c.precheck != nil {
		veto, err := c.precheck(ctx, clean)
		if err != nil {
			return c.failed(err)
		}
		if veto != "" {
			metrics.FormSubmissions.WithLabelValues(c.def.ID, "vetoed").Inc()
			return Outcome{State: StateInvalid, Message: veto}
		}
	}

	// Submitting: exactly one gateway call per admitted trigger.
	entity, err := c.submit(ctx, clean)
	if err != nil {
		return c.failed(err)
	}

	// Succeeded: reset values, notify, and arm the deferred action.
	c.Reset()
	metrics.FormSubmissions.WithLabelValues(c.def.ID, "succeeded").Inc()
	c.notifier.Notify("Success", c.successMessage(), notify.KindSuccess)
	c.armDeferred()
	return Outcome{State: StateSucceeded, Entity: entity}
}

// failed maps a gateway or pre-check error to the Failed outcome: values
// stay put, and the notice prefers the server-provided message.
func (c *Controller) failed(err error) Outcome {
	msg := MsgSubmitFailed
	var um userMessager
	if errors.As(err, &um) && um.UserMessage() != "" {
		msg = um.UserMessage()
	}
	metrics.FormSubmissions.WithLabelValues(c.def.ID, "failed").Inc()
	c.notifier.Notify("Error", msg, notify.KindError)
	return Outcome{State: StateFailed, Message: msg}
}

func (c *Controller) successMessage() string {
	if c.def.SuccessMsg != "" {
		return c.def.SuccessMsg
	}
	return "The form was submitted successfully."
}

// armDeferred schedules the post-success action.  A Controller that was
// closed (view torn down) never fires it.
func (c *Controller) armDeferred() {
	if c.onSuccess == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if c.navTimer != nil {
		c.navTimer.Stop()
	}
	c.navTimer = time.AfterFunc(c.successDelay, c.onSuccess)
}

// Close cancels any pending deferred action and marks the controller dead.
// Called when the owning view is torn down or the session expires.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.navTimer != nil {
		c.navTimer.Stop()
		c.navTimer = nil
	}
}
