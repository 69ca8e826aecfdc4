// internal/form/controller_test.go
//
// Unit-tests for the submission state machine: single-flight guard,
// first-failure ordering, success reset with deferred action, and the
// failure path that preserves input.
//
// Run: go test ./internal/form -v

package form

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/notify"
)

// recordingNotifier captures notices so tests can assert on title and kind.
type recordingNotifier struct {
	mu      sync.Mutex
	notices []notify.Kind
	last    string
}

func (n *recordingNotifier) Notify(_, message string, kind notify.Kind) {
	n.mu.Lock()
	n.notices = append(n.notices, kind)
	n.last = message
	n.mu.Unlock()
}

// serverError mimics a gateway error that carries a backend message.
type serverError struct{ msg string }

func (e *serverError) Error() string       { return e.msg }
func (e *serverError) UserMessage() string { return e.msg }

func testDef() *FormDef {
	return &FormDef{
		ID: "test/register",
		Fields: []FieldDef{
			{Name: "name", Label: "Name", Kind: KindName, Required: true},
			{Name: "email", Label: "Email", Kind: KindEmail, Required: true},
			{Name: "password", Label: "Password", Kind: KindPassword, Required: true},
			{Name: "password_confirmation", Label: "Confirm", Kind: KindPasswordConfirm, Required: true},
		},
	}
}

func fillValid(c *Controller) {
	c.SetValue("name", "Ana Gómez")
	c.SetValue("email", "ana@petshop.co")
	c.SetValue("password", "P@ssw0rd")
	c.SetValue("password_confirmation", "P@ssw0rd")
}

func TestSubmitFirstFailureWins(t *testing.T) {
	calls := 0
	c := NewController(testDef(), func(context.Context, Values) (any, error) {
		calls++
		return nil, nil
	})
	// Both name and email are invalid; declared order says name reports.
	c.SetValue("name", "Ana123")
	c.SetValue("email", "not-an-email")

	out := c.Submit(context.Background())
	if out.State != StateInvalid || out.Field != "name" || out.Message != MsgNameInvalid {
		t.Fatalf("outcome = %+v, want Invalid on 'name' with %q", out, MsgNameInvalid)
	}
	if calls != 0 {
		t.Fatalf("gateway called %d times on invalid input, want 0", calls)
	}
}

func TestSubmitConfirmationMismatch(t *testing.T) {
	c := NewController(testDef(), func(context.Context, Values) (any, error) {
		t.Fatal("gateway must not be called")
		return nil, nil
	})
	fillValid(c)
	c.SetValue("password_confirmation", "P@ssw0rd2")

	out := c.Submit(context.Background())
	if out.State != StateInvalid || out.Field != "password_confirmation" || out.Message != MsgConfirmMismatch {
		t.Fatalf("outcome = %+v, want mismatch on confirmation", out)
	}
}

func TestSubmitSingleFlight(t *testing.T) {
	release := make(chan struct{})
	var calls int32
	var mu sync.Mutex

	c := NewController(testDef(), func(context.Context, Values) (any, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		<-release
		return "entity", nil
	})
	fillValid(c)

	first := make(chan Outcome, 1)
	go func() { first <- c.Submit(context.Background()) }()

	// Wait until the first trigger holds the guard.
	deadline := time.After(2 * time.Second)
	for {
		mu.Lock()
		n := calls
		mu.Unlock()
		if n == 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("first submission never reached the gateway")
		case <-time.After(time.Millisecond):
		}
	}

	// Second trigger while in flight: ignored, no extra gateway call.
	if out := c.Submit(context.Background()); out.State != StateSubmitting {
		t.Fatalf("concurrent trigger state = %v, want StateSubmitting", out.State)
	}

	close(release)
	if out := <-first; out.State != StateSucceeded {
		t.Fatalf("first trigger state = %v, want StateSucceeded", out.State)
	}
	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Fatalf("gateway calls = %d, want exactly 1", calls)
	}
}

func TestSubmitSuccessResetsAndDefers(t *testing.T) {
	fired := make(chan struct{})
	rec := &recordingNotifier{}

	c := NewController(testDef(),
		func(context.Context, Values) (any, error) { return map[string]any{"id": 1}, nil },
		WithNotifier(rec),
		WithDeferred(func() { close(fired) }),
		WithSuccessDelay(5*time.Millisecond),
	)
	fillValid(c)

	out := c.Submit(context.Background())
	if out.State != StateSucceeded || out.Entity == nil {
		t.Fatalf("outcome = %+v, want Succeeded with entity", out)
	}
	if vals := c.Values(); len(vals) != 0 {
		t.Fatalf("values after success = %v, want empty", vals)
	}
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("deferred action never fired")
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.notices) != 1 || rec.notices[0] != notify.KindSuccess {
		t.Fatalf("notices = %v, want one success", rec.notices)
	}
}

func TestCloseCancelsDeferred(t *testing.T) {
	fired := make(chan struct{})
	c := NewController(testDef(),
		func(context.Context, Values) (any, error) { return nil, nil },
		WithDeferred(func() { close(fired) }),
		WithSuccessDelay(30*time.Millisecond),
	)
	fillValid(c)

	if out := c.Submit(context.Background()); out.State != StateSucceeded {
		t.Fatalf("state = %v, want StateSucceeded", out.State)
	}
	c.Close()

	select {
	case <-fired:
		t.Fatal("deferred action fired after Close")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSubmitFailurePreservesValues(t *testing.T) {
	rec := &recordingNotifier{}
	c := NewController(testDef(),
		func(context.Context, Values) (any, error) {
			return nil, &serverError{msg: "Email is already registered."}
		},
		WithNotifier(rec),
	)
	fillValid(c)

	out := c.Submit(context.Background())
	if out.State != StateFailed || out.Message != "Email is already registered." {
		t.Fatalf("outcome = %+v, want Failed with server message", out)
	}
	if got := c.Values()["email"]; got != "ana@petshop.co" {
		t.Fatalf("email after failure = %q, want preserved input", got)
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.notices) != 1 || rec.notices[0] != notify.KindError {
		t.Fatalf("notices = %v, want one error", rec.notices)
	}
}

func TestSubmitFailureGenericFallback(t *testing.T) {
	c := NewController(testDef(), func(context.Context, Values) (any, error) {
		return nil, errors.New("dial tcp: connection refused")
	})
	fillValid(c)

	out := c.Submit(context.Background())
	if out.State != StateFailed || out.Message != MsgSubmitFailed {
		t.Fatalf("outcome = %+v, want generic failure message", out)
	}
}

func TestSubmitPrecheckVeto(t *testing.T) {
	calls := 0
	c := NewController(testDef(),
		func(context.Context, Values) (any, error) {
			calls++
			return nil, nil
		},
		WithPrecheck(func(_ context.Context, clean Values) (string, error) {
			return "A provider with this NIT is already registered.", nil
		}),
	)
	fillValid(c)

	out := c.Submit(context.Background())
	if out.State != StateInvalid || out.Message == "" {
		t.Fatalf("outcome = %+v, want Invalid with veto message", out)
	}
	if calls != 0 {
		t.Fatalf("gateway called %d times after veto, want 0", calls)
	}
}

func TestSubmitPrecheckErrorFails(t *testing.T) {
	c := NewController(testDef(),
		func(context.Context, Values) (any, error) {
			t.Fatal("gateway must not be called")
			return nil, nil
		},
		WithPrecheck(func(context.Context, Values) (string, error) {
			return "", errors.New("probe timed out")
		}),
	)
	fillValid(c)

	if out := c.Submit(context.Background()); out.State != StateFailed {
		t.Fatalf("state = %v, want StateFailed", out.State)
	}
}

func TestSubmitOmitsEmptyOptionalFromClean(t *testing.T) {
	def := &FormDef{
		ID: "test/provider",
		Fields: []FieldDef{
			{Name: "name", Label: "Name", Kind: KindName, Required: true},
			{Name: "payment_notes", Label: "Notes", Kind: KindTextarea},
		},
	}
	var got Values
	c := NewController(def, func(_ context.Context, clean Values) (any, error) {
		got = clean
		return nil, nil
	})
	c.SetValue("name", "Alimentos Max")
	c.SetValue("payment_notes", "   ")

	if out := c.Submit(context.Background()); out.State != StateSucceeded {
		t.Fatalf("state = %v, want StateSucceeded", out.State)
	}
	if _, present := got["payment_notes"]; present {
		t.Fatalf("clean = %v, empty optional must be omitted", got)
	}
}
