package mutation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/five82/cookbook/internal/recipes"
)

// Action is the mutation a form performs.
type Action string

const (
	ActionCreate Action = "create"
	ActionDelete Action = "delete"
)

// Kind names the resource a form mutates. It is interpolated into messages.
type Kind string

const (
	KindCategory Kind = "category"
	KindRecipe   Kind = "recipe"
)

// Status is the lifecycle position of a form.
type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusError
	StatusSuccess
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusError:
		return "error"
	case StatusSuccess:
		return "success"
	default:
		return "idle"
	}
}

// Config parameterizes a form instance.
type Config struct {
	Action             Action
	Kind               Kind
	FormTitle          string
	InputPlaceholder   string
	ConfirmPlaceholder string
	SuccessMessage     string
	Endpoint           func(id string) string
	RedirectPath       string
}

// Submission is the single network call a valid submit produces.
type Submission struct {
	Method string
	URL    string
	Body   any
}

// Executor performs submissions. *recipes.Client satisfies it.
type Executor interface {
	Send(ctx context.Context, method, rawURL string, payload any) error
}

// Run performs the submission with exec.
func (s Submission) Run(ctx context.Context, exec Executor) error {
	if exec == nil {
		return errors.New("mutation executor is nil")
	}
	return exec.Send(ctx, s.Method, s.URL, s.Body)
}

// ValidationError is a local input failure. It never reaches the network.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ErrBusy is returned by Submit while a call is in flight or a success
// redirect is pending.
var ErrBusy = errors.New("mutation already in progress")

type namePayload struct {
	Name string `json:"name"`
}

// Form holds the state of one mounted create/delete form. It is driven
// from a single event loop and is not safe for concurrent use.
type Form struct {
	cfg        Config
	resourceID string

	input        string
	confirmation string

	status  Status
	message string

	redirect Redirector
}

// NewForm returns an idle form. resourceID is passed to the endpoint
// builder and is ignored by create forms.
func NewForm(cfg Config, resourceID string) *Form {
	return &Form{cfg: cfg, resourceID: resourceID}
}

// Config returns the form's configuration.
func (f *Form) Config() Config { return f.cfg }

// ResourceID returns the id the form was mounted with.
func (f *Form) ResourceID() string { return f.resourceID }

// SetInput updates the name field used by create forms.
func (f *Form) SetInput(s string) { f.input = s }

// SetConfirmation updates the confirmation field used by delete forms.
func (f *Form) SetConfirmation(s string) { f.confirmation = s }

func (f *Form) Input() string        { return f.input }
func (f *Form) Confirmation() string { return f.confirmation }
func (f *Form) Status() Status       { return f.status }
func (f *Form) Message() string      { return f.message }
func (f *Form) Closed() bool         { return f.redirect.Closed() }

// Submit validates the current input. A valid form moves to pending and
// returns the call to perform; an invalid one records the validation
// message and returns *ValidationError.
//
// Create names are trimmed: a name of only whitespace is rejected, and
// surrounding spaces are stripped from the name that is sent.
func (f *Form) Submit() (Submission, error) {
	if f.redirect.Closed() || f.status == StatusPending || f.redirect.Armed() {
		return Submission{}, ErrBusy
	}
	if err := f.validate(); err != nil {
		f.status = StatusError
		f.message = err.Message
		return Submission{}, err
	}

	sub := Submission{URL: f.endpoint()}
	switch f.cfg.Action {
	case ActionDelete:
		sub.Method = http.MethodDelete
	default:
		sub.Method = http.MethodPost
		sub.Body = namePayload{Name: strings.TrimSpace(f.input)}
	}
	f.status = StatusPending
	f.message = ""
	return sub, nil
}

func (f *Form) validate() *ValidationError {
	switch f.cfg.Action {
	case ActionDelete:
		if !strings.EqualFold(f.confirmation, "delete") {
			return &ValidationError{Message: "You must type 'delete' to confirm."}
		}
	case ActionCreate:
		if strings.TrimSpace(f.input) == "" {
			return &ValidationError{Message: fmt.Sprintf("You must provide a %s name.", f.cfg.Kind)}
		}
	default:
		return &ValidationError{Message: fmt.Sprintf("Unsupported action %q.", f.cfg.Action)}
	}
	return nil
}

func (f *Form) endpoint() string {
	if f.cfg.Endpoint == nil {
		return ""
	}
	return f.cfg.Endpoint(f.resourceID)
}

// Resolve records the outcome of the pending call. On success it arms and
// returns the redirect; the second return value is false when nothing was
// armed, including results that arrive after Close.
func (f *Form) Resolve(err error) (Redirect, bool) {
	if f.redirect.Closed() || f.status != StatusPending {
		return Redirect{}, false
	}
	if err != nil {
		f.status = StatusError
		f.message = f.failureMessage(err)
		return Redirect{}, false
	}
	f.status = StatusSuccess
	f.message = f.cfg.SuccessMessage
	return f.redirect.Arm(f.cfg.RedirectPath)
}

func (f *Form) failureMessage(err error) string {
	return recipes.Describe(err,
		fmt.Sprintf("Failed to %s %s.", f.cfg.Action, f.cfg.Kind),
		fmt.Sprintf("An unexpected error occurred while trying to %s the %s.", f.cfg.Action, f.cfg.Kind),
	)
}

// Fire consumes the armed redirect. It reports false when token does not
// match, the redirect already fired, or the form was closed.
func (f *Form) Fire(token uint64) (string, bool) {
	return f.redirect.Fire(token)
}

// Close tears the form down and disarms any pending redirect.
func (f *Form) Close() {
	f.redirect.Close()
}
