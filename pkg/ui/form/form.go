package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/HehLul/HadeedInstitute-MVP/pkg/model"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/server/store"
)

// DefaultAutoCloseDelay is how long the success message is shown
const DefaultAutoCloseDelay = 1500 * time.Millisecond

var (
	ErrSubmitInFlight = errors.New("a submission is already in flight")
	ErrClosed         = errors.New("form is closed")
	ErrDestroyed      = errors.New("form has been destroyed")
)

// Timer is a scheduled callback that can be cancelled
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d
type Scheduler func(d time.Duration, f func()) Timer

// AfterFunc schedules with the runtime timer
func AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Form is one visitor's submission form. All methods are safe for
// concurrent use.
type Form struct {
	store    store.ResourcesStore
	logger   *slog.Logger
	delay    time.Duration
	schedule Scheduler

	mu    sync.Mutex
	state State
	// session changes on every open, close and destroy; a submission
	// finishing under an older session leaves the state alone
	session   uint64
	timer     Timer
	timerID   uint64
	destroyed bool
}

// Option configures a Form
type Option func(*Form)

// WithAutoCloseDelay sets how long the success message stays visible
func WithAutoCloseDelay(d time.Duration) Option {
	return func(f *Form) { f.delay = d }
}

// WithScheduler replaces the timer used for auto close
func WithScheduler(s Scheduler) Option {
	return func(f *Form) { f.schedule = s }
}

// WithLogger sets the logger submission failures are written to
func WithLogger(logger *slog.Logger) Option {
	return func(f *Form) { f.logger = logger }
}

// New returns a closed form
func New(s store.ResourcesStore, opts ...Option) *Form {
	f := &Form{
		store:    s,
		logger:   slog.Default(),
		delay:    DefaultAutoCloseDelay,
		schedule: AfterFunc,
		state:    Initial(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// State returns a snapshot of the form's state
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot()
}

func (f *Form) snapshot() State {
	s := f.state
	if s.Errors != nil {
		errs := make(map[Field]string, len(s.Errors))
		for k, v := range s.Errors {
			errs[k] = v
		}
		s.Errors = errs
	}
	return s
}

func (f *Form) dispatch(e Event) {
	f.state = Reduce(f.state, e)
}

// Open shows an empty form with the default type selected
func (f *Form) Open() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.destroyed {
		return ErrDestroyed
	}
	f.cancelTimer()
	f.session++
	f.dispatch(Opened{})
	return nil
}

// Close hides the form and discards what was entered. A submission still
// in flight completes against the store but no longer affects the form.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.destroyed {
		return
	}
	f.cancelTimer()
	f.session++
	f.dispatch(Closed{})
}

// Destroy releases the form. Pending callbacks never fire afterwards.
func (f *Form) Destroy() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelTimer()
	f.session++
	f.destroyed = true
	f.state = Initial()
}

// Edit replaces one field
func (f *Form) Edit(field Field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkEditable(); err != nil {
		return err
	}
	f.dispatch(Edited{Field: field, Value: value})
	return nil
}

// Fill replaces every field at once, as a posted HTML form does
func (f *Form) Fill(fields Fields) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkEditable(); err != nil {
		return err
	}
	for _, e := range []Edited{
		{FieldTitle, fields.Title},
		{FieldBody, fields.Body},
		{FieldURL, fields.URL},
		{FieldTags, fields.Tags},
		{FieldAuthor, fields.Author},
	} {
		f.dispatch(e)
	}
	return nil
}

// ChangeType selects a resource type and clears every field
func (f *Form) ChangeType(t model.ResourceType) error {
	if !t.Valid() {
		return fmt.Errorf("unknown resource type %q", t)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkEditable(); err != nil {
		return err
	}
	f.dispatch(TypeChanged{Type: t})
	return nil
}

func (f *Form) checkOpen() error {
	if f.destroyed {
		return ErrDestroyed
	}
	if !f.state.Open {
		return ErrClosed
	}
	return nil
}

// checkEditable also rejects edits while a submission is in flight
func (f *Form) checkEditable() error {
	if err := f.checkOpen(); err != nil {
		return err
	}
	if f.state.Submitting() {
		return ErrSubmitInFlight
	}
	return nil
}

// Submit validates the fields and sends them to the store. It returns
// ErrSubmitInFlight while another submission runs, a *ValidationError when
// required fields are missing and the store error when the insert fails.
// On success the form closes itself after the auto close delay.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if err := f.checkOpen(); err != nil {
		f.mu.Unlock()
		return err
	}
	if f.state.Submitting() {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}
	if errs := Validate(f.state.Type, f.state.Fields); errs != nil {
		f.dispatch(Rejected{Errors: errs})
		f.mu.Unlock()
		return &ValidationError{Fields: errs}
	}

	f.cancelTimer()
	f.dispatch(SubmitStarted{})
	session := f.session
	input := f.state.Fields.Submission(f.state.Type).Input()
	f.mu.Unlock()

	_, err := f.store.AddResource(ctx, input)

	f.mu.Lock()
	defer f.mu.Unlock()

	if session != f.session {
		if err != nil {
			f.logger.Error("error submitting form after it was closed", "error", err)
		}
		return err
	}
	if err != nil {
		f.logger.Error("error submitting form", "type", string(input.Type), "error", err)
		f.dispatch(SubmitFailed{Err: err})
		return err
	}

	f.dispatch(SubmitSucceeded{})
	f.scheduleAutoClose()
	return nil
}

func (f *Form) scheduleAutoClose() {
	f.timerID++
	id := f.timerID
	f.timer = f.schedule(f.delay, func() { f.autoClose(id) })
}

func (f *Form) autoClose(id uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.destroyed || id != f.timerID || f.timer == nil {
		return
	}
	f.timer = nil
	f.session++
	f.dispatch(AutoClosed{})
}

// cancelTimer stops a pending auto close. The id bump covers a callback
// that already started and is waiting for the lock.
func (f *Form) cancelTimer() {
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.timerID++
}

// AutoClosePending reports whether an auto close is scheduled
func (f *Form) AutoClosePending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.timer != nil
}
