package form

import (
	"github.com/HehLul/HadeedInstitute-MVP/pkg/model"
)

const (
	MessageSuccess = "Resource successfully shared!"
	MessageFailure = "Failed to submit. Please try again."
)

//go:generate go run github.com/dmarkham/enumer -type Status -trimprefix Status -transform lower -output status.gen.go

// Status is the submission phase of a form
type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusSuccess
	StatusFailure
)

// Field names an editable input
type Field string

const (
	FieldTitle  Field = "title"
	FieldBody   Field = "body"
	FieldURL    Field = "url"
	FieldTags   Field = "tags"
	FieldAuthor Field = "author"
)

// Fields are the text inputs of the form
type Fields struct {
	Title  string
	Body   string
	URL    string
	Tags   string
	Author string
}

// With returns a copy of f with one field replaced
func (f Fields) With(field Field, value string) Fields {
	switch field {
	case FieldTitle:
		f.Title = value
	case FieldBody:
		f.Body = value
	case FieldURL:
		f.URL = value
	case FieldTags:
		f.Tags = value
	case FieldAuthor:
		f.Author = value
	}
	return f
}

// Submission builds the typed submission for t from the fields
func (f Fields) Submission(t model.ResourceType) model.Submission {
	return model.Submission{
		Title:   f.Title,
		Author:  f.Author,
		Tags:    f.Tags,
		Content: model.NewContent(t, f.Body, f.URL),
	}
}

// State is the whole state of a form
type State struct {
	Open    bool
	Type    model.ResourceType
	Fields  Fields
	Status  Status
	Message string
	Errors  map[Field]string
}

// Initial is the state of a new, closed form
func Initial() State {
	return State{Type: model.ResourceTypeReflection}
}

// Submitting reports whether a submission is in flight
func (s State) Submitting() bool {
	return s.Status == StatusSubmitting
}

// Event changes a form's state
type Event interface {
	isEvent()
}

type (
	// Opened shows an empty form
	Opened struct{}
	// Closed hides the form and discards its values
	Closed struct{}
	// Edited replaces one field
	Edited struct {
		Field Field
		Value string
	}
	// TypeChanged selects a resource type and clears every field
	TypeChanged struct {
		Type model.ResourceType
	}
	// Rejected records validation errors without submitting
	Rejected struct {
		Errors map[Field]string
	}
	// SubmitStarted marks a submission in flight
	SubmitStarted struct{}
	// SubmitSucceeded clears the fields and shows the success message
	SubmitSucceeded struct{}
	// SubmitFailed keeps the fields and shows the failure message
	SubmitFailed struct {
		Err error
	}
	// AutoClosed hides the form once the success message has been seen
	AutoClosed struct{}
)

func (Opened) isEvent()          {}
func (Closed) isEvent()          {}
func (Edited) isEvent()          {}
func (TypeChanged) isEvent()     {}
func (Rejected) isEvent()        {}
func (SubmitStarted) isEvent()   {}
func (SubmitSucceeded) isEvent() {}
func (SubmitFailed) isEvent()    {}
func (AutoClosed) isEvent()      {}

// Reduce applies e to s
func Reduce(s State, e Event) State {
	switch e := e.(type) {
	case Opened:
		return State{Open: true, Type: model.ResourceTypeReflection}
	case Closed, AutoClosed:
		return Initial()
	case Edited:
		s.Fields = s.Fields.With(e.Field, e.Value)
		if _, ok := s.Errors[e.Field]; ok {
			s.Errors = withoutKey(s.Errors, e.Field)
		}
		return s
	case TypeChanged:
		s.Type = e.Type
		s.Fields = Fields{}
		s.Errors = nil
		return s
	case Rejected:
		s.Errors = e.Errors
		return s
	case SubmitStarted:
		s.Status = StatusSubmitting
		s.Message = ""
		s.Errors = nil
		return s
	case SubmitSucceeded:
		s.Status = StatusSuccess
		s.Message = MessageSuccess
		s.Fields = Fields{}
		return s
	case SubmitFailed:
		s.Status = StatusFailure
		s.Message = MessageFailure
		return s
	}
	return s
}

func withoutKey(m map[Field]string, key Field) map[Field]string {
	out := make(map[Field]string, len(m))
	for k, v := range m {
		if k != key {
			out[k] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
