package list

import "github.com/HehLul/HadeedInstitute-MVP/pkg/model"

//go:generate go run github.com/dmarkham/enumer -type Status -trimprefix Status -transform lower -output status.gen.go

// Status is the phase of the one fetch a list performs
type Status int

const (
	StatusLoading Status = iota
	StatusSuccess
	StatusFailure
)

// State is the whole state of a list. Resources is set only on success and
// Err only on failure.
type State struct {
	Status    Status
	Resources []model.Resource
	Err       error
}

// Event moves a list out of loading
type Event interface {
	isEvent()
}

// Loaded reports a completed fetch. An empty slice is a success.
type Loaded struct {
	Resources []model.Resource
}

// Failed reports a rejected fetch
type Failed struct {
	Err error
}

func (Loaded) isEvent() {}
func (Failed) isEvent() {}

// Initial is the state of a new list
func Initial() State {
	return State{Status: StatusLoading}
}

// Reduce applies e to s. Only a loading list reacts to events; success and
// failure are final.
func Reduce(s State, e Event) State {
	if s.Status != StatusLoading {
		return s
	}
	switch e := e.(type) {
	case Loaded:
		resources := e.Resources
		if resources == nil {
			resources = []model.Resource{}
		}
		return State{Status: StatusSuccess, Resources: resources}
	case Failed:
		return State{Status: StatusFailure, Err: e.Err}
	}
	return s
}
