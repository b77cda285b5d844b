package rest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/HehLul/HadeedInstitute-MVP/pkg/server/store"
)

// codeSingularity is PostgREST's code for "JSON object requested, multiple
// (or no) rows returned"
const codeSingularity = "PGRST116"

// APIError is the error body returned by PostgREST
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details"`
	Hint       string `json:"hint"`
}

func (e *APIError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("postgrest: status %d", e.StatusCode))
	if e.Code != "" {
		sb.WriteString(" code " + e.Code)
	}
	if e.Message != "" {
		sb.WriteString(": " + e.Message)
	}
	if e.Details != "" {
		sb.WriteString(" (" + e.Details + ")")
	}
	return sb.String()
}

// Is maps the singularity error onto the store sentinels
func (e *APIError) Is(target error) bool {
	if e.Code != codeSingularity {
		return false
	}
	noRows := strings.Contains(e.Details, " 0 rows")
	switch {
	case errors.Is(target, store.ErrNotFound):
		return noRows
	case errors.Is(target, store.ErrNotSingle):
		return !noRows
	}
	return false
}
