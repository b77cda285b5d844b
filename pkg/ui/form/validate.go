package form

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/HehLul/HadeedInstitute-MVP/pkg/model"
)

// ValidationError lists the fields that block a submission
type ValidationError struct {
	Fields map[Field]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return fmt.Sprintf("invalid submission: %s", strings.Join(names, ", "))
}

// RequiresURL reports whether a type cannot be submitted without a url
func RequiresURL(t model.ResourceType) bool {
	return t == model.ResourceTypeVideo || t == model.ResourceTypeLink
}

// RequiresBody reports whether a type cannot be submitted without a body
func RequiresBody(t model.ResourceType) bool {
	return t == model.ResourceTypeReflection
}

// Validate checks the fields against the rules of the selected type
func Validate(t model.ResourceType, f Fields) map[Field]string {
	errs := map[Field]string{}

	if strings.TrimSpace(f.Title) == "" {
		errs[FieldTitle] = "Title is required"
	}
	if RequiresBody(t) && strings.TrimSpace(f.Body) == "" {
		errs[FieldBody] = "Reflection is required"
	}
	switch u := strings.TrimSpace(f.URL); {
	case u == "" && RequiresURL(t):
		errs[FieldURL] = "URL is required"
	case u != "" && !validURL(u):
		errs[FieldURL] = "Enter a valid URL"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
