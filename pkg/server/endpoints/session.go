package endpoints

import (
	"net/http"

	"github.com/HehLul/HadeedInstitute-MVP/pkg/server"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/ui/form"
)

const sessionCookie = "hadeed_session"

// lookupForm returns the visitor's form without creating one
func lookupForm(s *server.Server, r *http.Request) (*form.Form, bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil, false
	}
	return s.Forms.Get(c.Value)
}

// acquireForm returns the visitor's form, starting a session when needed
func acquireForm(s *server.Server, w http.ResponseWriter, r *http.Request) *form.Form {
	var id string
	if c, err := r.Cookie(sessionCookie); err == nil {
		id = c.Value
	}

	f, sessionID := s.Forms.Acquire(id)
	if sessionID != id {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    sessionID,
			Path:     "/",
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return f
}
