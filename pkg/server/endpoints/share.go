package endpoints

import (
	"errors"
	"net/http"

	"github.com/HehLul/HadeedInstitute-MVP/pkg/model"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/server"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/ui/form"
)

// RegisterShareEndpoints registers the share form actions. Every action
// redirects back to the page the visitor came from.
func RegisterShareEndpoints(s *server.Server) {
	shareRouter := s.Router.PathPrefix("/share").Subrouter()

	shareRouter.HandleFunc("/open", handleShareOpen(s)).Methods("POST")
	shareRouter.HandleFunc("/close", handleShareClose(s)).Methods("POST")
	shareRouter.HandleFunc("/type", handleShareType(s)).Methods("POST")
	shareRouter.HandleFunc("/submit", handleShareSubmit(s)).Methods("POST")
}

func redirectBack(w http.ResponseWriter, r *http.Request) {
	target := "/"
	if ref := r.Referer(); ref != "" {
		if u, err := r.URL.Parse(ref); err == nil && u.Host == r.Host && u.Path != "" {
			target = u.RequestURI()
		}
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func handleShareOpen(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := acquireForm(s, w, r)
		if err := f.Open(); err != nil {
			s.Logger.Warn("error opening form", "error", err)
		}
		redirectBack(w, r)
	}
}

func handleShareClose(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if f, ok := lookupForm(s, r); ok {
			f.Close()
		}
		redirectBack(w, r)
	}
}

func handleShareType(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, ok := lookupForm(s, r)
		if !ok {
			redirectBack(w, r)
			return
		}
		t, err := model.ParseResourceType(r.PostFormValue("resource_type"))
		if err != nil {
			http.Error(w, "unknown resource type", http.StatusBadRequest)
			return
		}
		if err := f.ChangeType(t); err != nil {
			s.Logger.Warn("error changing resource type", "error", err)
		}
		redirectBack(w, r)
	}
}

func handleShareSubmit(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		t, err := model.ParseResourceType(r.PostForm.Get("resource_type"))
		if err != nil {
			http.Error(w, "unknown resource type", http.StatusBadRequest)
			return
		}

		f := acquireForm(s, w, r)
		// a session that expired while the visitor typed starts over open
		if !f.State().Open {
			if err := f.Open(); err != nil {
				s.Logger.Warn("error opening form", "error", err)
				redirectBack(w, r)
				return
			}
		}
		if f.State().Submitting() {
			s.Logger.Info("submission ignored, another is in flight")
			redirectBack(w, r)
			return
		}
		if f.State().Type != t {
			if err := f.ChangeType(t); err != nil {
				s.Logger.Warn("error changing resource type", "error", err)
				redirectBack(w, r)
				return
			}
		}
		err = f.Fill(form.Fields{
			Title:  r.PostForm.Get("title"),
			Body:   r.PostForm.Get("body"),
			URL:    r.PostForm.Get("url"),
			Tags:   r.PostForm.Get("tags"),
			Author: r.PostForm.Get("author"),
		})
		if err != nil {
			s.Logger.Warn("error filling form", "error", err)
			redirectBack(w, r)
			return
		}

		// validation and store outcomes are shown from the form's state
		if err := f.Submit(r.Context()); errors.Is(err, form.ErrSubmitInFlight) {
			s.Logger.Info("submission ignored, another is in flight")
		}
		redirectBack(w, r)
	}
}
