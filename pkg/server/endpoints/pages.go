package endpoints

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/HehLul/HadeedInstitute-MVP/pkg/model"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/server"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/server/store"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/ui/card"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/ui/list"
)

// RegisterPages registers the HTML pages
func RegisterPages(s *server.Server) {
	s.Router.HandleFunc("/", handleHome(s)).Methods("GET")
	s.Router.HandleFunc("/resources", handleLibrary(s, "")).Methods("GET")
	s.Router.HandleFunc("/reflections", handleLibrary(s, model.ResourceTypeReflection)).Methods("GET")
	s.Router.HandleFunc("/resources/{id}", handleDetail(s)).Methods("GET")
	s.Router.HandleFunc("/about", handleAbout(s)).Methods("GET")
}

// mountList runs a fresh list for this request; every page view is a new
// list instance
func mountList(s *server.Server, r *http.Request, opts ...list.Option) list.View {
	settings := s.Settings()
	opts = append([]list.Option{
		list.WithLimit(settings.ListLimit),
		list.WithCardOptions(card.Options{PreviewLength: settings.PreviewLength}),
		list.WithLogger(s.Logger),
	}, opts...)

	l := list.New(s.ResourcesStore, opts...)
	l.Mount(r.Context())
	return l.View()
}

func visitorForm(s *server.Server, r *http.Request) *formView {
	f, ok := lookupForm(s, r)
	if !ok {
		return nil
	}
	return newFormView(f.State(), s.Config.AutoCloseDelay())
}

func handleHome(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := pageData{
			List: newListView(mountList(s, r)),
			Form: visitorForm(s, r),
		}
		if err := renderPage(w, http.StatusOK, "home", data); err != nil {
			s.Logger.Error("error rendering page", "page", "home", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
	}
}

func handleLibrary(s *server.Server, fixed model.ResourceType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resourceType := fixed
		heading := "Reflections"
		var filters []filterLink

		if fixed == "" {
			heading = "Resources"
			if raw := r.URL.Query().Get("type"); raw != "" {
				t, err := model.ParseResourceType(raw)
				if err != nil {
					http.Redirect(w, r, "/resources", http.StatusSeeOther)
					return
				}
				resourceType = t
			}
			filters = libraryFilters(resourceType)
		}

		data := pageData{
			Title:   heading,
			Heading: heading,
			Filters: filters,
			List:    newListView(mountList(s, r, list.WithType(resourceType))),
			Form:    visitorForm(s, r),
		}
		if err := renderPage(w, http.StatusOK, "library", data); err != nil {
			s.Logger.Error("error rendering page", "page", "library", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
	}
}

func handleDetail(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		code := http.StatusOK
		data := pageData{Form: visitorForm(s, r)}

		res, err := s.ResourcesStore.GetResourceByID(r.Context(), id)
		switch {
		case errors.Is(err, store.ErrNotFound):
			code = http.StatusNotFound
			data.Title = "Not found"
			data.Message = "This resource does not exist."
		case err != nil:
			s.Logger.Error("error fetching resource", "id", id, "error", err)
			code = http.StatusBadGateway
			data.Title = "Error"
			data.Message = list.MessageError
			data.IsError = true
		default:
			c := card.Options{PreviewLength: s.Settings().PreviewLength}.Render(*res, 1)
			data.Title = res.Title
			data.Card = &c
			data.BodyHTML, err = renderMarkdown(detailText(res.Content()))
			if err != nil {
				s.Logger.Warn("error rendering markdown", "id", id, "error", err)
			}
		}

		if err := renderPage(w, code, "detail", data); err != nil {
			s.Logger.Error("error rendering page", "page", "detail", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
	}
}

// detailText is the untruncated text shown on the detail page
func detailText(c model.Content) string {
	switch c := c.(type) {
	case model.Reflection:
		return c.Body
	case model.Link:
		return c.Description
	case model.Picture:
		return c.Caption
	case model.Unknown:
		return c.Body
	case model.Video, model.PDF:
		return ""
	}
	return ""
}

func handleAbout(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := pageData{Title: "About", Form: visitorForm(s, r)}
		if err := renderPage(w, http.StatusOK, "about", data); err != nil {
			s.Logger.Error("error rendering page", "page", "about", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
	}
}
