package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/HehLul/HadeedInstitute-MVP/pkg/model"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/server"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/server/store"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/ui/form"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/ui/list"
)

const maxRequestBody = 1 << 20

// ResourceResponse represents a resource in the API response
type ResourceResponse struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	ResourceType string   `json:"resource_type"`
	Body         string   `json:"body"`
	Description  string   `json:"description"`
	URL          string   `json:"url"`
	Author       string   `json:"author"`
	Tags         []string `json:"tags"`
	CreatedAt    string   `json:"created_at"`
}

func newResourceResponse(r model.Resource) ResourceResponse {
	tags := []string(r.Tags)
	if tags == nil {
		tags = []string{}
	}
	return ResourceResponse{
		ID:           r.ID,
		Title:        r.Title,
		ResourceType: string(r.ResourceType),
		Body:         r.Body,
		Description:  r.Description,
		URL:          r.URL,
		Author:       r.Author,
		Tags:         tags,
		CreatedAt:    r.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// CreateResourceRequest is the body of POST /api/resources. Tags may be a
// comma separated string or a list.
type CreateResourceRequest struct {
	Title        string   `json:"title"`
	ResourceType string   `json:"resource_type"`
	Type         string   `json:"type"`
	Body         string   `json:"body"`
	URL          string   `json:"url"`
	Author       string   `json:"author"`
	Tags         tagsJSON `json:"tags"`
}

type tagsJSON struct {
	model.TagInput
}

func (t *tagsJSON) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		t.TagInput = model.TagInput{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.TagInput = model.TagsFromString(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("tags must be a string or a list of strings")
	}
	t.TagInput = model.TagsFromList(list)
	return nil
}

// CreateResourceResponse acknowledges an insert
type CreateResourceResponse struct {
	ID        string `json:"id,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// RegisterResourcesAPI registers the JSON resources API
func RegisterResourcesAPI(s *server.Server) {
	apiRouter := s.Router.PathPrefix("/api").Subrouter()

	apiRouter.HandleFunc("/resources", handleAPIListResources(s)).Methods("GET")
	apiRouter.HandleFunc("/resources", handleAPICreateResource(s)).Methods("POST")
	apiRouter.HandleFunc("/resources/{id}", handleAPIGetResource(s)).Methods("GET")
}

func apiError(s *server.Server, w http.ResponseWriter, r *http.Request, code int, message string) {
	s.Metrics.APIErrorInc(r.Method, routeTemplate(r), code)
	respondWithError(w, code, message)
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return r.URL.Path
}

func handleAPIListResources(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		maxLimit := s.Settings().ListLimit
		opts := store.ListOptions{Limit: maxLimit}

		if raw := r.URL.Query().Get("type"); raw != "" {
			t, err := model.ParseResourceType(raw)
			if err != nil {
				apiError(s, w, r, http.StatusBadRequest, err.Error())
				return
			}
			opts.Type = t
		}
		if raw := r.URL.Query().Get("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit <= 0 {
				apiError(s, w, r, http.StatusBadRequest, "limit must be a positive integer")
				return
			}
			if limit < maxLimit {
				opts.Limit = limit
			}
		}

		resources, err := s.ResourcesStore.GetResources(r.Context(), opts)
		if err != nil {
			s.Logger.Error("error fetching resources", "type", string(opts.Type), "error", err)
			apiError(s, w, r, http.StatusBadGateway, list.MessageError)
			return
		}

		response := make([]ResourceResponse, 0, len(resources))
		for _, res := range resources {
			response = append(response, newResourceResponse(res))
		}
		respondWithJSON(w, http.StatusOK, response)
	}
}

func handleAPIGetResource(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		res, err := s.ResourcesStore.GetResourceByID(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			apiError(s, w, r, http.StatusNotFound, "resource not found")
			return
		}
		if err != nil {
			s.Logger.Error("error fetching resource", "id", id, "error", err)
			apiError(s, w, r, http.StatusBadGateway, "Failed to load resource")
			return
		}

		respondWithJSON(w, http.StatusOK, newResourceResponse(*res))
	}
}

func handleAPICreateResource(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateResourceRequest
		decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
		if err := decoder.Decode(&req); err != nil {
			apiError(s, w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}

		rawType := req.ResourceType
		if rawType == "" {
			rawType = req.Type
		}
		t, err := model.ParseResourceType(rawType)
		if err != nil {
			apiError(s, w, r, http.StatusBadRequest, err.Error())
			return
		}

		fields := form.Fields{Title: req.Title, Body: req.Body, URL: req.URL, Author: req.Author}
		if errs := form.Validate(t, fields); errs != nil {
			s.Metrics.APIErrorInc(r.Method, routeTemplate(r), http.StatusBadRequest)
			respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":  (&form.ValidationError{Fields: errs}).Error(),
				"fields": errs,
			})
			return
		}

		input := fields.Submission(t).Input()
		input.Tags = req.Tags.TagInput

		ack, err := s.ResourcesStore.AddResource(r.Context(), input)
		if err != nil {
			s.Logger.Error("error adding resource", "type", string(t), "error", err)
			apiError(s, w, r, http.StatusBadGateway, form.MessageFailure)
			return
		}

		response := CreateResourceResponse{ID: ack.ID}
		if !ack.CreatedAt.IsZero() {
			response.CreatedAt = ack.CreatedAt.UTC().Format(time.RFC3339Nano)
		}
		respondWithJSON(w, http.StatusCreated, response)
	}
}
