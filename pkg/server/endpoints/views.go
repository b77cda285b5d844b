package endpoints

import (
	"html/template"
	"math"
	"time"

	"github.com/HehLul/HadeedInstitute-MVP/pkg/model"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/ui/card"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/ui/form"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/ui/list"
)

// pageData is shared by every page template; each page reads the fields
// it needs
type pageData struct {
	Title string
	Form  *formView

	List    listView
	Heading string
	Filters []filterLink

	Card     *card.Card
	BodyHTML template.HTML
	Message  string
	IsError  bool

	Healthy bool
	Backend string
}

type listView struct {
	Kind    string
	Message string
	Cards   []card.Card
}

func newListView(v list.View) listView {
	kind := "cards"
	switch v.Kind {
	case list.ViewLoading:
		kind = "loading"
	case list.ViewError:
		kind = "error"
	case list.ViewEmpty:
		kind = "empty"
	}
	return listView{Kind: kind, Message: v.Message, Cards: v.Cards}
}

type filterLink struct {
	Label  string
	Href   string
	Active bool
}

func libraryFilters(active model.ResourceType) []filterLink {
	links := []filterLink{{Label: "All", Href: "/resources", Active: active == ""}}
	for _, t := range model.AllResourceTypes() {
		links = append(links, filterLink{
			Label:  t.Label(),
			Href:   "/resources?type=" + string(t),
			Active: t == active,
		})
	}
	return links
}

type typeOption struct {
	Value    string
	Label    string
	Selected bool
}

type formView struct {
	Open       bool
	Type       model.ResourceType
	Types      []typeOption
	Fields     form.Fields
	Submitting bool
	Success    bool
	Failure    bool
	Message    string
	Errors     map[string]string

	// RefreshSeconds reloads the page once the form has closed itself
	RefreshSeconds int

	ShowURL        bool
	URLRequired    bool
	URLLabel       string
	URLPlaceholder string
	UploadNote     bool

	ShowBody        bool
	BodyRequired    bool
	BodyLabel       string
	BodyPlaceholder string
}

func newFormView(s form.State, autoClose time.Duration) *formView {
	v := &formView{
		Open:           s.Open,
		Type:           s.Type,
		Fields:         s.Fields,
		Submitting:     s.Submitting(),
		Success:        s.Status == form.StatusSuccess,
		Failure:        s.Status == form.StatusFailure,
		Message:        s.Message,
		Errors:         map[string]string{},
		RefreshSeconds: int(math.Ceil(autoClose.Seconds())),
		URLRequired:    form.RequiresURL(s.Type),
		BodyRequired:   form.RequiresBody(s.Type),
	}
	for field, msg := range s.Errors {
		v.Errors[string(field)] = msg
	}
	for _, t := range model.AllResourceTypes() {
		v.Types = append(v.Types, typeOption{Value: string(t), Label: t.Label(), Selected: t == s.Type})
	}

	switch s.Type {
	case model.ResourceTypeReflection:
		v.ShowBody = true
		v.BodyLabel = "Your Reflection"
		v.BodyPlaceholder = "Share your thoughts and reflections..."
	case model.ResourceTypeVideo:
		v.ShowURL = true
		v.URLLabel = "Video URL"
		v.URLPlaceholder = "Enter YouTube or video URL"
	case model.ResourceTypePDF:
		v.ShowURL = true
		v.URLLabel = "PDF URL"
		v.URLPlaceholder = "Enter a link to the PDF"
		v.UploadNote = true
	case model.ResourceTypeLink:
		v.ShowURL = true
		v.URLLabel = "Website URL"
		v.URLPlaceholder = "Enter website URL"
		v.ShowBody = true
		v.BodyLabel = "Description"
		v.BodyPlaceholder = "Describe this resource..."
	case model.ResourceTypePicture:
		v.ShowURL = true
		v.URLLabel = "Image URL"
		v.URLPlaceholder = "Enter image URL"
		v.UploadNote = true
		v.ShowBody = true
		v.BodyLabel = "Caption"
		v.BodyPlaceholder = "Add a caption for this image..."
	}
	return v
}
