package model

// Content is the type specific part of a resource. Each variant carries only
// the optional fields that are meaningful for its resource type.
type Content interface {
	Type() ResourceType
	isContent()
}

type Reflection struct {
	Body string
}

type Video struct {
	URL string
}

// PDF may carry a URL. Uploaded files are not stored.
type PDF struct {
	URL string
}

type Link struct {
	URL         string
	Description string
}

type Picture struct {
	URL     string
	Caption string
}

// Unknown holds a row whose resource_type this build does not know about
type Unknown struct {
	Kind ResourceType
	Body string
	URL  string
}

func (Reflection) Type() ResourceType { return ResourceTypeReflection }
func (Video) Type() ResourceType      { return ResourceTypeVideo }
func (PDF) Type() ResourceType        { return ResourceTypePDF }
func (Link) Type() ResourceType       { return ResourceTypeLink }
func (Picture) Type() ResourceType    { return ResourceTypePicture }
func (u Unknown) Type() ResourceType  { return u.Kind }

func (Reflection) isContent() {}
func (Video) isContent()      {}
func (PDF) isContent()        {}
func (Link) isContent()       {}
func (Picture) isContent()    {}
func (Unknown) isContent()    {}

// Content returns the typed view of the resource's optional fields
func (r Resource) Content() Content {
	switch r.ResourceType {
	case ResourceTypeReflection:
		return Reflection{Body: r.Body}
	case ResourceTypeVideo:
		return Video{URL: r.URL}
	case ResourceTypePDF:
		return PDF{URL: r.URL}
	case ResourceTypeLink:
		description := r.Body
		if description == "" {
			description = r.Description
		}
		return Link{URL: r.URL, Description: description}
	case ResourceTypePicture:
		return Picture{URL: r.URL, Caption: r.Body}
	default:
		return Unknown{Kind: r.ResourceType, Body: r.Body, URL: r.URL}
	}
}

// NewContent builds the variant for t from the form's flat fields. Fields
// that do not belong to the variant are dropped.
func NewContent(t ResourceType, body, url string) Content {
	switch t {
	case ResourceTypeReflection:
		return Reflection{Body: body}
	case ResourceTypeVideo:
		return Video{URL: url}
	case ResourceTypePDF:
		return PDF{URL: url}
	case ResourceTypeLink:
		return Link{URL: url, Description: body}
	case ResourceTypePicture:
		return Picture{URL: url, Caption: body}
	default:
		return Unknown{Kind: t, Body: body, URL: url}
	}
}

// Submission is a new resource as composed by the form
type Submission struct {
	Title   string
	Author  string
	Tags    string
	Content Content
}

// Input flattens the submission into the store's input shape. Only links
// carry a description, and it duplicates the body.
func (s Submission) Input() ResourceInput {
	in := ResourceInput{
		Title:  s.Title,
		Type:   s.Content.Type(),
		Author: s.Author,
		Tags:   TagsFromString(s.Tags),
	}
	switch c := s.Content.(type) {
	case Reflection:
		in.Body = c.Body
	case Video:
		in.URL = c.URL
	case PDF:
		in.URL = c.URL
	case Link:
		in.URL = c.URL
		in.Body = c.Description
		in.Description = c.Description
	case Picture:
		in.URL = c.URL
		in.Body = c.Caption
	case Unknown:
		in.Body = c.Body
		in.URL = c.URL
	}
	return in
}
