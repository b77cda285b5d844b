package card

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/HehLul/HadeedInstitute-MVP/pkg/model"
)

const (
	// DefaultPreviewLength is the number of characters of body text shown
	DefaultPreviewLength = 180

	DateLayout   = "Jan 2, 2006"
	DefaultGlyph = "📌"
	ellipsis     = "..."
)

var glyphs = map[model.ResourceType]string{
	model.ResourceTypeReflection: "💭",
	model.ResourceTypeVideo:      "🎬",
	model.ResourceTypePDF:        "📄",
	model.ResourceTypeLink:       "🔗",
	model.ResourceTypePicture:    "📷",
}

// Card is the display model of one resource in the list
type Card struct {
	ID        string
	Index     int
	Title     string
	Type      model.ResourceType
	TypeLabel string
	Glyph     string
	Date      string
	Author    string
	Tags      []string

	// Emphasis varies the grid layout by position
	Wide        bool
	Tall        bool
	ThickBorder bool

	Body Body
}

// Body is the type specific part of a card. Empty fields are not shown.
type Body struct {
	Text      string
	Truncated bool
	LinkURL   string
	LinkLabel string
	ImageURL  string
}

// Options tune rendering
type Options struct {
	// PreviewLength bounds body text; zero means DefaultPreviewLength
	PreviewLength int
}

// Render builds the card for a resource at position index using default
// options
func Render(r model.Resource, index int) Card {
	return Options{}.Render(r, index)
}

// Render builds the card for a resource at position index
func (o Options) Render(r model.Resource, index int) Card {
	tags := []string(r.Tags)
	if len(tags) == 0 {
		tags = nil
	}
	return Card{
		ID:          r.ID,
		Index:       index,
		Title:       r.Title,
		Type:        r.ResourceType,
		TypeLabel:   r.ResourceType.Label(),
		Glyph:       Glyph(r.ResourceType),
		Date:        FormatDate(r.CreatedAt),
		Author:      AuthorLabel(r.Author),
		Tags:        tags,
		Wide:        index%7 == 0 || index%5 == 0,
		Tall:        index%8 == 0,
		ThickBorder: index%3 == 0,
		Body:        o.body(r.Content()),
	}
}

func (o Options) previewLength() int {
	if o.PreviewLength <= 0 {
		return DefaultPreviewLength
	}
	return o.PreviewLength
}

func (o Options) body(content model.Content) Body {
	switch c := content.(type) {
	case model.Reflection:
		text, cut := Truncate(c.Body, o.previewLength())
		return Body{Text: text, Truncated: cut}
	case model.Video:
		if c.URL == "" {
			return Body{}
		}
		return Body{LinkURL: c.URL, LinkLabel: "Watch Video"}
	case model.Link:
		if c.URL == "" {
			return Body{}
		}
		// descriptions get two lines where reflections get three
		text, cut := Truncate(c.Description, o.previewLength()*2/3)
		return Body{Text: text, Truncated: cut, LinkURL: c.URL, LinkLabel: "Visit Link"}
	case model.Picture:
		text, cut := Truncate(c.Caption, o.previewLength())
		b := Body{Text: text, Truncated: cut}
		if c.URL != "" {
			b.ImageURL = c.URL
			b.LinkURL = c.URL
			b.LinkLabel = "View Picture"
		}
		return b
	case model.PDF:
		if c.URL == "" {
			return Body{}
		}
		return Body{LinkURL: c.URL, LinkLabel: "Open PDF"}
	case model.Unknown:
		return Body{}
	}
	return Body{}
}

// Glyph returns the icon for a resource type
func Glyph(t model.ResourceType) string {
	if g, ok := glyphs[t]; ok {
		return g
	}
	return DefaultGlyph
}

// FormatDate renders a timestamp as e.g. "Mar 1, 2025" in UTC
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateLayout)
}

// AuthorLabel returns "By {author}", or "Anonymous" when no author is set
func AuthorLabel(author string) string {
	if author == "" {
		return model.DefaultAuthor
	}
	return "By " + author
}

// Truncate shortens s to at most n runes, cutting at a word boundary when
// one is close, and reports whether anything was cut
func Truncate(s string, n int) (string, bool) {
	s = strings.TrimSpace(s)
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s, false
	}

	runes := []rune(s)
	cut := string(runes[:n])
	if i := strings.LastIndexAny(cut, " \n\t"); i > len(cut)/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " \n\t.,;:") + ellipsis, true
}
