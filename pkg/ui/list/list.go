package list

import (
	"context"
	"log/slog"
	"sync"

	"github.com/HehLul/HadeedInstitute-MVP/pkg/model"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/server/store"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/ui/card"
)

const (
	MessageLoading = "Loading resources..."
	MessageError   = "Failed to load resources"
	MessageEmpty   = "No resources yet. Be the first to share!"
)

// ViewKind is what the list shows. Exactly one kind is shown at a time.
type ViewKind int

const (
	ViewLoading ViewKind = iota
	ViewError
	ViewEmpty
	ViewCards
)

// View is the rendered list
type View struct {
	Kind    ViewKind
	Message string
	Cards   []card.Card
}

// List fetches resources once and tracks the outcome
type List struct {
	store  store.ResourcesStore
	opts   store.ListOptions
	cards  card.Options
	logger *slog.Logger

	mount sync.Once
	mu    sync.RWMutex
	state State
}

// Option configures a List
type Option func(*List)

// WithType restricts the list to one resource type
func WithType(t model.ResourceType) Option {
	return func(l *List) { l.opts.Type = t }
}

// WithLimit caps the number of resources fetched
func WithLimit(limit int) Option {
	return func(l *List) { l.opts.Limit = limit }
}

// WithCardOptions sets how cards are rendered
func WithCardOptions(o card.Options) Option {
	return func(l *List) { l.cards = o }
}

// WithLogger sets the logger fetch failures are written to
func WithLogger(logger *slog.Logger) Option {
	return func(l *List) { l.logger = logger }
}

// New returns a list in the loading state
func New(s store.ResourcesStore, opts ...Option) *List {
	l := &List{
		store:  s,
		logger: slog.Default(),
		state:  Initial(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Mount performs the list's single fetch and blocks until it completes.
// Calls after the first do nothing.
func (l *List) Mount(ctx context.Context) {
	l.mount.Do(func() {
		resources, err := l.store.GetResources(ctx, l.opts)
		if err != nil {
			l.logger.Error("error fetching resources", "type", string(l.opts.Type), "error", err)
			l.dispatch(Failed{Err: err})
			return
		}
		l.dispatch(Loaded{Resources: resources})
	})
}

func (l *List) dispatch(e Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = Reduce(l.state, e)
}

// State returns a snapshot of the list's state
func (l *List) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// View renders the current state
func (l *List) View() View {
	return Render(l.State(), l.cards)
}

// Render maps a state onto exactly one view
func Render(s State, opts card.Options) View {
	switch s.Status {
	case StatusFailure:
		return View{Kind: ViewError, Message: MessageError}
	case StatusSuccess:
		if len(s.Resources) == 0 {
			return View{Kind: ViewEmpty, Message: MessageEmpty}
		}
		cards := make([]card.Card, 0, len(s.Resources))
		for i, r := range s.Resources {
			cards = append(cards, opts.Render(r, i))
		}
		return View{Kind: ViewCards, Cards: cards}
	default:
		return View{Kind: ViewLoading, Message: MessageLoading}
	}
}
