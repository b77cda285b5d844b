package list

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/HehLul/HadeedInstitute-MVP/pkg/model"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/server/store"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/server/store/storetest"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/ui/card"
)

func cardOptions() card.Options {
	return card.Options{PreviewLength: 40}
}

func TestReduce(t *testing.T) {
	loaded := Reduce(Initial(), Loaded{Resources: []model.Resource{{ID: "a"}}})
	assert.Equal(t, StatusSuccess, loaded.Status)
	assert.Len(t, loaded.Resources, 1)
	assert.NoError(t, loaded.Err)

	empty := Reduce(Initial(), Loaded{})
	assert.Equal(t, StatusSuccess, empty.Status)
	assert.NotNil(t, empty.Resources)

	boom := errors.New("boom")
	failed := Reduce(Initial(), Failed{Err: boom})
	assert.Equal(t, StatusFailure, failed.Status)
	assert.Nil(t, failed.Resources)
	assert.Equal(t, boom, failed.Err)

	// terminal states ignore later events
	assert.Equal(t, failed, Reduce(failed, Loaded{}))
	assert.Equal(t, loaded, Reduce(loaded, Failed{Err: boom}))
}

func TestRenderShowsExactlyOneView(t *testing.T) {
	tests := []struct {
		name    string
		state   State
		kind    ViewKind
		message string
	}{
		{"loading", Initial(), ViewLoading, MessageLoading},
		{"failure", State{Status: StatusFailure, Err: errors.New("x")}, ViewError, MessageError},
		{"empty", State{Status: StatusSuccess, Resources: []model.Resource{}}, ViewEmpty, MessageEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Render(tt.state, cardOptions())
			assert.Equal(t, tt.kind, v.Kind)
			assert.Equal(t, tt.message, v.Message)
			assert.Empty(t, v.Cards)
		})
	}

	v := Render(State{Status: StatusSuccess, Resources: []model.Resource{{ID: "a"}, {ID: "b"}}}, cardOptions())
	assert.Equal(t, ViewCards, v.Kind)
	assert.Empty(t, v.Message)
	require.Len(t, v.Cards, 2)
	assert.Equal(t, 0, v.Cards[0].Index)
	assert.Equal(t, "b", v.Cards[1].ID)
	assert.Equal(t, 1, v.Cards[1].Index)
}

func TestMountFetchesOnce(t *testing.T) {
	resources := []model.Resource{
		{ID: "2", Title: "Lecture", ResourceType: model.ResourceTypeLink},
		{ID: "1", Title: "Patience", ResourceType: model.ResourceTypeReflection},
	}
	s := storetest.NewMockResourcesStore()
	s.On("GetResources", mock.Anything, store.ListOptions{}).Return(resources, nil).Once()

	l := New(s)
	assert.Equal(t, ViewLoading, l.View().Kind)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Mount(context.Background())
		}()
	}
	wg.Wait()
	l.Mount(context.Background())

	view := l.View()
	assert.Equal(t, ViewCards, view.Kind)
	require.Len(t, view.Cards, 2)
	assert.Equal(t, "Lecture", view.Cards[0].Title)
	s.AssertNumberOfCalls(t, "GetResources", 1)
}

func TestMountPassesOptions(t *testing.T) {
	s := storetest.NewMockResourcesStore()
	opts := store.ListOptions{Type: model.ResourceTypeVideo, Limit: 10}
	s.On("GetResources", mock.Anything, opts).Return([]model.Resource{}, nil)

	l := New(s, WithType(model.ResourceTypeVideo), WithLimit(10))
	l.Mount(context.Background())

	assert.Equal(t, ViewEmpty, l.View().Kind)
	s.AssertExpectations(t)
}

func TestMountFailureLogsAndHidesDetail(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	s := storetest.NewMockResourcesStore()
	cause := errors.New("connection refused")
	s.On("GetResources", mock.Anything, mock.Anything).Return(nil, store.NewStorageError("list resources", cause))

	l := New(s, WithLogger(logger))
	l.Mount(context.Background())

	state := l.State()
	assert.Equal(t, StatusFailure, state.Status)
	assert.ErrorIs(t, state.Err, cause)

	view := l.View()
	assert.Equal(t, ViewError, view.Kind)
	assert.Equal(t, "Failed to load resources", view.Message)
	assert.NotContains(t, view.Message, "connection refused")
	assert.Contains(t, logs.String(), "connection refused")
}

func TestMountAgainstMemoryStore(t *testing.T) {
	f := gofakeit.New(7)
	s := storetest.NewMemoryStore()
	for i := 0; i < 120; i++ {
		_, err := s.AddResource(context.Background(), model.ResourceInput{
			Title: f.Sentence(2),
			Type:  model.ResourceTypeReflection,
			Body:  f.Sentence(8),
		})
		require.NoError(t, err)
	}

	l := New(s)
	l.Mount(context.Background())

	state := l.State()
	require.Equal(t, StatusSuccess, state.Status)
	assert.Len(t, state.Resources, 100)

	var prev time.Time
	for i, r := range state.Resources {
		if i > 0 {
			assert.False(t, r.CreatedAt.After(prev), "not newest first at %d", i)
		}
		prev = r.CreatedAt
	}
}

func TestStatusNames(t *testing.T) {
	assert.Equal(t, []string{"loading", "success", "failure"}, StatusStrings())
	assert.Equal(t, "failure", StatusFailure.String())
	assert.False(t, Status(3).IsAStatus())
}
