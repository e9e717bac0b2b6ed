package http

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookhouse/internal/entities"
)

func newNotesRouter(stores *testStores) *gin.Engine {
	return NewRouter(RouterConfig{
		Database:      stores.db,
		NotesStore:    stores.notes,
		ProgressStore: stores.progress,
	})
}

func intPtr(v int) *int { return &v }

func TestNotesController_AddAndList(t *testing.T) {
	stores := setupTestStores(t)
	router := newNotesRouter(stores)

	w := performRequest(router, http.MethodPost, "/api/books/b1/notes", AddNoteRequest{
		Title: "Dune",
		Note:  "  Fear is the mind-killer.  ",
		Page:  intPtr(12),
		Kind:  entities.NoteKindHighlight,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := decodeJSON[entities.BookNote](t, w)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "b1", created.BookID)
	assert.Equal(t, "Fear is the mind-killer.", created.Note)
	assert.Equal(t, entities.NoteKindHighlight, created.Kind)
	require.NotNil(t, created.Page)
	assert.Equal(t, 12, *created.Page)

	w = performRequest(router, http.MethodPost, "/api/books/b1/notes", AddNoteRequest{Note: "second"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(router, http.MethodGet, "/api/books/b1/notes", nil)
	require.Equal(t, http.StatusOK, w.Code)

	listed := decodeJSON[NotesResponse](t, w)
	assert.Equal(t, 2, listed.Total)
	require.Len(t, listed.Notes, 2)
	assert.Equal(t, "second", listed.Notes[0].Note)
	assert.Equal(t, entities.NoteKindNote, listed.Notes[0].Kind)
	assert.Equal(t, created.ID, listed.Notes[1].ID)
}

func TestNotesController_ListEmpty(t *testing.T) {
	stores := setupTestStores(t)
	router := newNotesRouter(stores)

	w := performRequest(router, http.MethodGet, "/api/books/unknown/notes", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"notes":[]`)
}

func TestNotesController_AddValidation(t *testing.T) {
	tests := []struct {
		name string
		body any
	}{
		{name: "missing note", body: map[string]any{"title": "Dune"}},
		{name: "whitespace note", body: map[string]any{"note": "   "}},
		{name: "negative page", body: map[string]any{"note": "x", "page": -1}},
		{name: "unknown kind", body: map[string]any{"note": "x", "kind": "quote"}},
		{name: "malformed body", body: "not an object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stores := setupTestStores(t)
			router := newNotesRouter(stores)

			w := performRequest(router, http.MethodPost, "/api/books/b1/notes", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			listed, err := stores.notes.ListNotes(context.Background(), "b1")
			require.NoError(t, err)
			assert.Empty(t, listed)
		})
	}
}

func TestNotesController_SequentialDuplicatesBothPersist(t *testing.T) {
	stores := setupTestStores(t)
	router := newNotesRouter(stores)
	body := AddNoteRequest{Note: "same text"}

	require.Equal(t, http.StatusCreated, performRequest(router, http.MethodPost, "/api/books/b1/notes", body).Code)
	require.Equal(t, http.StatusCreated, performRequest(router, http.MethodPost, "/api/books/b1/notes", body).Code)

	listed, err := stores.notes.ListNotes(context.Background(), "b1")
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

// blockingNotesStore holds AddNote until released so that concurrent
// submissions overlap.
type blockingNotesStore struct {
	calls   atomic.Int32
	release chan struct{}
}

func (s *blockingNotesStore) ListNotes(ctx context.Context, bookID string) ([]entities.BookNote, error) {
	return []entities.BookNote{}, nil
}

func (s *blockingNotesStore) AddNote(ctx context.Context, input entities.NewNote) (*entities.BookNote, error) {
	s.calls.Add(1)
	<-s.release
	return &entities.BookNote{ID: 1, BookID: input.BookID, Note: input.Text}, nil
}

func (s *blockingNotesStore) DeleteNote(ctx context.Context, id uint) error { return nil }

func TestNotesController_ConcurrentDuplicatesShareOneWrite(t *testing.T) {
	store := &blockingNotesStore{release: make(chan struct{})}
	router := NewRouter(RouterConfig{NotesStore: store})

	const callers = 5
	codes := make([]int, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = performRequest(router, http.MethodPost, "/api/books/b1/notes", AddNoteRequest{Note: "tap tap"}).Code
		}(i)
	}

	require.Eventually(t, func() bool { return store.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	// Give the remaining callers time to join the in-flight call.
	time.Sleep(100 * time.Millisecond)
	close(store.release)
	wg.Wait()

	assert.Equal(t, int32(1), store.calls.Load())
	for _, code := range codes {
		assert.Equal(t, http.StatusCreated, code)
	}
}

func TestNotesController_DeleteNote(t *testing.T) {
	stores := setupTestStores(t)
	router := newNotesRouter(stores)

	note, err := stores.notes.AddNote(context.Background(), entities.NewNote{BookID: "b1", Text: "gone soon"})
	require.NoError(t, err)

	w := performRequest(router, http.MethodDelete, "/api/notes/"+uintToString(note.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Deleting again is not an error
	w = performRequest(router, http.MethodDelete, "/api/notes/"+uintToString(note.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	listed, err := stores.notes.ListNotes(context.Background(), "b1")
	require.NoError(t, err)
	assert.Empty(t, listed)

	w = performRequest(router, http.MethodDelete, "/api/notes/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotesController_ExportNotes(t *testing.T) {
	stores := setupTestStores(t)
	router := newNotesRouter(stores)
	ctx := context.Background()

	_, err := stores.notes.AddNote(ctx, entities.NewNote{BookID: "b1", Title: "Dune", Text: "Spice must flow", Page: intPtr(40)})
	require.NoError(t, err)
	_, err = stores.progress.SaveProgress(ctx, entities.ProgressUpdate{BookID: "b1", Page: intPtr(41), Reflection: "Slow start"})
	require.NoError(t, err)

	w := performRequest(router, http.MethodGet, "/api/books/b1/notes/export", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/markdown")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Dune - notes.md")
	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "---\n"))
	assert.Contains(t, body, `title: "Dune"`)
	assert.Contains(t, body, "## Reading progress")
	assert.Contains(t, body, "- Last page: 41")
	assert.Contains(t, body, "Spice must flow")
}
