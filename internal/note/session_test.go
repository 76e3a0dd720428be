package note

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"briefnote/internal/summary"
)

type fakeRepo struct {
	seq     int
	base    time.Time
	notes   map[string]Note
	deletes int
	failAll bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{base: time.Now(), notes: map[string]Note{}}
}

var errStore = errors.New("store down")

func (r *fakeRepo) ListNotes(_ context.Context, ownerID uint64) ([]Note, error) {
	if r.failAll {
		return nil, errStore
	}
	out := []Note{}
	for _, n := range r.notes {
		if n.OwnerID == ownerID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeRepo) CreateNote(_ context.Context, ownerID uint64, title, content string, labels []string) (Note, error) {
	if r.failAll {
		return Note{}, errStore
	}
	r.seq++
	ts := r.base.Add(time.Duration(r.seq) * time.Second)
	n := Note{
		ID:        fmt.Sprintf("note-%d", r.seq),
		OwnerID:   ownerID,
		Title:     title,
		Content:   content,
		Labels:    labels,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	r.notes[n.ID] = n
	return n, nil
}

func (r *fakeRepo) UpdateNote(_ context.Context, ownerID uint64, id string, f UpdateFields) error {
	if r.failAll {
		return errStore
	}
	n, ok := r.notes[id]
	if !ok || n.OwnerID != ownerID {
		return ErrNotFound
	}
	if f.Title != nil {
		n.Title = *f.Title
	}
	if f.Content != nil {
		n.Content = *f.Content
	}
	if f.Labels != nil {
		n.Labels = *f.Labels
	}
	if f.Summary != nil {
		s := *f.Summary
		n.Summary = &s
	}
	if f.Title != nil || f.Content != nil || f.Labels != nil {
		n.UpdatedAt = n.UpdatedAt.Add(time.Second)
	}
	r.notes[id] = n
	return nil
}

func (r *fakeRepo) UpdateSummary(ctx context.Context, ownerID uint64, id, summaryText string) error {
	return r.UpdateNote(ctx, ownerID, id, UpdateFields{Summary: &summaryText})
}

func (r *fakeRepo) DeleteNote(_ context.Context, ownerID uint64, id string) error {
	if r.failAll {
		return errStore
	}
	n, ok := r.notes[id]
	if !ok || n.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(r.notes, id)
	r.deletes++
	return nil
}

type backendFunc func(ctx context.Context, text string) (string, error)

func (f backendFunc) Summarize(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

func newTestSession(repo *fakeRepo, backend summary.Backend) *Session {
	orch := summary.NewOrchestrator(backend, repo, nil, nil, zap.NewNop())
	return NewSession(7, repo, orch)
}

func okBackend(text string) backendFunc {
	return func(_ context.Context, _ string) (string, error) { return text, nil }
}

func TestSaveCreatesNote(t *testing.T) {
	repo := newFakeRepo()
	s := newTestSession(repo, okBackend("x"))
	ctx := context.Background()

	s.SetDraft("Shopping", "Buy milk. And eggs.", "errands, food")
	require.NoError(t, s.Save(ctx))

	notes := s.Notes()
	require.Len(t, notes, 1)
	assert.Equal(t, "Shopping", notes[0].Title)
	assert.Equal(t, []string{"errands", "food"}, []string(notes[0].Labels))
	assert.Nil(t, notes[0].Summary)

	assert.Equal(t, Draft{}, s.Draft(), "draft cleared after save")
}

func TestSaveWithEmptyLabelsNeverMatchesFilter(t *testing.T) {
	repo := newFakeRepo()
	s := newTestSession(repo, okBackend("x"))
	ctx := context.Background()

	s.SetDraft("Untagged", "content", "")
	require.NoError(t, s.Save(ctx))

	notes := s.Notes()
	require.Len(t, notes, 1)
	assert.Empty(t, notes[0].Labels)

	s.SetFilter("anything")
	assert.Empty(t, s.Visible())

	s.SetFilter("")
	assert.Len(t, s.Visible(), 1)
}

func TestBeginEditSaveRoundTrip(t *testing.T) {
	repo := newFakeRepo()
	s := newTestSession(repo, okBackend("x"))
	ctx := context.Background()

	s.SetDraft("Title", "Body", "a, b")
	require.NoError(t, s.Save(ctx))
	orig := s.Notes()[0]

	require.NoError(t, s.BeginEdit(orig.ID))
	d := s.Draft()
	assert.Equal(t, orig.Title, d.Title)
	assert.Equal(t, orig.Content, d.Content)
	assert.Equal(t, "a, b", d.LabelsText, "labels denormalized for editing")
	assert.Equal(t, orig.ID, d.EditingID)

	// save without touching anything
	require.NoError(t, s.Save(ctx))

	notes := s.Notes()
	require.Len(t, notes, 1, "edit must not create a second note")
	saved := notes[0]
	assert.Equal(t, orig.ID, saved.ID)
	assert.Equal(t, orig.Title, saved.Title)
	assert.Equal(t, orig.Content, saved.Content)
	assert.Equal(t, orig.Labels, saved.Labels)
	assert.True(t, saved.UpdatedAt.After(orig.UpdatedAt), "updated_at must advance")
	assert.Equal(t, orig.CreatedAt, saved.CreatedAt)

	assert.Empty(t, s.Draft().EditingID, "editing state cleared")
}

func TestSaveEditsFields(t *testing.T) {
	repo := newFakeRepo()
	s := newTestSession(repo, okBackend("x"))
	ctx := context.Background()

	s.SetDraft("Old", "old body", "old")
	require.NoError(t, s.Save(ctx))
	id := s.Notes()[0].ID

	require.NoError(t, s.BeginEdit(id))
	s.SetDraft("New", "new body", "fresh, new")
	require.NoError(t, s.Save(ctx))

	notes := s.Notes()
	require.Len(t, notes, 1)
	assert.Equal(t, "New", notes[0].Title)
	assert.Equal(t, "new body", notes[0].Content)
	assert.Equal(t, []string{"fresh", "new"}, []string(notes[0].Labels))
}

func TestRemoveRequiresConfirmation(t *testing.T) {
	repo := newFakeRepo()
	s := newTestSession(repo, okBackend("x"))
	ctx := context.Background()

	s.SetDraft("Doomed", "bye", "")
	require.NoError(t, s.Save(ctx))
	id := s.Notes()[0].ID

	err := s.Remove(ctx, id, false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)
	assert.Equal(t, 0, repo.deletes, "no store call without confirmation")
	assert.Len(t, s.Notes(), 1)

	require.NoError(t, s.Remove(ctx, id, true))
	assert.Equal(t, 1, repo.deletes)
	assert.Empty(t, s.Notes())
}

func TestFilterVisibility(t *testing.T) {
	repo := newFakeRepo()
	s := newTestSession(repo, okBackend("x"))
	ctx := context.Background()

	s.SetDraft("A", "", "work, project")
	require.NoError(t, s.Save(ctx))
	s.SetDraft("B", "", "home")
	require.NoError(t, s.Save(ctx))
	s.SetDraft("C", "", "")
	require.NoError(t, s.Save(ctx))

	s.SetFilter("")
	assert.Len(t, s.Visible(), 3, "blank filter shows everything")

	s.SetFilter("  ")
	assert.Len(t, s.Visible(), 3)

	s.SetFilter("WORK")
	vis := s.Visible()
	require.Len(t, vis, 1)
	assert.Equal(t, "A", vis[0].Title)

	s.SetFilter("o")
	assert.Len(t, s.Visible(), 2, "substring hits work/project and home")

	s.SetFilter("nope")
	assert.Empty(t, s.Visible())
}

func TestListOrderNewestFirst(t *testing.T) {
	repo := newFakeRepo()
	s := newTestSession(repo, okBackend("x"))
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		s.SetDraft(title, "", "")
		require.NoError(t, s.Save(ctx))
	}

	notes := s.Notes()
	require.Len(t, notes, 3)
	assert.Equal(t, "third", notes[0].Title)
	assert.Equal(t, "first", notes[2].Title)
}

func TestSummarizeSuccessUpdatesSelected(t *testing.T) {
	repo := newFakeRepo()
	s := newTestSession(repo, okBackend("a crisp summary"))
	ctx := context.Background()

	s.SetDraft("Long", "Para one. Para two. Para three.", "")
	require.NoError(t, s.Save(ctx))
	id := s.Notes()[0].ID

	out, err := s.Summarize(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "a crisp summary", out.Summary)
	assert.False(t, out.Fallback)

	sel := s.Selected()
	require.NotNil(t, sel)
	require.NotNil(t, sel.Summary)
	assert.Equal(t, "a crisp summary", *sel.Summary, "selected reflects the persisted value")
}

func TestSummarizeFallbackPersists(t *testing.T) {
	repo := newFakeRepo()
	backend := backendFunc(func(_ context.Context, _ string) (string, error) {
		return "", &summary.Error{Kind: summary.KindModelLoading, Message: "loading", EstimatedTime: 5}
	})
	s := newTestSession(repo, backend)
	ctx := context.Background()

	s.SetDraft("Long", "A. B. C. D.", "")
	require.NoError(t, s.Save(ctx))
	orig := s.Notes()[0]

	out, err := s.Summarize(ctx, orig.ID)
	require.NoError(t, err)
	assert.Equal(t, "A. B.", out.Summary)
	assert.True(t, out.Fallback)
	assert.NotEmpty(t, out.Notice())

	sel := s.Selected()
	require.NotNil(t, sel)
	require.NotNil(t, sel.Summary)
	assert.Equal(t, "A. B.", *sel.Summary)
	assert.Equal(t, orig.UpdatedAt, sel.UpdatedAt, "summary writes do not bump updated_at")
}

func TestSummarizeUnknownNote(t *testing.T) {
	repo := newFakeRepo()
	s := newTestSession(repo, okBackend("x"))

	_, err := s.Summarize(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreErrorLeavesListIntact(t *testing.T) {
	repo := newFakeRepo()
	s := newTestSession(repo, okBackend("x"))
	ctx := context.Background()

	s.SetDraft("Kept", "body", "")
	require.NoError(t, s.Save(ctx))

	repo.failAll = true
	s.SetDraft("Lost", "body", "")
	assert.ErrorIs(t, s.Save(ctx), errStore)

	// no reload happened, the pre-action snapshot is still visible
	notes := s.Notes()
	require.Len(t, notes, 1)
	assert.Equal(t, "Kept", notes[0].Title)
}

func TestManagerReusesSessions(t *testing.T) {
	repo := newFakeRepo()
	orch := summary.NewOrchestrator(okBackend("x"), repo, nil, nil, zap.NewNop())
	m := NewManager(repo, orch)

	a := m.Get(1)
	assert.Same(t, a, m.Get(1))
	assert.NotSame(t, a, m.Get(2))

	m.Drop(1)
	assert.NotSame(t, a, m.Get(1), "dropped session is rebuilt fresh")
}
