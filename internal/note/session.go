package note

import (
	"context"
	"errors"
	"sync"

	"briefnote/internal/summary"
)

var ErrConfirmationRequired = errors.New("confirmation required")

// Repository is the store surface the session drives.
type Repository interface {
	ListNotes(ctx context.Context, ownerID uint64) ([]Note, error)
	CreateNote(ctx context.Context, ownerID uint64, title, content string, labels []string) (Note, error)
	UpdateNote(ctx context.Context, ownerID uint64, id string, f UpdateFields) error
	DeleteNote(ctx context.Context, ownerID uint64, id string) error
}

// Summarizer is satisfied by summary.Orchestrator.
type Summarizer interface {
	SummarizeAndPersist(ctx context.Context, ownerID uint64, noteID, content string) (summary.Outcome, error)
}

// Draft is the in-progress edit. EditingID empty means a save creates a
// new note; set, it updates that note.
type Draft struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	LabelsText string `json:"labels_text"`
	EditingID  string `json:"editing_id,omitempty"`
}

// Session holds one user's note list, draft, and filter behind a single
// mutex. State is authoritative only after a reload; failed store calls
// leave the pre-action snapshot in place.
type Session struct {
	mu         sync.Mutex
	repo       Repository
	summarizer Summarizer
	ownerID    uint64

	notes      []Note
	draft      Draft
	filterText string
	selected   *Note
}

func NewSession(ownerID uint64, repo Repository, summarizer Summarizer) *Session {
	return &Session{repo: repo, summarizer: summarizer, ownerID: ownerID}
}

// LoadNotes replaces the cached list from the store.
func (s *Session) LoadNotes(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reloadLocked(ctx)
}

func (s *Session) reloadLocked(ctx context.Context) error {
	rows, err := s.repo.ListNotes(ctx, s.ownerID)
	if err != nil {
		return err
	}
	s.notes = rows
	return nil
}

func (s *Session) Notes() []Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// Visible applies the label filter to the cached list.
func (s *Session) Visible() []Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Note, 0, len(s.notes))
	for _, n := range s.notes {
		if MatchesFilter(n, s.filterText) {
			out = append(out, n)
		}
	}
	return out
}

func (s *Session) SetFilter(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filterText = text
}

func (s *Session) Filter() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filterText
}

func (s *Session) SetDraft(title, content, labelsText string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Title = title
	s.draft.Content = content
	s.draft.LabelsText = labelsText
}

func (s *Session) Draft() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// BeginEdit loads a cached note's fields into the draft, labels joined
// back into comma text.
func (s *Session) BeginEdit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notes {
		if n.ID == id {
			s.draft = Draft{
				Title:      n.Title,
				Content:    n.Content,
				LabelsText: JoinLabels(n.Labels),
				EditingID:  n.ID,
			}
			return nil
		}
	}
	return ErrNotFound
}

// Save commits the draft: update when EditingID is set, create
// otherwise. The draft is cleared and the list reloaded only after the
// write succeeded.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	labels := NormalizeLabels(s.draft.LabelsText)

	if id := s.draft.EditingID; id != "" {
		f := UpdateFields{
			Title:   &s.draft.Title,
			Content: &s.draft.Content,
			Labels:  &labels,
		}
		if err := s.repo.UpdateNote(ctx, s.ownerID, id, f); err != nil {
			return err
		}
	} else {
		if _, err := s.repo.CreateNote(ctx, s.ownerID, s.draft.Title, s.draft.Content, labels); err != nil {
			return err
		}
	}

	s.draft = Draft{}
	return s.reloadLocked(ctx)
}

// Remove deletes a note. The confirmation gate is mandatory: without it
// no store call is made.
func (s *Session) Remove(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.DeleteNote(ctx, s.ownerID, id); err != nil {
		return err
	}
	return s.reloadLocked(ctx)
}

// Summarize runs the orchestrator for a cached note, reloads, and points
// selected at the refreshed row so the shown summary is the persisted one.
func (s *Session) Summarize(ctx context.Context, id string) (summary.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var target *Note
	for i := range s.notes {
		if s.notes[i].ID == id {
			target = &s.notes[i]
			break
		}
	}
	if target == nil {
		return summary.Outcome{}, ErrNotFound
	}

	out, err := s.summarizer.SummarizeAndPersist(ctx, s.ownerID, target.ID, target.Content)
	if err != nil {
		return summary.Outcome{}, err
	}

	if err := s.reloadLocked(ctx); err != nil {
		return summary.Outcome{}, err
	}
	s.selected = nil
	for i := range s.notes {
		if s.notes[i].ID == id {
			n := s.notes[i]
			s.selected = &n
			break
		}
	}
	return out, nil
}

// Selected is the note whose summary was requested last, nil when none.
func (s *Session) Selected() *Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return nil
	}
	n := *s.selected
	return &n
}
