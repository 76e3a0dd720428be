package note

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")

// UpdateFields carries a partial update. Nil pointers mean "leave as is".
// Labels uses a pointer-to-slice so an explicit empty label set can be
// distinguished from "unchanged".
type UpdateFields struct {
	Title   *string
	Content *string
	Labels  *[]string
	Summary *string
}

// Store is the gorm-backed repository. Every query is scoped by owner so
// a note id from another user behaves like a missing note.
type Store struct {
	DB *gorm.DB
}

func (s *Store) ListNotes(ctx context.Context, ownerID uint64) ([]Note, error) {
	var rows []Note
	err := s.DB.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) GetNote(ctx context.Context, ownerID uint64, id string) (Note, error) {
	var n Note
	err := s.DB.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&n).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Note{}, ErrNotFound
		}
		return Note{}, err
	}
	return n, nil
}

func (s *Store) CreateNote(ctx context.Context, ownerID uint64, title, content string, labels []string) (Note, error) {
	now := time.Now()
	n := Note{
		OwnerID:   ownerID,
		Title:     title,
		Content:   content,
		Labels:    pq.StringArray(labels),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.DB.WithContext(ctx).Create(&n).Error; err != nil {
		return Note{}, err
	}
	return n, nil
}

// UpdateNote applies the supplied fields. updated_at is bumped only for
// title/content/label edits; a summary-only write leaves it alone so the
// list order users see does not shift under background refresh.
func (s *Store) UpdateNote(ctx context.Context, ownerID uint64, id string, f UpdateFields) error {
	cols := map[string]any{}
	if f.Title != nil {
		cols["title"] = *f.Title
	}
	if f.Content != nil {
		cols["content"] = *f.Content
	}
	if f.Labels != nil {
		cols["labels"] = pq.StringArray(*f.Labels)
	}
	if f.Summary != nil {
		cols["summary"] = *f.Summary
	}
	if len(cols) == 0 {
		return nil
	}
	if f.Title != nil || f.Content != nil || f.Labels != nil {
		cols["updated_at"] = time.Now()
	}

	res := s.DB.WithContext(ctx).Model(&Note{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateSummary satisfies the orchestrator's persistence port.
func (s *Store) UpdateSummary(ctx context.Context, ownerID uint64, id, summaryText string) error {
	return s.UpdateNote(ctx, ownerID, id, UpdateFields{Summary: &summaryText})
}

func (s *Store) DeleteNote(ctx context.Context, ownerID uint64, id string) error {
	res := s.DB.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&Note{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
