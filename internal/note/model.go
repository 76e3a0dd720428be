package note

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Note is the stored record. Summary stays NULL until the first
// summarization (service or fallback) and is overwritten on each one.
type Note struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   uint64         `gorm:"index;not null" json:"owner_id"`
	Title     string         `gorm:"type:text;not null;default:''" json:"title"`
	Content   string         `gorm:"type:text;not null;default:''" json:"content"`
	Labels    pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"labels"`
	Summary   *string        `gorm:"type:text" json:"summary,omitempty"`
	CreatedAt time.Time      `gorm:"index;not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (n *Note) BeforeCreate(_ *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
