package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"briefnote/internal/summary"
)

// Worker drains SUMMARY_REFRESH jobs: notes whose synchronous summarize
// got a fallback because the model was still loading. A later success
// overwrites the fallback summary.
type Worker struct {
	ID      string
	Repo    *Repo
	DB      *gorm.DB
	Backend summary.Backend
	Log     *zap.Logger
}

type noteRow struct {
	ID      string `gorm:"column:id"`
	OwnerID uint64 `gorm:"column:owner_id"`
	Content string `gorm:"column:content"`
}

func (noteRow) TableName() string { return "notes" }

func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(800 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			job, err := w.Repo.Claim(w.ID)
			if err != nil {
				w.Log.Error("worker claim failed", zap.Error(err))
				continue
			}
			if job == nil {
				continue
			}
			w.handle(ctx, job)
		}
	}
}

func (w *Worker) handle(ctx context.Context, job *Job) {
	switch job.Type {
	case TypeSummaryRefresh:
		w.handleRefresh(ctx, job)
	default:
		_ = w.Repo.MarkFailed(job.ID, "unknown job type")
	}
}

func (w *Worker) handleRefresh(ctx context.Context, job *Job) {
	type payload struct {
		NoteID string `json:"note_id"`
	}
	var p payload
	if err := json.Unmarshal(job.Payload, &p); err != nil || p.NoteID == "" {
		_ = w.Repo.MarkFailed(job.ID, "bad payload")
		return
	}

	var row noteRow
	if err := w.DB.
		Where("id=? AND owner_id=?", p.NoteID, job.UserID).
		First(&row).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			// note deleted meanwhile, nothing to refresh
			_ = w.Repo.MarkDone(job.ID)
			return
		}
		w.retry(job, "db read error")
		return
	}

	text, err := w.Backend.Summarize(ctx, row.Content)
	if err != nil {
		var serr *summary.Error
		if errors.As(err, &serr) && serr.Kind == summary.KindModelLoading {
			w.retry(job, serr.Message)
			return
		}
		_ = w.Repo.MarkFailed(job.ID, err.Error())
		return
	}

	// summary column only; updated_at stays put
	if err := w.DB.Exec(`update notes set summary=? where id=? and owner_id=?`,
		text, row.ID, row.OwnerID).Error; err != nil {
		w.retry(job, "db write error")
		return
	}

	w.Log.Info("summary refreshed",
		zap.Uint64("user", job.UserID),
		zap.String("note", row.ID))
	_ = w.Repo.MarkDone(job.ID)
}

func (w *Worker) retry(job *Job, errMsg string) {
	attempts := job.Attempts + 1
	if attempts >= job.MaxAttempts {
		_ = w.Repo.MarkFailed(job.ID, errMsg)
		return
	}

	sec := math.Min(math.Pow(2, float64(attempts)), 600)
	next := time.Now().Add(time.Duration(sec) * time.Second)

	_ = w.Repo.RetryLater(job.ID, attempts, next, errMsg)
}
