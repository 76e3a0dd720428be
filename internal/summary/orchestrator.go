package summary

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Store is the persistence port; the note store satisfies it.
type Store interface {
	UpdateSummary(ctx context.Context, ownerID uint64, noteID, summaryText string) error
}

// Queue schedules a background re-summarization. Optional.
type Queue interface {
	EnqueueSummaryRefresh(ctx context.Context, ownerID uint64, noteID string, runAt time.Time) error
}

// Outcome is what the caller surfaces. Kind is set only when the
// fallback path was taken and drives the user-facing notice.
type Outcome struct {
	Summary  string
	Fallback bool
	Kind     ErrorKind
}

// Orchestrator runs the summarize-then-persist flow. Summarization
// failures never reach the caller; only a store failure does.
type Orchestrator struct {
	backend Backend
	store   Store
	cache   *Cache // optional
	queue   Queue  // optional
	log     *zap.Logger
}

func NewOrchestrator(backend Backend, store Store, cache *Cache, queue Queue, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{backend: backend, store: store, cache: cache, queue: queue, log: log}
}

// SummarizeAndPersist obtains a summary for the content, writes it to the
// note exactly once, and reports which path produced it.
func (o *Orchestrator) SummarizeAndPersist(ctx context.Context, ownerID uint64, noteID, content string) (Outcome, error) {
	if o.cache != nil {
		if cached, ok, err := o.cache.Get(ctx, content); err == nil && ok {
			if err := o.store.UpdateSummary(ctx, ownerID, noteID, cached); err != nil {
				return Outcome{}, err
			}
			return Outcome{Summary: cached}, nil
		} else if err != nil {
			o.log.Warn("summary cache unavailable", zap.Error(err))
		}
	}

	text, err := o.backend.Summarize(ctx, content)
	if err == nil {
		if o.cache != nil {
			if cerr := o.cache.Set(ctx, content, text); cerr != nil {
				o.log.Warn("summary cache write failed", zap.Error(cerr))
			}
		}
		if err := o.store.UpdateSummary(ctx, ownerID, noteID, text); err != nil {
			return Outcome{}, err
		}
		return Outcome{Summary: text}, nil
	}

	var serr *Error
	if !errors.As(err, &serr) {
		serr = &Error{Kind: KindUnexpected, Message: err.Error()}
	}
	o.log.Info("summarization failed, using fallback",
		zap.String("note_id", noteID),
		zap.String("kind", serr.Kind.String()))

	fb := Fallback(content)
	if err := o.store.UpdateSummary(ctx, ownerID, noteID, fb); err != nil {
		return Outcome{}, err
	}

	if serr.Kind == KindModelLoading && o.queue != nil {
		delay := time.Duration(serr.EstimatedTime * float64(time.Second))
		if delay <= 0 {
			delay = 30 * time.Second
		}
		if qerr := o.queue.EnqueueSummaryRefresh(ctx, ownerID, noteID, time.Now().Add(delay)); qerr != nil {
			o.log.Warn("enqueue summary refresh failed", zap.Error(qerr))
		}
	}

	return Outcome{Summary: fb, Fallback: true, Kind: serr.Kind}, nil
}

// Notice is the user-facing diagnostic for a fallback outcome.
func (o Outcome) Notice() string {
	if !o.Fallback {
		return ""
	}
	if o.Kind == KindModelLoading {
		return "summarization model is warming up, try again shortly"
	}
	return "summarization service unavailable, stored a local summary"
}
