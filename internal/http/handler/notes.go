package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"briefnote/internal/auth"
	"briefnote/internal/note"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// NoteHandler drives the per-user session: every request resolves the
// caller's session and goes through its state machine.
type NoteHandler struct {
	Sessions *note.Manager
	Log      *zap.Logger
}

func (h *NoteHandler) session(r *http.Request) *note.Session {
	uid, _ := auth.UserIDFromContext(r.Context())
	return h.Sessions.Get(uid)
}

// List reloads the owner's notes and returns the filtered view. The
// filter sticks on the session until changed.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)

	if q := r.URL.Query(); q.Has("label") {
		sess.SetFilter(q.Get("label"))
	}

	if err := sess.LoadNotes(r.Context()); err != nil {
		h.Log.Error("load notes failed", zap.Error(err))
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(sess.Visible())
}

type draftReq struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	LabelsText string `json:"labels_text"`
}

func (h *NoteHandler) PutDraft(w http.ResponseWriter, r *http.Request) {
	var req draftReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	h.session(r).SetDraft(req.Title, req.Content, req.LabelsText)
	w.WriteHeader(http.StatusNoContent)
}

func (h *NoteHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.session(r).Draft())
}

// BeginEdit loads a note into the draft for a subsequent save.
func (h *NoteHandler) BeginEdit(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)

	// the session edits from its cached list; make sure it has one
	if err := sess.LoadNotes(r.Context()); err != nil {
		h.Log.Error("load notes failed", zap.Error(err))
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	if err := sess.BeginEdit(chi.URLParam(r, "id")); err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(sess.Draft())
}

// Save commits the draft. An optional body updates the draft first so a
// client can set-and-save in one round trip.
func (h *NoteHandler) Save(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)

	if r.ContentLength != 0 {
		var req draftReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		sess.SetDraft(req.Title, req.Content, req.LabelsText)
	}

	if err := sess.Save(r.Context()); err != nil {
		h.Log.Error("save note failed", zap.Error(err))
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(sess.Visible())
}

// Delete requires ?confirm=true; without it no store call happens.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	confirmed := strings.EqualFold(r.URL.Query().Get("confirm"), "true")

	err := h.session(r).Remove(r.Context(), chi.URLParam(r, "id"), confirmed)
	switch {
	case errors.Is(err, note.ErrConfirmationRequired):
		http.Error(w, "confirmation required", http.StatusPreconditionRequired)
	case errors.Is(err, note.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case err != nil:
		h.Log.Error("delete note failed", zap.Error(err))
		http.Error(w, "server error", http.StatusInternalServerError)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

// Summarize never surfaces a summarization failure: a fallback summary
// comes back with a notice instead. Only store errors are 500s.
func (h *NoteHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)

	if err := sess.LoadNotes(r.Context()); err != nil {
		h.Log.Error("load notes failed", zap.Error(err))
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	out, err := sess.Summarize(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, note.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
		return
	case err != nil:
		h.Log.Error("summarize failed", zap.Error(err))
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	resp := map[string]any{
		"summary":  out.Summary,
		"fallback": out.Fallback,
	}
	if n := out.Notice(); n != "" {
		resp["notice"] = n
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (h *NoteHandler) Selected(w http.ResponseWriter, r *http.Request) {
	n := h.session(r).Selected()
	if n == nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(n)
}
