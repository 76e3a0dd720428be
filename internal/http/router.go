package http

import (
	"net/http"

	"briefnote/internal/auth"
	"briefnote/internal/config"
	"briefnote/internal/http/handler"
	mw "briefnote/internal/http/middleware"
	"briefnote/internal/note"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewRouter(cfg config.Config, db *gorm.DB, jwtSvc *auth.JWT, sessions *note.Manager, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	ah := &handler.AuthHandler{DB: db, JWT: jwtSvc, Sessions: sessions, Log: log}
	r.Post("/auth/register", ah.Register)
	r.Post("/auth/login", ah.Login)
	r.With(auth.RequireAuth(jwtSvc)).Post("/auth/logout", ah.Logout)

	me := &handler.MeHandler{}
	r.With(auth.RequireAuth(jwtSvc)).Get("/me", me.Me)

	nh := &handler.NoteHandler{Sessions: sessions, Log: log}

	r.Route("/notes", func(r chi.Router) {
		r.Use(auth.RequireAuth(jwtSvc))

		r.Get("/", nh.List)
		r.Put("/draft", nh.PutDraft)
		r.Get("/draft", nh.GetDraft)
		r.Post("/save", nh.Save)
		r.Get("/selected", nh.Selected)

		r.Post("/{id}/edit", nh.BeginEdit)
		r.Post("/{id}/summarize", nh.Summarize)
		r.Delete("/{id}", nh.Delete)
	})

	return r
}
