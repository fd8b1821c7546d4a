package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/adapter/http/handler"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/adapter/http/middleware"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/platform/logger"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/platform/metrics"
)

// Options carries what the router needs besides the handler. Metrics may be
// nil. A nil Authorize lets every caller through, which only tests use.
type Options struct {
	JWTSecret string
	Authorize func(http.Handler) http.Handler
	Metrics   *metrics.MetricsManager
}

// New builds the full HTTP surface. Everything under /api goes through
// JWTAuth and then the RBAC check.
func New(h *handler.Handler, opts Options, log *logger.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Tracing)
	r.Use(middleware.Observe(log.Named("HTTP"), opts.Metrics))

	r.Get("/healthz", h.Health)

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.JWTAuth(opts.JWTSecret, log.Named("Auth")))
		if opts.Authorize != nil {
			api.Use(opts.Authorize)
		}

		SetupListingRoutes(api, h)
		SetupDraftRoutes(api, h)
		SetupBulkRoutes(api, h)
		SetupCallbackRoutes(api, h)
	})
	return r
}

func SetupListingRoutes(r chi.Router, h *handler.Handler) {
	r.Get("/listings", h.SearchPublic)
	r.Get("/listings/{id}", h.GetListing)
	r.Post("/listings", h.CreateListing)
	r.Put("/listings/{id}", h.UpdateListing)
	r.Delete("/listings/{id}", h.DeleteListing)
	r.Patch("/listings/{id}/status", h.UpdateListingStatus)

	r.Post("/listings/{id}/photos", h.UploadPhoto)
	r.Delete("/listings/{id}/photos/{index}", h.RemovePhoto)
	r.Post("/listings/{id}/videos", h.UploadVideo)
	r.Delete("/listings/{id}/videos/{index}", h.RemoveVideo)

	r.Get("/admin/listings", h.SearchAdmin)
}

func SetupDraftRoutes(r chi.Router, h *handler.Handler) {
	r.Get("/draft", h.GetDraft)
	r.Put("/draft", h.SaveDraft)
	r.Delete("/draft", h.DeleteDraft)
	r.Post("/draft/close", h.CloseDraft)
	r.Post("/draft/edit/{id}", h.EditListing)
	r.Post("/draft/submit", h.SubmitDraft)
	r.Post("/draft/photos", h.UploadDraftPhoto)
	r.Delete("/draft/photos/{index}", h.RemoveDraftPhoto)
	r.Post("/draft/videos", h.UploadDraftVideo)
	r.Delete("/draft/videos/{index}", h.RemoveDraftVideo)
}

func SetupBulkRoutes(r chi.Router, h *handler.Handler) {
	r.Get("/bulk/template", h.BulkTemplate)
	r.Post("/bulk/preview", h.BulkPreview)
	r.Post("/bulk/commit", h.BulkCommit)
}

func SetupCallbackRoutes(r chi.Router, h *handler.Handler) {
	r.Post("/callbacks", h.CreateCallback)
	r.Get("/admin/callbacks", h.ListCallbacks)
	r.Patch("/admin/callbacks/{id}/status", h.UpdateCallbackStatus)
}
