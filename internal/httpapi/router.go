package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abianche/uoo-cooldown-manager/internal/config"
	"github.com/abianche/uoo-cooldown-manager/internal/loader"
	"github.com/abianche/uoo-cooldown-manager/internal/store"
)

func NewRouter(cfg *config.Config, st *store.Store, ld *loader.Loader) http.Handler {
	r := chi.NewRouter()

	r.Use(LoggingMiddleware)
	r.Use(RecoverMiddleware)

	r.Get("/health", HealthHandler(st))
	r.Get("/version", VersionHandler())

	exports := newExportCache(cfg.Export.CacheTTL)

	// Editing API
	r.Route("/api", func(api chi.Router) {
		api.Use(APIKeyAuth(cfg))

		api.Get("/state", StateHandler(st))
		api.Delete("/error", ClearErrorHandler(st))

		api.Post("/document", UploadHandler(ld))
		api.Get("/document/xml", ExportHandler(cfg, st, exports))

		api.Post("/entries", AddEntryHandler(st))
		api.Post("/entries/reorder", ReorderEntriesHandler(st))
		api.Put("/entries/{index}", UpdateEntryHandler(st))
		api.Delete("/entries/{index}", DeleteEntryHandler(st))

		api.Post("/entries/{index}/triggers", AddTriggerHandler(st))
		api.Put("/entries/{index}/triggers/{trigger}", UpdateTriggerHandler(st))
		api.Delete("/entries/{index}/triggers/{trigger}", DeleteTriggerHandler(st))

		api.Patch("/settings", UpdateSettingsHandler(st))
	})

	return r
}
