package rest

import (
	"net/http"

	"github.com/polyglotta/polyglotta-backend/internal/transport/middleware"
)

// Handlers bundles every REST handler the router mounts.
type Handlers struct {
	Health     *HealthHandler
	Auth       *AuthHandler
	Dictionary *DictionaryHandler
	Practice   *PracticeHandler
	Speech     *SpeechHandler
	Settings   *SettingsHandler
}

// NewRouter mounts all REST routes and wraps them with the given middleware
// chain. Health probes stay outside the chain so they answer even when auth
// or CORS are misconfigured.
func NewRouter(h Handlers, chain middleware.Middleware) http.Handler {
	api := http.NewServeMux()

	api.HandleFunc("POST /v1/auth/register", h.Auth.Register)
	api.HandleFunc("POST /v1/auth/login", h.Auth.Login)

	api.HandleFunc("POST /v1/dictionary/ingest", h.Dictionary.Ingest)
	api.HandleFunc("GET /v1/dictionary", h.Dictionary.List)
	api.HandleFunc("GET /v1/dictionary/{id}", h.Dictionary.Get)
	api.HandleFunc("POST /v1/dictionary/entries/{id}/link", h.Dictionary.Link)
	api.HandleFunc("DELETE /v1/dictionary/entries/{id}", h.Dictionary.Unlink)

	api.HandleFunc("GET /v1/practice/queue", h.Practice.Queue)
	api.HandleFunc("POST /v1/practice/cards/{id}/review", h.Practice.Review)

	if h.Speech != nil {
		api.HandleFunc("GET /v1/speech", h.Speech.Pronounce)
	}

	api.HandleFunc("GET /v1/settings", h.Settings.Get)
	api.HandleFunc("PUT /v1/settings", h.Settings.Update)

	root := http.NewServeMux()
	root.HandleFunc("GET /live", h.Health.Live)
	root.HandleFunc("GET /ready", h.Health.Ready)
	root.HandleFunc("GET /health", h.Health.Health)
	root.Handle("/v1/", chain(api))

	return root
}
