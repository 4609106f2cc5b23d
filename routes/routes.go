package routes

import (
	"net/http"

	"mindcare/support-chat/handlers"
)

// RegisterAllRoutes registers all application routes
func RegisterAllRoutes(mux *http.ServeMux, api *handlers.API) {
	mux.HandleFunc("GET /health", api.Health)
	RegisterChatRoutes(mux, api)
	RegisterWellbeingRoutes(mux, api)
}
