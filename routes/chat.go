package routes

import (
	"net/http"

	"mindcare/support-chat/handlers"
)

// RegisterChatRoutes registers all chat-related routes
func RegisterChatRoutes(mux *http.ServeMux, api *handlers.API) {
	mux.HandleFunc("POST /api/chat", api.Chat)
	mux.HandleFunc("DELETE /api/chat/session", api.ResetSession)
}
