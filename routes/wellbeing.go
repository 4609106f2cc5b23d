package routes

import (
	"net/http"

	"mindcare/support-chat/handlers"
	"mindcare/support-chat/middleware"
)

// RegisterWellbeingRoutes registers mood and PHQ-9 routes. Everything except
// anonymous PHQ-9 scoring needs a signed-in user.
func RegisterWellbeingRoutes(mux *http.ServeMux, api *handlers.API) {
	authed := func(h http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(h)
	}

	mux.Handle("POST /api/moods", authed(api.CreateMood))
	mux.Handle("GET /api/moods", authed(api.ListMoods))
	mux.Handle("GET /api/moods/summary", authed(api.MoodSummary))

	mux.HandleFunc("POST /api/phq9", api.ScorePHQ9)
	mux.Handle("GET /api/phq9", authed(api.ListPHQ9))
}
