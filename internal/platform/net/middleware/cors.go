package middleware

import (
	"net/http"

	chicors "github.com/go-chi/cors"
)

// CORS lets the dashboard origins call the API with the session cookie attached
// an empty list falls back to the local dev frontend
func CORS(origins []string, maxAge int) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	return chicors.Handler(chicors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           maxAge,
	})
}
