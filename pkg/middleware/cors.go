package middleware

import (
	"net/http"
	"slices"

	"github.com/go-chi/cors"
)

// CORS allows browser clients from origins. An empty list or "*" allows any
// origin without credentials.
func CORS(origins []string) func(http.Handler) http.Handler {
	allowCredentials := true
	if len(origins) == 0 || slices.Contains(origins, "*") {
		origins = []string{"*"}
		allowCredentials = false
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: allowCredentials,
		MaxAge:           300,
	})
}
