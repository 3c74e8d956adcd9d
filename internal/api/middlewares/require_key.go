package middleware

import (
	"net/http"

	"github.com/ananyajain10/pitchparse-ai/internal/keystore"
)

// RequireAPIKey blocks analysis routes until a Gemini API key has been
// configured, so clients are steered into the setup flow first.
func RequireAPIKey(keys *keystore.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !keys.Configured() {
				http.Error(w, "API key not configured", http.StatusPreconditionFailed)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
