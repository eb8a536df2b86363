package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/comfyui-plus/backend/internal/logger"
	"github.com/comfyui-plus/backend/internal/model"
	"github.com/comfyui-plus/backend/internal/token"
)

// TokenVerifier validates bearer tokens.
type TokenVerifier interface {
	Verify(tokenString string) (*model.DecodedToken, error)
}

// Authenticate validates bearer tokens and injects the caller identity
// into the request context before protected handlers run.
type Authenticate struct {
	tokens         TokenVerifier
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokens TokenVerifier, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokens: tokens, contextManager: contextManager, logger: logger}
}

// Handle rejects requests without a valid bearer token with 401. A
// missing or malformed Authorization header is an authorization
// failure, not a validation error.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			m.logger.Info("Authenticate middleware: missing or malformed authorization header",
				"path", r.URL.Path)
			writeUnauthorized(w, "Unauthorized: Missing or invalid token")
			return
		}

		decoded, err := m.tokens.Verify(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			m.logger.Info("Authenticate middleware: token verification failed",
				"path", r.URL.Path,
				"error", err.Error())
			writeUnauthorized(w, "Unauthorized: Invalid token")
			return
		}

		userID, ok := token.ExtractUserID(decoded)
		if !ok {
			m.logger.Info("Authenticate middleware: token valid but user id claim missing",
				"path", r.URL.Path)
			writeUnauthorized(w, "Unauthorized: Invalid token format")
			return
		}

		identity := model.Identity{UserID: userID}
		if username, ok := token.ExtractUsername(decoded); ok {
			identity.Username = username
		}

		ctx := m.contextManager.SetIdentityToContext(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
