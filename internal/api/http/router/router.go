// Package router assembles the HTTP routes and middleware chain.
package router

import (
	"net/http"

	"github.com/comfyui-plus/backend/internal/api/http/handler"
	"github.com/comfyui-plus/backend/internal/api/http/middleware"
	"github.com/comfyui-plus/backend/internal/logger"
	"github.com/comfyui-plus/backend/internal/model"
)

// Router builds the HTTP handler tree for the backend.
type Router struct {
	authService    handler.AuthService
	tokens         middleware.TokenVerifier
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates new Router instance.
func New(
	authService handler.AuthService,
	tokens middleware.TokenVerifier,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		tokens:         tokens,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register wires all routes and middleware. Auth routes are public;
// workflow routes sit behind the bearer-token gate.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokens, r.contextManager, r.logger)

	authHandler := handler.NewAuth(r.authService, r.logger)
	workflowHandler := handler.NewWorkflow(r.contextManager, r.logger)

	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/register", authHandler.Register)
	mux.HandleFunc("POST /auth/login", authHandler.Login)

	protected := http.NewServeMux()
	protected.HandleFunc("GET /workflows", workflowHandler.List)
	protected.HandleFunc("POST /workflows", workflowHandler.Create)
	protected.HandleFunc("GET /workflows/{id}", workflowHandler.Get)
	protected.HandleFunc("PUT /workflows/{id}", workflowHandler.Update)
	protected.HandleFunc("DELETE /workflows/{id}", workflowHandler.Delete)
	mux.Handle("/workflows", authenticate.Handle(protected))
	mux.Handle("/workflows/", authenticate.Handle(protected))

	return logging.Handle(mux)
}
