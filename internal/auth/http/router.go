package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/lodgepole/gatehouse/internal/auth/service"
	"github.com/lodgepole/gatehouse/pkg/httpx"
	"github.com/lodgepole/gatehouse/pkg/slogx"
)

// Pinger reports whether a backing store is reachable. The readiness
// probe uses it; the sqlite driver satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	AuthService *service.AuthService
	UserStore   Pinger
}

func NewRouter(auth *service.AuthService, users Pinger, buildVersion string, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		AuthService:  auth,
		UserStore:    users,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAccounts()
	r.registerSessions()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAccounts() {
	signupHandler := &SignupHandler{AuthService: r.AuthService}

	// POST /signup - strict rate limit (account creation)
	r.Mux.Handle("POST /signup",
		httpx.Chain(signupHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	deleteHandler := &DeleteUserHandler{AuthService: r.AuthService}
	r.Mux.Handle("DELETE /delete-user",
		httpx.Chain(deleteHandler,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSessions() {
	loginHandler := &LoginHandler{AuthService: r.AuthService}

	// POST /login - strict rate limit (authentication attempts)
	r.Mux.Handle("POST /login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /verify-2fa - strict rate limit (code guessing)
	verify2FAHandler := &VerifyTwoFAHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /verify-2fa",
		httpx.Chain(verify2FAHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	logoutHandler := &LogoutHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /logout",
		httpx.Chain(logoutHandler,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	verifyTokenHandler := &VerifyTokenHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /verify-token",
		httpx.Chain(verifyTokenHandler,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.UserStore))
}
