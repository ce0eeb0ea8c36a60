package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/wayfarerhq/wayfarer/internal/journal/service"
	"github.com/wayfarerhq/wayfarer/internal/journal/store"
	"github.com/wayfarerhq/wayfarer/pkg/httpx"
	"github.com/wayfarerhq/wayfarer/pkg/jwtx"
	"github.com/wayfarerhq/wayfarer/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store        store.Store
	UserService  *service.UserService
	TokenService *service.TokenService
	StoryService *service.StoryService
	ImageService *service.ImageService

	// UploadsDir, when set, is served under /uploads/. It is empty when
	// images live in object storage and carry absolute URLs instead.
	UploadsDir string

	// AssetsDir, when set, is served under /assets/. It holds bundled
	// files such as the placeholder story image.
	AssetsDir string
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerStories()
	r.registerImages()
	r.registerStatic()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	registerHandler := &RegisterHandler{
		UserService:  r.UserService,
		TokenService: r.TokenService,
	}
	loginHandler := &LoginHandler{
		UserService:  r.UserService,
		TokenService: r.TokenService,
	}

	// Public signup and login take the strict limit to slow down
	// credential stuffing.
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &MeHandler{UserService: r.UserService}

	secured := httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)

	r.Mux.Handle("GET /v1/users/me", secured)
}

func (r *Router) registerStories() {
	h := &StoriesHandler{StoryService: r.StoryService}

	secure := func(next http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
		return httpx.Chain(next,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(limit),
		)
	}

	r.Mux.Handle("POST /v1/stories", secure(h.HandleCreate, httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/stories", secure(h.HandleList, httpx.LenientLimit))
	r.Mux.Handle("GET /v1/stories/search", secure(h.HandleSearch, httpx.LenientLimit))
	r.Mux.Handle("GET /v1/stories/filter", secure(h.HandleFilter, httpx.LenientLimit))
	r.Mux.Handle("PUT /v1/stories/{id}", secure(h.HandleUpdate, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /v1/stories/{id}", secure(h.HandleDelete, httpx.ModerateLimit))
	r.Mux.Handle("PUT /v1/stories/{id}/favourite", secure(h.HandleFavourite, httpx.ModerateLimit))
}

func (r *Router) registerImages() {
	h := &ImagesHandler{ImageService: r.ImageService}

	r.Mux.Handle("POST /v1/images",
		httpx.Chain(http.HandlerFunc(h.HandleUpload),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/images",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerStatic() {
	if r.UploadsDir != "" {
		r.Mux.Handle("GET /uploads/",
			http.StripPrefix("/uploads/", http.FileServer(http.Dir(r.UploadsDir))))
	}
	if r.AssetsDir != "" {
		r.Mux.Handle("GET /assets/",
			http.StripPrefix("/assets/", http.FileServer(http.Dir(r.AssetsDir))))
	}
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
