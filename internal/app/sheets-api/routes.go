// Package sheetsapi собирает HTTP-приложение: маршруты, middleware и зависимости.
package sheetsapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/sheets-api/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/sheets-api/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/sheets-api/internal/http/handlers/document/create"
	"github.com/magabrotheeeer/sheets-api/internal/http/handlers/document/list"
	"github.com/magabrotheeeer/sheets-api/internal/http/handlers/document/read"
	"github.com/magabrotheeeer/sheets-api/internal/http/handlers/document/remove"
	"github.com/magabrotheeeer/sheets-api/internal/http/handlers/document/update"
	"github.com/magabrotheeeer/sheets-api/internal/http/handlers/health"
	"github.com/magabrotheeeer/sheets-api/internal/http/handlers/user/me"
	userupdate "github.com/magabrotheeeer/sheets-api/internal/http/handlers/user/update"
	"github.com/magabrotheeeer/sheets-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/sheets-api/internal/metrics"
	authservice "github.com/magabrotheeeer/sheets-api/internal/services/auth"
	documentservice "github.com/magabrotheeeer/sheets-api/internal/services/document"
	userservice "github.com/magabrotheeeer/sheets-api/internal/services/user"
)

// Services: зависимости, из которых строятся обработчики.
type Services struct {
	Auth    *authservice.AuthService
	Users   *userservice.Service
	Sheets  *documentservice.Service
	Reports *documentservice.Service
	DB      health.Pinger
	Metrics *metrics.Metrics
}

// RouterOptions: настройки маршрутизатора из конфигурации HTTP-сервера.
type RouterOptions struct {
	TokenHeader    string
	RequestTimeout time.Duration
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, svc Services, opts RouterOptions) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)
	if svc.Metrics != nil {
		r.Use(svc.Metrics.Middleware)
	}
	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout))
	}

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/users", register.New(logger, svc.Auth, opts.TokenHeader).ServeHTTP)
		r.Post("/auth", login.New(logger, svc.Auth).ServeHTTP)

		// Группа с проверкой токена
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(svc.Auth, opts.TokenHeader, logger))

			r.Get("/users/me", me.New(logger, svc.Users).ServeHTTP)
			r.Put("/users", userupdate.New(logger, svc.Users).ServeHTTP)

			documentRoutes(r, logger, svc.Sheets)
			documentRoutes(r, logger, svc.Reports)
		})
	})

	if svc.Metrics != nil {
		r.Handle("/metrics", svc.Metrics.Handler())
	}
	if svc.DB != nil {
		r.Get("/health", health.New(logger, svc.DB).ServeHTTP)
	}
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}

// documentRoutes регистрирует CRUD одного вида документов под /api/<вид во мн. числе>.
func documentRoutes(r chi.Router, logger *slog.Logger, svc *documentservice.Service) {
	r.Route("/"+svc.Kind().Plural(), func(r chi.Router) {
		r.Post("/", create.New(logger, svc).ServeHTTP)
		r.Get("/", list.New(logger, svc).ServeHTTP)
		r.Get("/{id}", read.New(logger, svc).ServeHTTP)
		r.Put("/{id}", update.New(logger, svc).ServeHTTP)
		r.Delete("/{id}", remove.New(logger, svc).ServeHTTP)
	})
}

// NewRouter создаёт chi-роутер со всеми маршрутами.
func NewRouter(logger *slog.Logger, svc Services, opts RouterOptions) http.Handler {
	router := chi.NewRouter()
	RegisterRoutes(router, logger, svc, opts)
	return router
}
