// Package middlewarectx содержит HTTP middleware для проверки токенов доступа.
//
// JWTMiddleware читает токен из настраиваемого заголовка (по умолчанию
// x-auth-token) или из Authorization: Bearer, проверяет его и кладёт данные
// пользователя в контекст запроса. Отсутствие токена даёт 401, невалидный
// токен даёт 400. К базе данных middleware не обращается.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/sheets-api/internal/http/response"
	"github.com/magabrotheeeer/sheets-api/internal/lib/jwt"
	"github.com/magabrotheeeer/sheets-api/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// UserUID: ключ для идентификатора пользователя в контексте
	UserUID Key = "uid"
	// Name: ключ для имени пользователя в контексте
	Name Key = "name"
	// Email: ключ для email пользователя в контексте
	Email Key = "email"
)

// DefaultTokenHeader: заголовок с токеном по умолчанию.
const DefaultTokenHeader = "x-auth-token"

// Service описывает интерфейс сервиса для валидации JWT токена.
type Service interface {
	ValidateToken(ctx context.Context, token string) (*jwt.UserClaims, error)
}

// JWTMiddleware возвращает HTTP middleware, который проверяет токен запроса.
func JWTMiddleware(authService Service, tokenHeader string, log *slog.Logger) func(http.Handler) http.Handler {
	if tokenHeader == "" {
		tokenHeader = DefaultTokenHeader
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			tokenStr := TokenFromRequest(r, tokenHeader)
			if tokenStr == "" {
				log.Info("token is missing")
				response.JSONError(w, r, http.StatusUnauthorized, response.MsgNoToken)
				return
			}

			claims, err := authService.ValidateToken(r.Context(), tokenStr)
			if err != nil {
				log.Info("invalid token", sl.Err(err))
				response.JSONError(w, r, http.StatusBadRequest, response.MsgInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), UserUID, claims.UserUID)
			ctx = context.WithValue(ctx, Name, claims.Name)
			ctx = context.WithValue(ctx, Email, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TokenFromRequest достаёт токен из заголовка header, а если его нет,
// из Authorization: Bearer.
func TokenFromRequest(r *http.Request, header string) string {
	if token := strings.TrimSpace(r.Header.Get(header)); token != "" {
		return token
	}
	authHeader := r.Header.Get("Authorization")
	if len(authHeader) > len("Bearer ") && strings.EqualFold(authHeader[:len("Bearer ")], "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

// UserUIDFromContext возвращает идентификатор пользователя, положенный JWTMiddleware.
func UserUIDFromContext(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(UserUID).(string)
	return uid, ok && uid != ""
}
