// Package register реализует HTTP-обработчик регистрации пользователя.
//
// Обработчик декодирует JSON, валидирует поля и делегирует создание аккаунта
// сервису аутентификации. Токен возвращается и в теле ответа, и в заголовке
// с токеном доступа.
package register

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/sheets-api/internal/common"
	"github.com/magabrotheeeer/sheets-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/sheets-api/internal/http/response"
	"github.com/magabrotheeeer/sheets-api/internal/lib/sl"
	"github.com/magabrotheeeer/sheets-api/internal/lib/validate"
	"github.com/magabrotheeeer/sheets-api/internal/models"
)

// Service описывает регистрацию пользователя.
type Service interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.Session, error)
}

// Response: данные успешной регистрации: профиль без пароля и токен.
type Response struct {
	models.Profile
	Token string `json:"token"`
}

// Handler обрабатывает POST /api/users.
type Handler struct {
	log         *slog.Logger
	service     Service
	validate    *validate.Validator
	tokenHeader string
}

// New создаёт Handler. Пустой tokenHeader заменяется на заголовок по умолчанию.
func New(log *slog.Logger, service Service, tokenHeader string) *Handler {
	if tokenHeader == "" {
		tokenHeader = middlewarectx.DefaultTokenHeader
	}
	return &Handler{
		log:         log,
		service:     service,
		validate:    validate.New(),
		tokenHeader: tokenHeader,
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создаёт аккаунт и сразу выдаёт токен доступа.
// @Tags Users
// @Accept  json
// @Produce  json
// @Param request body models.RegisterRequest true "Данные нового пользователя"
// @Success 200 {object} response.Response{data=Response} "Пользователь создан"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации или пользователь уже существует"
// @Failure 500 {object} response.ErrorResponse "Пользователь не создан"
// @Router /api/users [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.RegisterRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.JSONError(w, r, http.StatusBadRequest, response.MsgInvalidBody)
		return
	}
	log.Info("request body decoded", slog.String("email", req.Email))

	req.Normalize()
	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err))
		return
	}

	session, err := h.service.Register(r.Context(), req)
	if err != nil {
		status := response.ErrorStatus(err)
		switch {
		case errors.Is(err, common.ErrDuplicateAccount):
			log.Info("user already registered", slog.String("email", req.Email))
			response.JSONError(w, r, status, response.MsgDuplicateAccount)
		default:
			log.Error("failed to register user", sl.Err(err))
			response.JSONError(w, r, status, response.MsgUserNotCreated)
		}
		return
	}

	log.Info("user registered", slog.String("uid", session.User.ID))
	w.Header().Set(h.tokenHeader, session.Token)
	response.JSONOK(w, r, Response{Profile: session.User, Token: session.Token})
}
