// Package login реализует HTTP-обработчик входа пользователя по email и паролю.
//
// При успехе возвращается токен и краткий профиль, в котором вместо пароля
// стоит фиксированная заглушка. Любая ошибка учётных данных даёт одно и то же
// сообщение, чтобы нельзя было узнать, зарегистрирован ли email.
package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/sheets-api/internal/common"
	"github.com/magabrotheeeer/sheets-api/internal/http/response"
	"github.com/magabrotheeeer/sheets-api/internal/lib/sl"
	"github.com/magabrotheeeer/sheets-api/internal/lib/validate"
	"github.com/magabrotheeeer/sheets-api/internal/models"
)

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.Session, error)
}

// Handler обрабатывает POST /api/auth.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис аутентификации
	validate *validate.Validator // Валидатор входных данных
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validate.New(),
	}
}

// ServeHTTP godoc
// @Summary Авторизация пользователя
// @Description Аутентифицирует пользователя по email и паролю. Возвращает токен и профиль.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body models.LoginRequest true "Учетные данные пользователя"
// @Success 200 {object} response.Response{data=models.Session} "Успешная авторизация"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации или неверные учетные данные"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.LoginRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.JSONError(w, r, http.StatusBadRequest, response.MsgInvalidBody)
		return
	}

	req.Normalize()
	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err))
		return
	}

	session, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			log.Info("invalid credentials", slog.String("email", req.Email))
			response.JSONError(w, r, http.StatusBadRequest, response.MsgInvalidCredentials)
			return
		}
		log.Error("login failed", sl.Err(err))
		response.JSONError(w, r, http.StatusInternalServerError, response.MsgInternal)
		return
	}

	log.Info("login success", slog.String("uid", session.User.ID))
	response.JSONOK(w, r, session)
}
