// Package update реализует HTTP-обработчик изменения профиля текущего пользователя.
// Менять можно только имя и название компании.
package update

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

// Service описывает изменение профиля.
type Service interface {
	UpdateProfile(ctx context.Context, userUID string, req models.ProfileRequest) (*models.Profile, error)
}

// Handler обрабатывает PUT /api/users.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validate.Validator
}

// New создаёт Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validate.New(),
	}
}

// ServeHTTP godoc
// @Summary Изменение профиля
// @Tags Users
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param request body models.ProfileRequest true "Новые значения полей"
// @Success 200 {object} response.Response{data=models.Profile}
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Токен не передан"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Router /api/users [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := middlewarectx.UserUIDFromContext(r.Context())
	if !ok {
		log.Error("user uid not found in context")
		response.JSONError(w, r, http.StatusUnauthorized, response.MsgNoToken)
		return
	}

	var req models.ProfileRequest
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

	profile, err := h.service.UpdateProfile(r.Context(), uid, req)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			response.JSONError(w, r, http.StatusNotFound, response.MsgUserNotFound)
			return
		}
		log.Error("failed to update profile", sl.Err(err))
		response.JSONError(w, r, http.StatusInternalServerError, response.MsgInternal)
		return
	}

	log.Info("profile updated", slog.String("uid", uid))
	response.JSONOK(w, r, profile)
}
