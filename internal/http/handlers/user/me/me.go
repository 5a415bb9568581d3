// Package me реализует HTTP-обработчик получения профиля текущего пользователя.
package me

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/sheets-api/internal/common"
	"github.com/magabrotheeeer/sheets-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/sheets-api/internal/http/response"
	"github.com/magabrotheeeer/sheets-api/internal/lib/sl"
	"github.com/magabrotheeeer/sheets-api/internal/models"
)

// Service возвращает профиль пользователя со списками его документов.
type Service interface {
	Profile(ctx context.Context, userUID string) (*models.Profile, error)
}

// Handler обрабатывает GET /api/users/me.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создаёт Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Профиль текущего пользователя
// @Description Возвращает профиль без пароля и идентификаторы принадлежащих пользователю листов и отчётов.
// @Tags Users
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} response.Response{data=models.Profile}
// @Failure 400 {object} response.ErrorResponse "Невалидный токен"
// @Failure 401 {object} response.ErrorResponse "Токен не передан"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Router /api/users/me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.me"

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

	profile, err := h.service.Profile(r.Context(), uid)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			log.Info("user not found", slog.String("uid", uid))
			response.JSONError(w, r, http.StatusNotFound, response.MsgUserNotFound)
			return
		}
		log.Error("failed to load profile", sl.Err(err))
		response.JSONError(w, r, http.StatusInternalServerError, response.MsgInternal)
		return
	}

	response.JSONOK(w, r, profile)
}
