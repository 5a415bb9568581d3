// Package read реализует HTTP-обработчик получения одного документа по идентификатору.
// Чужой или несуществующий документ неотличимы: в обоих случаях 404.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/sheets-api/internal/common"
	"github.com/magabrotheeeer/sheets-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/sheets-api/internal/http/response"
	"github.com/magabrotheeeer/sheets-api/internal/lib/sl"
	"github.com/magabrotheeeer/sheets-api/internal/models"
)

// Service описывает чтение документа, принадлежащего пользователю.
type Service interface {
	Kind() models.Kind
	Get(ctx context.Context, ownerUID, id string) (*models.Document, error)
}

// Handler обрабатывает GET /api/{kind}/{id}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создаёт Handler для вида документов сервиса service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получение документа
// @Tags Documents
// @Produce  json
// @Security ApiKeyAuth
// @Param kind path string true "sheets или reports"
// @Param id path string true "ID документа"
// @Success 200 {object} response.Response{data=models.Document}
// @Failure 404 {object} response.ErrorResponse "Документ не найден"
// @Router /api/{kind}/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.document.read"

	kind := h.service.Kind()
	log := h.log.With(
		slog.String("op", op),
		slog.String("kind", string(kind)),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := middlewarectx.UserUIDFromContext(r.Context())
	if !ok {
		log.Error("user uid not found in context")
		response.JSONError(w, r, http.StatusUnauthorized, response.MsgNoToken)
		return
	}

	id := chi.URLParam(r, "id")
	doc, err := h.service.Get(r.Context(), uid, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			log.Info("document not found", slog.String("id", id))
			response.JSONError(w, r, http.StatusNotFound, response.DocumentNotFound(kind.Title()))
			return
		}
		log.Error("failed to get document", sl.Err(err))
		response.JSONError(w, r, http.StatusInternalServerError, response.MsgInternal)
		return
	}

	response.JSONOK(w, r, doc)
}
