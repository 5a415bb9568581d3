// Package remove реализует HTTP-обработчик удаления документа.
// В ответе возвращается удалённый документ.
package remove

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

// Service описывает удаление документа.
type Service interface {
	Kind() models.Kind
	Remove(ctx context.Context, ownerUID, id string) (*models.Document, error)
}

// Handler обрабатывает DELETE /api/{kind}/{id}.
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
// @Summary Удаление документа
// @Tags Documents
// @Produce  json
// @Security ApiKeyAuth
// @Param kind path string true "sheets или reports"
// @Param id path string true "ID документа"
// @Success 200 {object} response.Response{data=models.Document} "Удалённый документ"
// @Failure 404 {object} response.ErrorResponse "Документ не найден"
// @Failure 500 {object} response.ErrorResponse "Документ не удалён"
// @Router /api/{kind}/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.document.remove"

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
	doc, err := h.service.Remove(r.Context(), uid, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			log.Info("document not found", slog.String("id", id))
			response.JSONError(w, r, http.StatusNotFound, response.DocumentNotFound(kind.Title()))
			return
		}
		log.Error("failed to remove document", sl.Err(err))
		response.JSONError(w, r, http.StatusInternalServerError, response.DocumentNotSaved(kind.Title(), "removed"))
		return
	}

	log.Info("document removed", slog.String("id", id))
	response.JSONOK(w, r, doc)
}
