// Package list реализует HTTP-обработчик получения списка листов или отчётов.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/sheets-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/sheets-api/internal/http/response"
	"github.com/magabrotheeeer/sheets-api/internal/lib/sl"
	"github.com/magabrotheeeer/sheets-api/internal/models"
)

// Service описывает получение списка документов одного вида.
type Service interface {
	Kind() models.Kind
	List(ctx context.Context, ownerUID string) ([]*models.Document, error)
}

// Handler обрабатывает GET /api/sheets и GET /api/reports.
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
// @Summary Список документов
// @Description По умолчанию возвращает только документы текущего пользователя.
// @Tags Documents
// @Produce  json
// @Security ApiKeyAuth
// @Param kind path string true "sheets или reports"
// @Success 200 {object} response.Response{data=[]models.Document}
// @Failure 401 {object} response.ErrorResponse "Токен не передан"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/{kind} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.document.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("kind", string(h.service.Kind())),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := middlewarectx.UserUIDFromContext(r.Context())
	if !ok {
		log.Error("user uid not found in context")
		response.JSONError(w, r, http.StatusUnauthorized, response.MsgNoToken)
		return
	}

	docs, err := h.service.List(r.Context(), uid)
	if err != nil {
		log.Error("failed to list documents", sl.Err(err))
		response.JSONError(w, r, http.StatusInternalServerError, response.MsgInternal)
		return
	}
	if docs == nil {
		docs = []*models.Document{}
	}

	log.Info("documents listed", slog.Int("count", len(docs)))
	response.JSONOK(w, r, docs)
}
