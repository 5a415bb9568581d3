// Package update реализует HTTP-обработчик полной замены данных документа.
package update

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/sheets-api/internal/common"
	"github.com/magabrotheeeer/sheets-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/sheets-api/internal/http/response"
	"github.com/magabrotheeeer/sheets-api/internal/lib/sl"
	"github.com/magabrotheeeer/sheets-api/internal/lib/validate"
	"github.com/magabrotheeeer/sheets-api/internal/models"
)

// Service описывает замену данных документа.
type Service interface {
	Kind() models.Kind
	Update(ctx context.Context, ownerUID, id string, req models.DocumentRequest) (*models.Document, error)
}

// Handler обрабатывает PUT /api/{kind}/{id}.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validate.Validator
}

// New создаёт Handler для вида документов сервиса service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validate.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновление документа
// @Description Заменяет заголовок, дату, признак публикации и позиции. Итоги пересчитываются.
// @Tags Documents
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param kind path string true "sheets или reports"
// @Param id path string true "ID документа"
// @Param request body models.DocumentRequest true "Новые данные документа"
// @Success 200 {object} response.Response{data=models.Document}
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 404 {object} response.ErrorResponse "Документ не найден"
// @Failure 500 {object} response.ErrorResponse "Документ не обновлён"
// @Router /api/{kind}/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.document.update"

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

	var req models.DocumentRequest
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

	id := chi.URLParam(r, "id")
	doc, err := h.service.Update(r.Context(), uid, id, req)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNotFound):
			log.Info("document not found", slog.String("id", id))
			response.JSONError(w, r, http.StatusNotFound, response.DocumentNotFound(kind.Title()))
		case errors.Is(err, common.ErrValidation):
			response.JSONError(w, r, http.StatusBadRequest, response.MsgInvalidBody)
		default:
			log.Error("failed to update document", sl.Err(err))
			response.JSONError(w, r, http.StatusInternalServerError, response.DocumentNotSaved(kind.Title(), "updated"))
		}
		return
	}

	log.Info("document updated", slog.String("id", id))
	response.JSONOK(w, r, doc)
}
