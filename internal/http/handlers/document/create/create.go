// Package create реализует HTTP-обработчик создания листа или отчёта.
//
// Один и тот же обработчик обслуживает оба вида документов: вид задаёт
// сервис, переданный в New. Итоговые суммы клиент не передаёт, они
// вычисляются по позициям.
package create

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

// Service описывает создание документа одного вида.
type Service interface {
	Kind() models.Kind
	Create(ctx context.Context, ownerUID string, req models.DocumentRequest) (*models.Document, error)
}

// Handler обрабатывает POST /api/sheets и POST /api/reports.
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
// @Summary Создание документа
// @Description Создаёт лист (/api/sheets) или отчёт (/api/reports) и закрепляет его за текущим пользователем.
// @Tags Documents
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param kind path string true "sheets или reports"
// @Param request body models.DocumentRequest true "Данные документа"
// @Success 200 {object} response.Response{data=models.Document} "Документ создан"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Токен не передан"
// @Failure 500 {object} response.ErrorResponse "Документ не создан"
// @Router /api/{kind} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.document.create"

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

	doc, err := h.service.Create(r.Context(), uid, req)
	if err != nil {
		if errors.Is(err, common.ErrValidation) {
			response.JSONError(w, r, http.StatusBadRequest, response.MsgInvalidBody)
			return
		}
		log.Error("failed to create document", sl.Err(err))
		response.JSONError(w, r, http.StatusInternalServerError, response.DocumentNotSaved(kind.Title(), "created"))
		return
	}

	log.Info("document created", slog.String("id", doc.ID))
	response.JSONOK(w, r, doc)
}
