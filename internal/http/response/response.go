// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков.
package response

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/sheets-api/internal/common"
	"github.com/magabrotheeeer/sheets-api/internal/lib/validate"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Status: статус запроса ("OK" или "Error").
// Поле Error: текст ошибки (опционально, при неуспехе).
// Поле Data: данные ответа (опционально, при успехе).
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// ErrorResponse: структура ошибки для Swagger-документации.
// Используется в аннотациях @Failure как возвращаемый тип ошибки.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"Invalid email or password."`
}

const (
	// StatusOK: значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError: значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// Тексты ответов, которые видит клиент.
const (
	MsgInvalidBody        = "Invalid request body."
	MsgInvalidCredentials = "Invalid email or password."
	MsgDuplicateAccount   = "User is already registered."
	MsgUserNotCreated     = "User could not be created."
	MsgNoToken            = "Access denied. No token provided."
	MsgInvalidToken       = "Invalid token."
	MsgUserNotFound       = "User was not found."
	MsgInternal           = "Internal server error."
)

// StatusOKWithData возвращает успешный Response с переданными данными.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// ValidationError формирует ответ по ошибке валидации. Клиент видит текст
// первого нарушенного правила.
func ValidationError(err error) ErrorResponse {
	var verr *validate.Error
	if errors.As(err, &verr) {
		return Error(verr.Message)
	}
	return Error(MsgInvalidBody)
}

// ErrorStatus сопоставляет ошибку бизнес-логики с HTTP-статусом.
func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, common.ErrValidation),
		errors.Is(err, common.ErrDuplicateAccount),
		errors.Is(err, common.ErrInvalidCredentials),
		errors.Is(err, common.ErrInvalidToken):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// JSONError отправляет ответ с ошибкой и статусом status.
func JSONError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, Error(msg))
}

// JSONOK отправляет успешный ответ с данными.
func JSONOK(w http.ResponseWriter, r *http.Request, data any) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, StatusOKWithData(data))
}

// DocumentNotFound возвращает сообщение вида "Sheet was not found.".
func DocumentNotFound(title string) string {
	return title + " was not found."
}

// DocumentNotSaved возвращает сообщение вида "Sheet could not be created.".
func DocumentNotSaved(title, action string) string {
	return title + " could not be " + action + "."
}
