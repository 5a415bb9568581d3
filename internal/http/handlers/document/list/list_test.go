package list

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/sheets-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/sheets-api/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Kind() models.Kind { return models.KindSheet }

func (m *MockService) List(ctx context.Context, ownerUID string) ([]*models.Document, error) {
	args := m.Called(ctx, ownerUID)
	resp, _ := args.Get(0).([]*models.Document)
	return resp, args.Error(1)
}

func newRequest(uid string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/sheets", nil)
	return req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, uid))
}

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("пустой список", func(t *testing.T) {
		svc := new(MockService)
		svc.On("List", mock.Anything, "uid-1").Return(nil, nil)

		rr := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(rr, newRequest("uid-1"))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"status":"OK","data":[]}`, rr.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("документы пользователя", func(t *testing.T) {
		svc := new(MockService)
		svc.On("List", mock.Anything, "uid-1").Return([]*models.Document{
			{ID: "d1", Kind: models.KindSheet, Title: "first", Items: []models.Item{}},
			{ID: "d2", Kind: models.KindSheet, Title: "second", Items: []models.Item{}},
		}, nil)

		rr := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(rr, newRequest("uid-1"))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"id":"d1"`)
		assert.Contains(t, rr.Body.String(), `"id":"d2"`)
	})

	t.Run("ошибка сервиса", func(t *testing.T) {
		svc := new(MockService)
		svc.On("List", mock.Anything, "uid-1").Return(nil, errors.New("db down"))

		rr := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(rr, newRequest("uid-1"))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, `{"status":"Error","error":"Internal server error."}`, rr.Body.String())
	})

	t.Run("без пользователя", func(t *testing.T) {
		svc := new(MockService)

		rr := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/sheets", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})
}
