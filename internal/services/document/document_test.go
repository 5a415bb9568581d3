package document

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/sheets-api/internal/cache"
	"github.com/magabrotheeeer/sheets-api/internal/common"
	"github.com/magabrotheeeer/sheets-api/internal/events"
	"github.com/magabrotheeeer/sheets-api/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateDocument(ctx context.Context, ownerUID string, doc models.Document) (*models.Document, error) {
	args := m.Called(ctx, ownerUID, doc)
	if fn, ok := args.Get(0).(func(context.Context, string, models.Document) *models.Document); ok {
		return fn(ctx, ownerUID, doc), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Document), args.Error(1)
}

func (m *MockRepository) OwnedDocumentIDs(ctx context.Context, ownerUID string, kind models.Kind) ([]string, error) {
	args := m.Called(ctx, ownerUID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRepository) GetDocument(ctx context.Context, kind models.Kind, id string) (*models.Document, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Document), args.Error(1)
}

func (m *MockRepository) UpdateOwnedDocument(ctx context.Context, ownerUID string, doc models.Document) (*models.Document, error) {
	args := m.Called(ctx, ownerUID, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Document), args.Error(1)
}

func (m *MockRepository) RemoveOwnedDocument(ctx context.Context, ownerUID string, kind models.Kind, id string) (*models.Document, error) {
	args := m.Called(ctx, ownerUID, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Document), args.Error(1)
}

func (m *MockRepository) ListDocuments(ctx context.Context, ownerUID string, kind models.Kind) ([]*models.Document, error) {
	args := m.Called(ctx, ownerUID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Document), args.Error(1)
}

func (m *MockRepository) ListAllDocuments(ctx context.Context, kind models.Kind) ([]*models.Document, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Document), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Invalidate(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, e events.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func boolPtr(b bool) *bool { return &b }

func newService(repo Repository, opts Options) *Service {
	svc := NewService(models.KindSheet, repo, cache.Nop{}, events.Nop{}, newNoopLogger(), opts)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestService_Create_ComputesTotals(t *testing.T) {
	repo := new(MockRepository)
	repo.On("CreateDocument", mock.Anything, "alice", mock.MatchedBy(func(d models.Document) bool {
		return d.Kind == models.KindSheet &&
			d.Title == "March" &&
			d.IsPublished &&
			d.Totals == models.Totals{Gross: 10, Net: 8, Vat: 2} &&
			d.Date.Equal(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	})).Return(func(_ context.Context, _ string, d models.Document) *models.Document {
		d.ID = "s1"
		return &d
	}, nil).Once()

	svc := newService(repo, Options{})
	got, err := svc.Create(context.Background(), "alice", models.DocumentRequest{
		Title:       "March",
		IsPublished: boolPtr(true),
		Items: []models.Item{
			{PriceGross: 6, PriceNet: 5, PriceVat: 1},
			{PriceGross: 4, PriceNet: 3, PriceVat: 1},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "s1", got.ID)
	assert.Equal(t, 10.0, got.Gross)
	repo.AssertExpectations(t)
}

func TestService_Create_EmptyItemsZeroTotals(t *testing.T) {
	repo := new(MockRepository)
	repo.On("CreateDocument", mock.Anything, "alice", mock.MatchedBy(func(d models.Document) bool {
		return d.Totals == models.Totals{} && d.Items != nil && len(d.Items) == 0 &&
			d.Date.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	})).Return(&models.Document{ID: "s1", Kind: models.KindSheet}, nil).Once()

	svc := newService(repo, Options{})
	_, err := svc.Create(context.Background(), "alice", models.DocumentRequest{
		Title:       "Empty",
		Date:        "2024-03-01",
		IsPublished: boolPtr(false),
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_Create_StoreFailure(t *testing.T) {
	repo := new(MockRepository)
	repo.On("CreateDocument", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()

	svc := newService(repo, Options{})
	_, err := svc.Create(context.Background(), "alice", models.DocumentRequest{Title: "March", IsPublished: boolPtr(true)})
	require.ErrorIs(t, err, common.ErrPersistence)
}

func TestService_Create_InvalidDate(t *testing.T) {
	repo := new(MockRepository)
	svc := newService(repo, Options{})

	_, err := svc.Create(context.Background(), "alice", models.DocumentRequest{Title: "March", Date: "soon", IsPublished: boolPtr(true)})
	require.ErrorIs(t, err, common.ErrValidation)
	repo.AssertNotCalled(t, "CreateDocument", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Get_Ownership(t *testing.T) {
	tests := []struct {
		name    string
		owner   string
		owned   []string
		wantErr error
	}{
		{name: "owner gets document", owner: "alice", owned: []string{"s0", "s1"}},
		{name: "other user gets not found", owner: "bob", owned: []string{}, wantErr: common.ErrNotFound},
		{name: "malformed id gets not found", owner: "alice", owned: []string{"s0"}, wantErr: common.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			repo.On("OwnedDocumentIDs", mock.Anything, tt.owner, models.KindSheet).Return(tt.owned, nil).Once()
			repo.On("GetDocument", mock.Anything, models.KindSheet, "s1").
				Return(&models.Document{ID: "s1", Kind: models.KindSheet}, nil).Maybe()

			svc := newService(repo, Options{})
			got, err := svc.Get(context.Background(), tt.owner, "s1")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				repo.AssertNotCalled(t, "GetDocument", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "s1", got.ID)
		})
	}
}

func TestService_Get_UsesCache(t *testing.T) {
	repo := new(MockRepository)
	repo.On("OwnedDocumentIDs", mock.Anything, "alice", models.KindSheet).Return([]string{"s1"}, nil)

	c := new(MockCache)
	c.On("Get", mock.Anything, "document:sheet:s1", mock.Anything).
		Run(func(args mock.Arguments) {
			doc := args.Get(2).(*models.Document)
			doc.ID = "s1"
			doc.Title = "Cached"
		}).Return(true, nil).Once()

	svc := NewService(models.KindSheet, repo, c, events.Nop{}, newNoopLogger(), Options{CacheTTL: time.Minute})
	got, err := svc.Get(context.Background(), "alice", "s1")

	require.NoError(t, err)
	assert.Equal(t, "Cached", got.Title)
	repo.AssertNotCalled(t, "GetDocument", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Get_CacheMissStoresDocument(t *testing.T) {
	repo := new(MockRepository)
	repo.On("OwnedDocumentIDs", mock.Anything, "alice", models.KindSheet).Return([]string{"s1"}, nil)
	doc := &models.Document{ID: "s1", Kind: models.KindSheet}
	repo.On("GetDocument", mock.Anything, models.KindSheet, "s1").Return(doc, nil).Once()

	c := new(MockCache)
	c.On("Get", mock.Anything, "document:sheet:s1", mock.Anything).Return(false, errors.New("redis down")).Once()
	c.On("Set", mock.Anything, "document:sheet:s1", doc, time.Minute).Return(nil).Once()

	svc := NewService(models.KindSheet, repo, c, events.Nop{}, newNoopLogger(), Options{CacheTTL: time.Minute})
	got, err := svc.Get(context.Background(), "alice", "s1")

	require.NoError(t, err)
	assert.Equal(t, doc, got)
	c.AssertExpectations(t)
}

func TestService_List_Scope(t *testing.T) {
	t.Run("owner scope", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ListDocuments", mock.Anything, "alice", models.KindSheet).
			Return([]*models.Document{{ID: "s1"}}, nil).Once()

		got, err := newService(repo, Options{}).List(context.Background(), "alice")
		require.NoError(t, err)
		assert.Len(t, got, 1)
		repo.AssertNotCalled(t, "ListAllDocuments", mock.Anything, mock.Anything)
	})

	t.Run("all scope", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ListAllDocuments", mock.Anything, models.KindSheet).
			Return([]*models.Document{{ID: "s1"}, {ID: "s2"}}, nil).Once()

		got, err := newService(repo, Options{ListAll: true}).List(context.Background(), "alice")
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

func TestService_Update(t *testing.T) {
	repo := new(MockRepository)
	repo.On("OwnedDocumentIDs", mock.Anything, "alice", models.KindSheet).Return([]string{"s1"}, nil).Once()
	oldDate := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	repo.On("GetDocument", mock.Anything, models.KindSheet, "s1").
		Return(&models.Document{ID: "s1", Date: oldDate}, nil).Once()
	repo.On("UpdateOwnedDocument", mock.Anything, "alice", mock.MatchedBy(func(d models.Document) bool {
		return d.ID == "s1" && d.Title == "April" && d.Date.Equal(oldDate) && d.Totals.Gross == 3
	})).Return(&models.Document{ID: "s1", Kind: models.KindSheet, Title: "April"}, nil).Once()

	c := new(MockCache)
	c.On("Invalidate", mock.Anything, "document:sheet:s1").Return(nil).Once()
	p := new(MockPublisher)
	p.On("Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
		return e.Type == "sheet.updated" && e.DocumentID == "s1" && e.UserUID == "alice"
	})).Return(nil).Once()

	svc := NewService(models.KindSheet, repo, c, p, newNoopLogger(), Options{})
	got, err := svc.Update(context.Background(), "alice", "s1", models.DocumentRequest{
		Title:       "April",
		IsPublished: boolPtr(true),
		Items:       []models.Item{{PriceGross: 3}},
	})

	require.NoError(t, err)
	assert.Equal(t, "April", got.Title)
	repo.AssertExpectations(t)
	c.AssertExpectations(t)
	p.AssertExpectations(t)
}

func TestService_Update_NotOwned(t *testing.T) {
	repo := new(MockRepository)
	repo.On("OwnedDocumentIDs", mock.Anything, "bob", models.KindSheet).Return([]string{}, nil).Once()

	svc := newService(repo, Options{})
	_, err := svc.Update(context.Background(), "bob", "s1", models.DocumentRequest{Title: "April", IsPublished: boolPtr(true)})

	require.ErrorIs(t, err, common.ErrNotFound)
	repo.AssertNotCalled(t, "UpdateOwnedDocument", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Update_LostOwnershipInTransaction(t *testing.T) {
	repo := new(MockRepository)
	repo.On("OwnedDocumentIDs", mock.Anything, "alice", models.KindSheet).Return([]string{"s1"}, nil).Once()
	repo.On("UpdateOwnedDocument", mock.Anything, "alice", mock.Anything).
		Return(nil, common.ErrNotFound).Once()

	svc := newService(repo, Options{})
	_, err := svc.Update(context.Background(), "alice", "s1", models.DocumentRequest{
		Title: "April", Date: "2024-04-01", IsPublished: boolPtr(true),
	})

	require.ErrorIs(t, err, common.ErrNotFound)
	assert.NotErrorIs(t, err, common.ErrPersistence)
}

func TestService_Remove(t *testing.T) {
	repo := new(MockRepository)
	repo.On("OwnedDocumentIDs", mock.Anything, "alice", models.KindSheet).Return([]string{"s1"}, nil).Once()
	repo.On("RemoveOwnedDocument", mock.Anything, "alice", models.KindSheet, "s1").
		Return(&models.Document{ID: "s1", Kind: models.KindSheet}, nil).Once()

	p := new(MockPublisher)
	p.On("Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
		return e.Type == "sheet.removed"
	})).Return(errors.New("broker down")).Once()

	svc := NewService(models.KindSheet, repo, cache.Nop{}, p, newNoopLogger(), Options{})
	got, err := svc.Remove(context.Background(), "alice", "s1")

	require.NoError(t, err, "publish failure must not fail removal")
	assert.Equal(t, "s1", got.ID)
	p.AssertExpectations(t)
}

func TestService_Remove_StoreFailure(t *testing.T) {
	repo := new(MockRepository)
	repo.On("OwnedDocumentIDs", mock.Anything, "alice", models.KindSheet).Return([]string{"s1"}, nil).Once()
	repo.On("RemoveOwnedDocument", mock.Anything, "alice", models.KindSheet, "s1").
		Return(nil, errors.New("tx aborted")).Once()

	_, err := newService(repo, Options{}).Remove(context.Background(), "alice", "s1")
	require.ErrorIs(t, err, common.ErrPersistence)
}

func TestService_KindsAreIsolated(t *testing.T) {
	repo := new(MockRepository)
	repo.On("OwnedDocumentIDs", mock.Anything, "alice", models.KindReport).Return([]string{}, nil).Once()

	svc := NewService(models.KindReport, repo, cache.Nop{}, events.Nop{}, newNoopLogger(), Options{})
	assert.Equal(t, models.KindReport, svc.Kind())

	_, err := svc.Get(context.Background(), "alice", "s1")
	require.ErrorIs(t, err, common.ErrNotFound)
}
