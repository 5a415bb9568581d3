// Package document содержит бизнес-логику листов и отчётов. Один Service
// обслуживает один вид документа; доступ к отдельному документу разрешён только
// его владельцу.
package document

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/magabrotheeeer/sheets-api/internal/cache"
	"github.com/magabrotheeeer/sheets-api/internal/common"
	"github.com/magabrotheeeer/sheets-api/internal/events"
	"github.com/magabrotheeeer/sheets-api/internal/lib/sl"
	"github.com/magabrotheeeer/sheets-api/internal/lib/totals"
	"github.com/magabrotheeeer/sheets-api/internal/models"
)

// Repository определяет методы для работы с документами в хранилище.
type Repository interface {
	// CreateDocument сохраняет документ и связь с владельцем.
	CreateDocument(ctx context.Context, ownerUID string, doc models.Document) (*models.Document, error)
	// OwnedDocumentIDs возвращает ID документов вида kind, принадлежащих пользователю.
	OwnedDocumentIDs(ctx context.Context, ownerUID string, kind models.Kind) ([]string, error)
	// GetDocument возвращает документ по ID.
	GetDocument(ctx context.Context, kind models.Kind, id string) (*models.Document, error)
	// UpdateOwnedDocument обновляет документ, если он принадлежит ownerUID.
	UpdateOwnedDocument(ctx context.Context, ownerUID string, doc models.Document) (*models.Document, error)
	// RemoveOwnedDocument удаляет документ, если он принадлежит ownerUID.
	RemoveOwnedDocument(ctx context.Context, ownerUID string, kind models.Kind, id string) (*models.Document, error)
	// ListDocuments возвращает документы пользователя.
	ListDocuments(ctx context.Context, ownerUID string, kind models.Kind) ([]*models.Document, error)
	// ListAllDocuments возвращает документы всех пользователей.
	ListAllDocuments(ctx context.Context, kind models.Kind) ([]*models.Document, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(ctx context.Context, key string) error
}

// EventPublisher публикует события жизненного цикла.
type EventPublisher interface {
	Publish(ctx context.Context, e events.Event) error
}

// Options: настройки Service.
type Options struct {
	// ListAll включает выдачу документов всех пользователей в List.
	ListAll bool
	// CacheTTL: время жизни документа в кеше.
	CacheTTL time.Duration
}

// Service реализует операции над документами одного вида.
type Service struct {
	kind      models.Kind
	repo      Repository
	cache     Cache
	publisher EventPublisher
	log       *slog.Logger
	opts      Options
	now       func() time.Time
}

// NewService создаёт Service для вида kind.
func NewService(kind models.Kind, repo Repository, cache Cache, publisher EventPublisher,
	log *slog.Logger, opts Options) *Service {
	return &Service{
		kind:      kind,
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		log:       log.With(slog.String("kind", string(kind))),
		opts:      opts,
		now:       time.Now,
	}
}

// Kind возвращает вид обслуживаемых документов.
func (s *Service) Kind() models.Kind {
	return s.kind
}

// Create создаёт документ и закрепляет его за ownerUID. Итоги считаются по позициям.
func (s *Service) Create(ctx context.Context, ownerUID string, req models.DocumentRequest) (*models.Document, error) {
	const op = "services.document.Create"

	doc, err := s.build(req, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.repo.CreateDocument(ctx, ownerUID, doc)
	if err != nil {
		s.log.Error("failed to create document", sl.Op(op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w: %w", op, common.ErrPersistence, err)
	}

	s.cacheDocument(ctx, created)
	s.publish(ctx, events.DocumentEvent(events.ActionCreated, ownerUID, created))
	return created, nil
}

// List возвращает документы пользователя или, если включено ListAll, всех пользователей.
func (s *Service) List(ctx context.Context, ownerUID string) ([]*models.Document, error) {
	const op = "services.document.List"

	var (
		docs []*models.Document
		err  error
	)
	if s.opts.ListAll {
		docs, err = s.repo.ListAllDocuments(ctx, s.kind)
	} else {
		docs, err = s.repo.ListDocuments(ctx, ownerUID, s.kind)
	}
	if err != nil {
		s.log.Error("failed to list documents", sl.Op(op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return docs, nil
}

// Get возвращает документ, если он принадлежит ownerUID, иначе common.ErrNotFound.
func (s *Service) Get(ctx context.Context, ownerUID, id string) (*models.Document, error) {
	const op = "services.document.Get"

	if err := s.ensureOwned(ctx, ownerUID, id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var cached models.Document
	found, err := s.cache.Get(ctx, cache.DocumentKey(s.kind, id), &cached)
	if err != nil {
		s.log.Warn("cache get failed", sl.Op(op), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	doc, err := s.repo.GetDocument(ctx, s.kind, id)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			s.log.Error("failed to get document", sl.Op(op), sl.Err(err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.cacheDocument(ctx, doc)
	return doc, nil
}

// Update заменяет данные документа, если он принадлежит ownerUID.
// Пустая дата в запросе сохраняет прежнюю.
func (s *Service) Update(ctx context.Context, ownerUID, id string, req models.DocumentRequest) (*models.Document, error) {
	const op = "services.document.Update"

	if err := s.ensureOwned(ctx, ownerUID, id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var fallback time.Time
	if strings.TrimSpace(req.Date) == "" {
		current, err := s.repo.GetDocument(ctx, s.kind, id)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		fallback = current.Date
	}

	doc, err := s.build(req, fallback)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	doc.ID = id

	updated, err := s.repo.UpdateOwnedDocument(ctx, ownerUID, doc)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		s.log.Error("failed to update document", sl.Op(op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w: %w", op, common.ErrPersistence, err)
	}

	s.invalidate(ctx, id)
	s.publish(ctx, events.DocumentEvent(events.ActionUpdated, ownerUID, updated))
	return updated, nil
}

// Remove удаляет документ, если он принадлежит ownerUID, и возвращает его.
func (s *Service) Remove(ctx context.Context, ownerUID, id string) (*models.Document, error) {
	const op = "services.document.Remove"

	if err := s.ensureOwned(ctx, ownerUID, id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	removed, err := s.repo.RemoveOwnedDocument(ctx, ownerUID, s.kind, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		s.log.Error("failed to remove document", sl.Op(op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w: %w", op, common.ErrPersistence, err)
	}

	s.invalidate(ctx, id)
	s.publish(ctx, events.DocumentEvent(events.ActionRemoved, ownerUID, removed))
	return removed, nil
}

// ensureOwned проверяет, входит ли id в набор документов пользователя.
func (s *Service) ensureOwned(ctx context.Context, ownerUID, id string) error {
	owned, err := s.repo.OwnedDocumentIDs(ctx, ownerUID, s.kind)
	if err != nil {
		s.log.Error("failed to load owned documents", sl.Err(err))
		return err
	}
	if !slices.Contains(owned, id) {
		return common.ErrNotFound
	}
	return nil
}

// build переводит запрос в документ. Дата по умолчанию берётся из fallback.
func (s *Service) build(req models.DocumentRequest, fallback time.Time) (models.Document, error) {
	date := fallback
	if strings.TrimSpace(req.Date) != "" {
		parsed, err := models.ParseDate(req.Date)
		if err != nil {
			return models.Document{}, fmt.Errorf("%w: %w", common.ErrValidation, err)
		}
		date = parsed
	}
	items := req.Items
	if items == nil {
		items = []models.Item{}
	}
	published := false
	if req.IsPublished != nil {
		published = *req.IsPublished
	}
	return models.Document{
		Kind:        s.kind,
		Title:       strings.TrimSpace(req.Title),
		Date:        date,
		IsPublished: published,
		Items:       items,
		Totals:      totals.Compute(items),
	}, nil
}

func (s *Service) cacheDocument(ctx context.Context, doc *models.Document) {
	if err := s.cache.Set(ctx, cache.DocumentKey(s.kind, doc.ID), doc, s.opts.CacheTTL); err != nil {
		s.log.Warn("cache set failed", sl.Err(err))
	}
}

func (s *Service) invalidate(ctx context.Context, id string) {
	if err := s.cache.Invalidate(ctx, cache.DocumentKey(s.kind, id)); err != nil {
		s.log.Warn("cache invalidate failed", sl.Err(err))
	}
}

func (s *Service) publish(ctx context.Context, e events.Event) {
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.log.Warn("failed to publish event", slog.String("type", e.Type), sl.Err(err))
	}
}
