package sheetsapi

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/sheets-api/internal/common"
	"github.com/magabrotheeeer/sheets-api/internal/models"
)

// memStore: хранилище в памяти с той же семантикой владения, что и PostgreSQL.
type memStore struct {
	mu        sync.Mutex
	users     map[string]models.User
	documents map[string]models.Document
	owners    map[string]string
	order     []string
	lastDocID string
}

func newMemStore() *memStore {
	return &memStore{
		users:     make(map[string]models.User),
		documents: make(map[string]models.Document),
		owners:    make(map[string]string),
	}
}

func (s *memStore) Ping(context.Context) error { return nil }

func (s *memStore) EmailExists(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) CreateUser(_ context.Context, user models.User) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return "", common.ErrDuplicateAccount
		}
	}
	if user.UUID == "" {
		user.UUID = uuid.NewString()
	}
	user.CreatedAt = time.Now().UTC()
	s.users[user.UUID] = user
	return user.UUID, nil
}

func (s *memStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (s *memStore) GetUser(_ context.Context, userUID string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userUID]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &u, nil
}

func (s *memStore) UpdateProfile(_ context.Context, userUID, name, businessName string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userUID]
	if !ok {
		return nil, common.ErrNotFound
	}
	u.Name = name
	u.BusinessName = businessName
	s.users[userUID] = u
	return &u, nil
}

func (s *memStore) OwnedDocumentIDs(_ context.Context, ownerUID string, kind models.Kind) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := []string{}
	for _, id := range s.order {
		if s.owners[id] == ownerUID && s.documents[id].Kind == kind {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (s *memStore) CreateDocument(_ context.Context, ownerUID string, doc models.Document) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	doc.ID = uuid.NewString()
	doc.CreatedAt, doc.UpdatedAt = now, now
	s.documents[doc.ID] = doc
	s.owners[doc.ID] = ownerUID
	s.order = append(s.order, doc.ID)
	s.lastDocID = doc.ID
	return &doc, nil
}

func (s *memStore) GetDocument(_ context.Context, kind models.Kind, id string) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents[id]
	if !ok || doc.Kind != kind {
		return nil, common.ErrNotFound
	}
	return &doc, nil
}

func (s *memStore) UpdateOwnedDocument(_ context.Context, ownerUID string, doc models.Document) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.documents[doc.ID]
	if !ok || s.owners[doc.ID] != ownerUID || current.Kind != doc.Kind {
		return nil, common.ErrNotFound
	}
	doc.CreatedAt = current.CreatedAt
	doc.UpdatedAt = time.Now().UTC()
	s.documents[doc.ID] = doc
	return &doc, nil
}

func (s *memStore) RemoveOwnedDocument(_ context.Context, ownerUID string, kind models.Kind, id string) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents[id]
	if !ok || s.owners[id] != ownerUID || doc.Kind != kind {
		return nil, common.ErrNotFound
	}
	delete(s.documents, id)
	delete(s.owners, id)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })
	return &doc, nil
}

func (s *memStore) ListDocuments(_ context.Context, ownerUID string, kind models.Kind) ([]*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var docs []*models.Document
	for _, id := range s.order {
		if s.owners[id] == ownerUID && s.documents[id].Kind == kind {
			doc := s.documents[id]
			docs = append(docs, &doc)
		}
	}
	return docs, nil
}

func (s *memStore) ListAllDocuments(_ context.Context, kind models.Kind) ([]*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var docs []*models.Document
	for _, id := range s.order {
		if s.documents[id].Kind == kind {
			doc := s.documents[id]
			docs = append(docs, &doc)
		}
	}
	return docs, nil
}

func (s *memStore) lastDocument() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastDocID
}
