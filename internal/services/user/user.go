// Package user содержит логику чтения и изменения профиля пользователя.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/sheets-api/internal/common"
	"github.com/magabrotheeeer/sheets-api/internal/lib/sl"
	"github.com/magabrotheeeer/sheets-api/internal/models"
)

// Repository описывает доступ к пользователям и их документам.
type Repository interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userUID, name, businessName string) (*models.User, error)
	OwnedDocumentIDs(ctx context.Context, ownerUID string, kind models.Kind) ([]string, error)
}

// Service отдаёт профиль вместе со списками принадлежащих пользователю документов.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService создаёт Service.
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Profile возвращает профиль пользователя без пароля.
func (s *Service) Profile(ctx context.Context, userUID string) (*models.Profile, error) {
	const op = "services.user.Profile"

	u, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			s.log.Error("failed to get user", sl.Op(op), sl.Err(err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.withDocuments(ctx, op, u)
}

// UpdateProfile меняет имя и название компании. Email и пароль не меняются.
func (s *Service) UpdateProfile(ctx context.Context, userUID string, req models.ProfileRequest) (*models.Profile, error) {
	const op = "services.user.UpdateProfile"

	u, err := s.repo.UpdateProfile(ctx, userUID,
		strings.TrimSpace(req.Name), strings.TrimSpace(req.BusinessName))
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			s.log.Error("failed to update profile", sl.Op(op), sl.Err(err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.withDocuments(ctx, op, u)
}

func (s *Service) withDocuments(ctx context.Context, op string, u *models.User) (*models.Profile, error) {
	profile := models.ProfileOf(u)

	sheets, err := s.repo.OwnedDocumentIDs(ctx, u.UUID, models.KindSheet)
	if err != nil {
		s.log.Error("failed to list sheets", sl.Op(op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	reports, err := s.repo.OwnedDocumentIDs(ctx, u.UUID, models.KindReport)
	if err != nil {
		s.log.Error("failed to list reports", sl.Op(op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	profile.Sheets = sheets
	profile.Reports = reports
	return &profile, nil
}
