package service

import (
	"context"
	"errors"
	"strings"

	"go_5_lexicard/internal/middleware"
	"go_5_lexicard/internal/model"
	"go_5_lexicard/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrganizationService interface {
	CreateOrganization(ctx context.Context, req *model.CreateOrganizationRequest) (*model.Organization, error)
	ListOrganizations(ctx context.Context) ([]*model.Organization, error)
	GetOrganization(ctx context.Context, orgID uuid.UUID) (*model.Organization, error)
}

type organizationService struct {
	db      *gorm.DB
	orgRepo repository.OrganizationRepository
}

func NewOrganizationService(db *gorm.DB, orgRepo repository.OrganizationRepository) OrganizationService {
	return &organizationService{db: db, orgRepo: orgRepo}
}

func (s *organizationService) CreateOrganization(ctx context.Context, req *model.CreateOrganizationRequest) (*model.Organization, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, model.NewAppError(model.CodeInvalidInput, "Informe o nome da organização.", "name", model.ErrInvalidInput)
	}
	plan := req.PlanType
	if plan == "" {
		plan = model.PlanFree
	}
	org := &model.Organization{
		ID:       uuid.New(),
		Name:     name,
		PlanType: plan,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.orgRepo.Create(ctx, tx, org)
	})
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			return nil, model.NewAppError(model.CodeAlreadyExists, "Organização já existe.", "name", model.ErrConflict)
		}
		return nil, internalError("Erro ao criar organização.", err)
	}

	middleware.GetLogger(ctx).Info("Organization created", "organization_id", org.ID.String(), "plan_type", org.PlanType)
	return org, nil
}

func (s *organizationService) ListOrganizations(ctx context.Context) ([]*model.Organization, error) {
	orgs, err := s.orgRepo.FindAll(ctx, s.db)
	if err != nil {
		return nil, internalError("Erro ao buscar organizações.", err)
	}
	return orgs, nil
}

func (s *organizationService) GetOrganization(ctx context.Context, orgID uuid.UUID) (*model.Organization, error) {
	org, err := s.orgRepo.FindByID(ctx, s.db, orgID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError(model.CodeNotFound, "Organização não encontrada.", "", model.ErrNotFound)
		}
		return nil, internalError("Erro ao buscar organização.", err)
	}
	return org, nil
}
