//go:generate mockery --name OrganizationRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_5_lexicard/internal/middleware"
	"go_5_lexicard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrganizationRepository interface {
	Create(ctx context.Context, db *gorm.DB, org *model.Organization) error
	FindByID(ctx context.Context, db *gorm.DB, orgID uuid.UUID) (*model.Organization, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]*model.Organization, error)
}

type gormOrganizationRepository struct{}

func NewGormOrganizationRepository() OrganizationRepository {
	return &gormOrganizationRepository{}
}

func (r *gormOrganizationRepository) Create(ctx context.Context, db *gorm.DB, org *model.Organization) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Create(org)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			logger.Warn(
				"Duplicate key error on create organization",
				"error", result.Error,
				"name", org.Name,
			)
			return model.ErrConflict
		}

		logger.Error(
			"Error creating organization in DB",
			"error", result.Error,
			"name", org.Name,
		)
		return fmt.Errorf("gormOrganizationRepository.Create: %w", result.Error)
	}

	return nil
}

func (r *gormOrganizationRepository) FindByID(ctx context.Context, db *gorm.DB, orgID uuid.UUID) (*model.Organization, error) {
	logger := middleware.GetLogger(ctx)
	var org model.Organization

	result := db.WithContext(ctx).Where("id = ?", orgID).First(&org)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error(
			"Error finding organization by ID in DB",
			"error", result.Error,
			"organization_id", orgID.String(),
		)
		return nil, fmt.Errorf("gormOrganizationRepository.FindByID: %w", result.Error)
	}
	return &org, nil
}

// FindAll は名前順で全組織を返します (サインアップ画面の選択肢)
func (r *gormOrganizationRepository) FindAll(ctx context.Context, db *gorm.DB) ([]*model.Organization, error) {
	orgs := []*model.Organization{}
	if err := db.WithContext(ctx).Order("name ASC").Find(&orgs).Error; err != nil {
		middleware.GetLogger(ctx).Error("Error listing organizations in DB", "error", err)
		return nil, fmt.Errorf("gormOrganizationRepository.FindAll: %w", err)
	}
	return orgs, nil
}
