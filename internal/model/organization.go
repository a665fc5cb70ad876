package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	PlanFree       = "free"
	PlanPro        = "pro"
	PlanEnterprise = "enterprise"

	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Organization はテナント (分離境界) です
type Organization struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	PlanType  string    `gorm:"not null;default:free" json:"plan_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Organization) TableName() string {
	return "organizations"
}

// User は組織に1対1で所属します (users.organization_id)
type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash   string    `gorm:"not null" json:"-"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	Role           string    `gorm:"not null;default:member" json:"role"`
	IsActive       bool      `gorm:"default:false" json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// CreateOrganizationRequest は組織作成APIのリクエストDTO
type CreateOrganizationRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	PlanType string `json:"plan_type" validate:"omitempty,oneof=free pro enterprise"`
}

// UserResponse はクライアントに返すユーザー情報
type UserResponse struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Role           string    `json:"role"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewUserResponse(u *User) *UserResponse {
	return &UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		OrganizationID: u.OrganizationID,
		Role:           u.Role,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
	}
}
