package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"go_5_lexicard/internal/config"
	"go_5_lexicard/internal/middleware"
	"go_5_lexicard/internal/model"
	"go_5_lexicard/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	verificationTokenTTL  = 24 * time.Hour
	passwordResetTokenTTL = time.Hour
)

// AuthService はユーザー登録・有効化・ログイン・パスワード再設定を扱います
type AuthService interface {
	SignUp(ctx context.Context, req *model.SignUpRequest) (*model.User, error)
	VerifyAccount(ctx context.Context, tokenString string) error
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*model.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type authService struct {
	db        *gorm.DB
	userRepo  repository.UserRepository
	orgRepo   repository.OrganizationRepository
	tokenRepo repository.TokenRepository
	mailer    Mailer
	cfg       *config.Config
}

func NewAuthService(db *gorm.DB, userRepo repository.UserRepository, orgRepo repository.OrganizationRepository, tokenRepo repository.TokenRepository, mailer Mailer, cfg *config.Config) AuthService {
	return &authService{
		db:        db,
		userRepo:  userRepo,
		orgRepo:   orgRepo,
		tokenRepo: tokenRepo,
		mailer:    mailer,
		cfg:       cfg,
	}
}

func internalError(message string, err error) error {
	return model.NewAppError(model.CodeInternal, message, "", fmt.Errorf("%w: %w", model.ErrInternalServer, err))
}

// SignUp は既存の組織にメンバーとして参加する未有効化ユーザーを作成し、確認メールを送ります
func (s *authService) SignUp(ctx context.Context, req *model.SignUpRequest) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	logger := middleware.GetLogger(ctx).With("email", email)

	orgID, err := model.ParseOrganizationID(req.OrganizationID)
	if err != nil {
		return nil, err
	}

	var newUser *model.User
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.orgRepo.FindByID(ctx, tx, orgID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				logger.Warn("Sign up for unknown organization", "organization_id", orgID.String())
				return model.NewAppError(model.CodeInvalidOrgID, "Organização não encontrada.", "organization_id", model.ErrInvalidInput)
			}
			return internalError("Erro ao verificar organização.", err)
		}

		_, err := s.userRepo.FindByEmail(ctx, tx, email)
		if err == nil {
			logger.Warn("Email already exists")
			return model.NewAppError(model.CodeAlreadyExists, "Este e-mail já está cadastrado.", "email", model.ErrConflict)
		}
		if !errors.Is(err, model.ErrNotFound) {
			logger.Error("Failed to check email existence", "error", err)
			return internalError("Ocorreu um erro interno no servidor.", err)
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("Failed to hash password", "error", err)
			return internalError("Erro ao processar a senha.", err)
		}

		user := &model.User{
			ID:             uuid.New(),
			Email:          email,
			PasswordHash:   string(hashed),
			OrganizationID: orgID,
			Role:           model.RoleMember,
			IsActive:       false,
		}
		if err := s.userRepo.Create(ctx, tx, user); err != nil {
			if errors.Is(err, model.ErrConflict) {
				logger.Warn("Conflict during user creation (race condition)")
				return model.NewAppError(model.CodeAlreadyExists, "Este e-mail já está cadastrado.", "email", model.ErrConflict)
			}
			return internalError("Erro ao criar usuário.", err)
		}
		newUser = user

		token, err := s.newVerificationToken(ctx, tx, user.ID)
		if err != nil {
			return err
		}
		if err := s.sendVerificationEmail(ctx, user.Email, token); err != nil {
			return model.NewAppError(model.CodeEmailSendFailed, "Falha ao enviar o e-mail de confirmação. Tente novamente mais tarde.", "", fmt.Errorf("%w: %w", model.ErrInternalServer, err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("User registered and verification email sent", "user_id", newUser.ID.String(), "organization_id", orgID.String())
	return newUser, nil
}

func (s *authService) VerifyAccount(ctx context.Context, tokenString string) error {
	logger := middleware.GetLogger(ctx)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		token, err := s.tokenRepo.FindVerificationToken(ctx, tx, tokenString)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				logger.Warn("Verification token not found")
				return model.NewAppError(model.CodeInvalidToken, "Este link é inválido ou já foi utilizado.", "token", model.ErrInvalidInput)
			}
			return internalError("Ocorreu um erro interno no servidor.", err)
		}

		if time.Now().After(token.ExpiresAt) {
			logger.Warn("Verification token expired", "expires_at", token.ExpiresAt)
			_ = s.tokenRepo.DeleteVerificationToken(ctx, tx, tokenString)
			return model.NewAppError(model.CodeInvalidToken, "Este link expirou.", "token", model.ErrInvalidInput)
		}

		if err := s.userRepo.Update(ctx, tx, token.UserID, map[string]interface{}{"is_active": true}); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError(model.CodeNotFound, "Conta não encontrada.", "", model.ErrNotFound)
			}
			return internalError("Erro ao ativar a conta.", err)
		}

		if err := s.tokenRepo.DeleteVerificationToken(ctx, tx, tokenString); err != nil {
			logger.Error("Failed to delete used verification token", "error", err)
		}

		logger.Info("Account verified successfully", "user_id", token.UserID.String())
		return nil
	})
}

// Login は sub=ユーザーID、org_id、role を持つ HS256 のアクセストークンを発行します
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	logger := middleware.GetLogger(ctx).With("email", email)
	authFailed := model.NewAppError(model.CodeAuthenticationFailed, "E-mail ou senha incorretos.", "", model.ErrUnauthorized)

	user, err := s.userRepo.FindByEmail(ctx, s.db, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Login failed: user not found")
			return nil, authFailed
		}
		logger.Error("Login failed: db error on FindByEmail", "error", err)
		return nil, internalError("Ocorreu um erro interno no servidor.", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		logger.Warn("Login failed: password mismatch", "user_id", user.ID.String())
		return nil, authFailed
	}

	if !user.IsActive {
		logger.Warn("Login failed: account not active", "user_id", user.ID.String())
		return nil, model.NewAppError(model.CodeAccountNotActive, "Conta não ativada. Verifique o e-mail enviado no cadastro.", "", model.ErrForbidden)
	}

	now := time.Now()
	claims := &model.AccessClaims{
		OrganizationID: user.OrganizationID.String(),
		Role:           user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.App.Name,
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWT.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		logger.Error("Failed to sign JWT", "error", err, "user_id", user.ID.String())
		return nil, internalError("Erro ao gerar o token.", err)
	}

	logger.Info("Login successful", "user_id", user.ID.String(), "organization_id", user.OrganizationID.String())
	return &model.LoginResponse{
		AccessToken:    signed,
		UserID:         user.ID.String(),
		OrganizationID: user.OrganizationID.String(),
	}, nil
}

func (s *authService) GetUser(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			middleware.GetLogger(ctx).Warn("User not found", "user_id", userID.String())
			return nil, model.NewAppError(model.CodeNotFound, "Usuário não encontrado.", "", model.ErrNotFound)
		}
		return nil, internalError("Ocorreu um erro interno no servidor.", err)
	}
	return user, nil
}

func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	logger := middleware.GetLogger(ctx).With("email", email)

	user, err := s.userRepo.FindByEmail(ctx, s.db, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			// 登録の有無を悟られないよう成功として扱う
			logger.Warn("Password reset requested for non-existent email")
			return nil
		}
		return internalError("Ocorreu um erro interno no servidor.", err)
	}

	var token string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.tokenRepo.DeletePasswordResetTokensByUser(ctx, tx, user.ID); err != nil {
			return internalError("Erro ao gerar o token.", err)
		}
		token, err = randomToken()
		if err != nil {
			return internalError("Erro ao gerar o token.", err)
		}
		reset := &model.PasswordResetToken{Token: token, UserID: user.ID, ExpiresAt: time.Now().Add(passwordResetTokenTTL)}
		if err := s.tokenRepo.CreatePasswordResetToken(ctx, tx, reset); err != nil {
			return internalError("Erro ao salvar o token.", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.cfg.App.FrontendURL, token)
	subject := "[LexiCard] Redefinição de senha"
	body := fmt.Sprintf("Para redefinir sua senha, acesse o link abaixo:\n%s\n\nEste link expira em 1 hora.", resetURL)
	if err := s.mailer.Send(ctx, user.Email, subject, body); err != nil {
		return model.NewAppError(model.CodeEmailSendFailed, "Falha ao enviar o e-mail.", "", fmt.Errorf("%w: %w", model.ErrInternalServer, err))
	}

	logger.Info("Password reset email sent")
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, tokenString, newPassword string) error {
	logger := middleware.GetLogger(ctx)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		token, err := s.tokenRepo.FindPasswordResetToken(ctx, tx, tokenString)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError(model.CodeInvalidToken, "Este link é inválido ou já foi utilizado.", "token", model.ErrInvalidInput)
			}
			return internalError("Ocorreu um erro interno no servidor.", err)
		}
		if time.Now().After(token.ExpiresAt) {
			_ = s.tokenRepo.DeletePasswordResetToken(ctx, tx, tokenString)
			return model.NewAppError(model.CodeInvalidToken, "Este link expirou.", "token", model.ErrInvalidInput)
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return internalError("Erro ao processar a senha.", err)
		}
		if err := s.userRepo.Update(ctx, tx, token.UserID, map[string]interface{}{"password_hash": string(hashed)}); err != nil {
			return internalError("Erro ao atualizar a senha.", err)
		}

		if err := s.tokenRepo.DeletePasswordResetToken(ctx, tx, tokenString); err != nil {
			logger.Error("Failed to delete used password reset token", "error", err)
		}
		logger.Info("Password reset successfully", "user_id", token.UserID.String())
		return nil
	})
}

func (s *authService) newVerificationToken(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (string, error) {
	token, err := randomToken()
	if err != nil {
		middleware.GetLogger(ctx).Error("Failed to generate random bytes for token", "error", err)
		return "", internalError("Erro ao gerar o token.", err)
	}
	vt := &model.VerificationToken{Token: token, UserID: userID, ExpiresAt: time.Now().Add(verificationTokenTTL)}
	if err := s.tokenRepo.CreateVerificationToken(ctx, tx, vt); err != nil {
		return "", internalError("Erro ao salvar o token.", err)
	}
	return token, nil
}

func (s *authService) sendVerificationEmail(ctx context.Context, email, token string) error {
	verifyURL := fmt.Sprintf("%s/verify-email?token=%s", s.cfg.App.FrontendURL, token)
	subject := "[LexiCard] Ative sua conta"
	body := fmt.Sprintf("Obrigado por se cadastrar no LexiCard!\n\nClique no link abaixo para ativar sua conta:\n%s\n\nEste link expira em 24 horas.", verifyURL)

	middleware.GetLogger(ctx).Info("Sending verification email", "to", email)
	return s.mailer.Send(ctx, email, subject, body)
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
