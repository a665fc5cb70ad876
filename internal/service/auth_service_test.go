package service_test // 公開 API だけを通してテストする

import (
	"context"
	"errors"
	"testing"
	"time"

	"go_5_lexicard/internal/config"
	"go_5_lexicard/internal/model"
	"go_5_lexicard/internal/repository/mocks"
	"go_5_lexicard/internal/service"
	servicemocks "go_5_lexicard/internal/service/mocks"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- テストスイートの定義 ---
type AuthServiceTestSuite struct {
	suite.Suite

	db            *gorm.DB
	mockUserRepo  *mocks.UserRepository
	mockOrgRepo   *mocks.OrganizationRepository
	mockTokenRepo *mocks.TokenRepository
	mockMailer    *servicemocks.Mailer
	cfg           *config.Config
	authService   service.AuthService
}

func (s *AuthServiceTestSuite) SetupSuite() {
	// リポジトリはモックなので、トランザクションを開けるだけの空の DB で足りる
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)
	s.db = db
}

// 各テストの前にモックを作り直す
func (s *AuthServiceTestSuite) SetupTest() {
	s.mockUserRepo = new(mocks.UserRepository)
	s.mockOrgRepo = new(mocks.OrganizationRepository)
	s.mockTokenRepo = new(mocks.TokenRepository)
	s.mockMailer = new(servicemocks.Mailer)

	s.cfg = &config.Config{
		App: config.AppConfig{Name: "lexicard", FrontendURL: "http://localhost:3000"},
		JWT: config.JWTConfig{
			SecretKey:      "test-secret",
			AccessTokenTTL: 15 * time.Minute,
		},
	}

	s.authService = service.NewAuthService(s.db, s.mockUserRepo, s.mockOrgRepo, s.mockTokenRepo, s.mockMailer, s.cfg)
}

func (s *AuthServiceTestSuite) assertMocks() {
	s.mockUserRepo.AssertExpectations(s.T())
	s.mockOrgRepo.AssertExpectations(s.T())
	s.mockTokenRepo.AssertExpectations(s.T())
	s.mockMailer.AssertExpectations(s.T())
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) TestSignUp() {
	orgID := uuid.New()
	validReq := func() *model.SignUpRequest {
		return &model.SignUpRequest{Email: " Test@Example.com ", Password: "password", OrganizationID: orgID.String()}
	}

	testCases := []struct {
		name        string
		req         *model.SignUpRequest
		setupMocks  func()
		checkResult func(user *model.User, err error)
	}{
		{
			name: "正常系: 未有効化のメンバーとして登録される",
			req:  validReq(),
			setupMocks: func() {
				s.mockOrgRepo.On("FindByID", mock.Anything, mock.Anything, orgID).Return(&model.Organization{ID: orgID}, nil).Once()
				s.mockUserRepo.On("FindByEmail", mock.Anything, mock.Anything, "test@example.com").Return(nil, model.ErrNotFound).Once()
				s.mockUserRepo.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*model.User")).Return(nil).Once()
				s.mockTokenRepo.On("CreateVerificationToken", mock.Anything, mock.Anything, mock.AnythingOfType("*model.VerificationToken")).Return(nil).Once()
				s.mockMailer.On("Send", mock.Anything, "test@example.com", mock.Anything, mock.MatchedBy(func(body string) bool {
					return len(body) > 0
				})).Return(nil).Once()
			},
			checkResult: func(user *model.User, err error) {
				s.Require().NoError(err)
				s.Equal("test@example.com", user.Email)
				s.Equal(orgID, user.OrganizationID)
				s.Equal(model.RoleMember, user.Role)
				s.False(user.IsActive)
				s.NoError(bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password")))
			},
		},
		{
			name:       "異常系: 組織IDが不正",
			req:        &model.SignUpRequest{Email: "a@example.com", Password: "password", OrganizationID: "not-a-uuid"},
			setupMocks: func() {},
			checkResult: func(user *model.User, err error) {
				s.Nil(user)
				s.Equal(model.CodeInvalidOrgID, model.Code(err))
			},
		},
		{
			name: "異常系: 組織が存在しない",
			req:  validReq(),
			setupMocks: func() {
				s.mockOrgRepo.On("FindByID", mock.Anything, mock.Anything, orgID).Return(nil, model.ErrNotFound).Once()
			},
			checkResult: func(user *model.User, err error) {
				s.Nil(user)
				s.Equal(model.CodeInvalidOrgID, model.Code(err))
			},
		},
		{
			name: "異常系: Emailが重複している",
			req:  validReq(),
			setupMocks: func() {
				s.mockOrgRepo.On("FindByID", mock.Anything, mock.Anything, orgID).Return(&model.Organization{ID: orgID}, nil).Once()
				s.mockUserRepo.On("FindByEmail", mock.Anything, mock.Anything, "test@example.com").Return(&model.User{}, nil).Once()
			},
			checkResult: func(user *model.User, err error) {
				s.Nil(user)
				s.Equal(model.CodeAlreadyExists, model.Code(err))
				s.ErrorIs(err, model.ErrConflict)
			},
		},
		{
			name: "異常系: メール送信に失敗",
			req:  validReq(),
			setupMocks: func() {
				s.mockOrgRepo.On("FindByID", mock.Anything, mock.Anything, orgID).Return(&model.Organization{ID: orgID}, nil).Once()
				s.mockUserRepo.On("FindByEmail", mock.Anything, mock.Anything, "test@example.com").Return(nil, model.ErrNotFound).Once()
				s.mockUserRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
				s.mockTokenRepo.On("CreateVerificationToken", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
				s.mockMailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("ses down")).Once()
			},
			checkResult: func(user *model.User, err error) {
				s.Nil(user)
				s.Equal(model.CodeEmailSendFailed, model.Code(err))
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			tc.setupMocks()

			user, err := s.authService.SignUp(context.Background(), tc.req)

			tc.checkResult(user, err)
			s.assertMocks()
		})
	}
}

func (s *AuthServiceTestSuite) TestLogin() {
	orgID := uuid.New()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	s.Require().NoError(err)
	activeUser := &model.User{ID: uuid.New(), Email: "test@example.com", PasswordHash: string(hashed), OrganizationID: orgID, Role: model.RoleMember, IsActive: true}
	inactiveUser := *activeUser
	inactiveUser.IsActive = false

	testCases := []struct {
		name       string
		req        *model.LoginRequest
		setupMocks func()
		wantCode   string
	}{
		{
			name: "正常系: トークンが発行される",
			req:  &model.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMocks: func() {
				s.mockUserRepo.On("FindByEmail", mock.Anything, mock.Anything, "test@example.com").Return(activeUser, nil).Once()
			},
		},
		{
			name: "異常系: ユーザーが存在しない",
			req:  &model.LoginRequest{Email: "nobody@example.com", Password: "password"},
			setupMocks: func() {
				s.mockUserRepo.On("FindByEmail", mock.Anything, mock.Anything, "nobody@example.com").Return(nil, model.ErrNotFound).Once()
			},
			wantCode: model.CodeAuthenticationFailed,
		},
		{
			name: "異常系: パスワード不一致",
			req:  &model.LoginRequest{Email: "test@example.com", Password: "wrong"},
			setupMocks: func() {
				s.mockUserRepo.On("FindByEmail", mock.Anything, mock.Anything, "test@example.com").Return(activeUser, nil).Once()
			},
			wantCode: model.CodeAuthenticationFailed,
		},
		{
			name: "異常系: 未有効化のアカウント",
			req:  &model.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMocks: func() {
				s.mockUserRepo.On("FindByEmail", mock.Anything, mock.Anything, "test@example.com").Return(&inactiveUser, nil).Once()
			},
			wantCode: model.CodeAccountNotActive,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			tc.setupMocks()

			resp, err := s.authService.Login(context.Background(), tc.req)

			if tc.wantCode != "" {
				s.Nil(resp)
				s.Equal(tc.wantCode, model.Code(err))
				s.assertMocks()
				return
			}
			s.Require().NoError(err)
			s.Equal(activeUser.ID.String(), resp.UserID)
			s.Equal(orgID.String(), resp.OrganizationID)

			claims := &model.AccessClaims{}
			token, err := jwt.ParseWithClaims(resp.AccessToken, claims, func(t *jwt.Token) (interface{}, error) {
				return []byte(s.cfg.JWT.SecretKey), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			s.Require().NoError(err)
			s.True(token.Valid)
			s.Equal(activeUser.ID.String(), claims.Subject)
			s.Equal(orgID.String(), claims.OrganizationID)
			s.Equal(model.RoleMember, claims.Role)
			s.assertMocks()
		})
	}
}

func (s *AuthServiceTestSuite) TestVerifyAccount() {
	userID := uuid.New()

	testCases := []struct {
		name       string
		setupMocks func()
		wantCode   string
	}{
		{
			name: "正常系: アカウントが有効化される",
			setupMocks: func() {
				s.mockTokenRepo.On("FindVerificationToken", mock.Anything, mock.Anything, "tok").
					Return(&model.VerificationToken{Token: "tok", UserID: userID, ExpiresAt: time.Now().Add(time.Hour)}, nil).Once()
				s.mockUserRepo.On("Update", mock.Anything, mock.Anything, userID, map[string]interface{}{"is_active": true}).Return(nil).Once()
				s.mockTokenRepo.On("DeleteVerificationToken", mock.Anything, mock.Anything, "tok").Return(nil).Once()
			},
		},
		{
			name: "異常系: トークンが存在しない",
			setupMocks: func() {
				s.mockTokenRepo.On("FindVerificationToken", mock.Anything, mock.Anything, "tok").Return(nil, model.ErrNotFound).Once()
			},
			wantCode: model.CodeInvalidToken,
		},
		{
			name: "異常系: トークンの期限切れ",
			setupMocks: func() {
				s.mockTokenRepo.On("FindVerificationToken", mock.Anything, mock.Anything, "tok").
					Return(&model.VerificationToken{Token: "tok", UserID: userID, ExpiresAt: time.Now().Add(-time.Minute)}, nil).Once()
				s.mockTokenRepo.On("DeleteVerificationToken", mock.Anything, mock.Anything, "tok").Return(nil).Once()
			},
			wantCode: model.CodeInvalidToken,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			tc.setupMocks()

			err := s.authService.VerifyAccount(context.Background(), "tok")

			if tc.wantCode != "" {
				s.Equal(tc.wantCode, model.Code(err))
			} else {
				s.NoError(err)
			}
			s.assertMocks()
		})
	}
}

func (s *AuthServiceTestSuite) TestRequestPasswordReset() {
	s.Run("正常系: 未登録のメールでもエラーにしない", func() {
		s.SetupTest()
		s.mockUserRepo.On("FindByEmail", mock.Anything, mock.Anything, "ghost@example.com").Return(nil, model.ErrNotFound).Once()

		s.NoError(s.authService.RequestPasswordReset(context.Background(), "ghost@example.com"))
		s.assertMocks()
	})

	s.Run("正常系: 古いトークンを消して再発行する", func() {
		s.SetupTest()
		user := &model.User{ID: uuid.New(), Email: "test@example.com"}
		s.mockUserRepo.On("FindByEmail", mock.Anything, mock.Anything, "test@example.com").Return(user, nil).Once()
		s.mockTokenRepo.On("DeletePasswordResetTokensByUser", mock.Anything, mock.Anything, user.ID).Return(nil).Once()
		s.mockTokenRepo.On("CreatePasswordResetToken", mock.Anything, mock.Anything, mock.AnythingOfType("*model.PasswordResetToken")).Return(nil).Once()
		s.mockMailer.On("Send", mock.Anything, "test@example.com", mock.Anything, mock.Anything).Return(nil).Once()

		s.NoError(s.authService.RequestPasswordReset(context.Background(), "Test@Example.com"))
		s.assertMocks()
	})
}

func (s *AuthServiceTestSuite) TestResetPassword() {
	userID := uuid.New()

	s.Run("正常系: パスワードが更新される", func() {
		s.SetupTest()
		s.mockTokenRepo.On("FindPasswordResetToken", mock.Anything, mock.Anything, "tok").
			Return(&model.PasswordResetToken{Token: "tok", UserID: userID, ExpiresAt: time.Now().Add(time.Hour)}, nil).Once()
		s.mockUserRepo.On("Update", mock.Anything, mock.Anything, userID, mock.MatchedBy(func(updates map[string]interface{}) bool {
			hash, ok := updates["password_hash"].(string)
			return ok && bcrypt.CompareHashAndPassword([]byte(hash), []byte("new-password")) == nil
		})).Return(nil).Once()
		s.mockTokenRepo.On("DeletePasswordResetToken", mock.Anything, mock.Anything, "tok").Return(nil).Once()

		s.NoError(s.authService.ResetPassword(context.Background(), "tok", "new-password"))
		s.assertMocks()
	})

	s.Run("異常系: 使用済みのトークン", func() {
		s.SetupTest()
		s.mockTokenRepo.On("FindPasswordResetToken", mock.Anything, mock.Anything, "tok").Return(nil, model.ErrNotFound).Once()

		err := s.authService.ResetPassword(context.Background(), "tok", "new-password")
		s.Equal(model.CodeInvalidToken, model.Code(err))
		s.assertMocks()
	})
}
