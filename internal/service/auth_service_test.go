package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"miniinventory/internal/auth"
	"miniinventory/internal/db"
	apperrors "miniinventory/internal/errors"
	"miniinventory/internal/model"
	"miniinventory/internal/repository"
)

var testAdmin = DefaultAdmin{Username: "admin", Password: "admin123"}

func TestAuthService_Verify(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockUserRepository)
		expected      bool
		expectedError error
	}{
		{
			name:     "matching credential",
			username: "admin",
			password: "admin123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByCredentials", mock.Anything, "admin", auth.Digest("admin123")).
					Return(&model.User{ID: 1, Username: "admin"}, nil)
			},
			expected: true,
		},
		{
			name:     "wrong password",
			username: "admin",
			password: "wrong",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByCredentials", mock.Anything, "admin", auth.Digest("wrong")).
					Return(nil, gorm.ErrRecordNotFound)
			},
			expected: false,
		},
		{
			name:     "storage failure",
			username: "admin",
			password: "admin123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByCredentials", mock.Anything, "admin", mock.Anything).
					Return(nil, errors.New("database is locked"))
			},
			expectedError: apperrors.ErrStorageUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)
			svc := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), new(MockSessionStore), testAdmin)

			ok, err := svc.Verify(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.False(t, ok)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, ok)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_EnsureDefaultAdmin(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("CreateIfAbsent", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.ID == model.DefaultAdminID && u.Username == "admin" && u.PasswordHash == auth.Digest("admin123")
	})).Return(false, nil)
	svc := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), new(MockSessionStore), testAdmin)

	assert.NoError(t, svc.EnsureDefaultAdmin(context.Background()))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name          string
		password      string
		setupMock     func(*MockUserRepository, *MockSessionStore)
		expectedError error
	}{
		{
			name:     "successful login",
			password: "admin123",
			setupMock: func(mRepo *MockUserRepository, mSessions *MockSessionStore) {
				mRepo.On("FindByCredentials", mock.Anything, "admin", auth.Digest("admin123")).
					Return(&model.User{ID: 1, Username: "admin"}, nil)
				mSessions.On("Save", mock.Anything, mock.Anything, uint(1), "admin", auth.RefreshTokenExpiry).Return(nil)
			},
		},
		{
			name:     "invalid credentials",
			password: "nope",
			setupMock: func(mRepo *MockUserRepository, mSessions *MockSessionStore) {
				mRepo.On("FindByCredentials", mock.Anything, "admin", auth.Digest("nope")).
					Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockSessions := new(MockSessionStore)
			tt.setupMock(mockRepo, mockSessions)
			svc := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), mockSessions, testAdmin)

			accessToken, refreshToken, user, err := svc.Login(context.Background(), "admin", tt.password)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshToken)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.Equal(t, "admin", user.Username)
			}
			mockRepo.AssertExpectations(t)
			mockSessions.AssertExpectations(t)
		})
	}
}

func TestAuthService_RefreshAndLogout(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(1, "admin")
	require.NoError(t, err)

	mockSessions := new(MockSessionStore)
	mockSessions.On("Get", mock.Anything, tokenID).Return(uint(1), "admin", nil).Once()
	mockSessions.On("Delete", mock.Anything, tokenID).Return(nil)
	svc := NewAuthService(new(MockUserRepository), jwtService, mockSessions, testAdmin)

	accessToken, err := svc.Refresh(context.Background(), refreshToken)
	require.NoError(t, err)
	claims, err := jwtService.ValidateToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)

	require.NoError(t, svc.Logout(context.Background(), refreshToken))

	mockSessions.On("Get", mock.Anything, tokenID).Return(uint(0), "", errors.New("session not found"))
	_, err = svc.Refresh(context.Background(), refreshToken)
	assert.Equal(t, apperrors.ErrInvalidRefreshToken, err)
	mockSessions.AssertExpectations(t)
}

func TestAuthService_RejectsAccessTokenAsRefreshToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	accessToken, err := jwtService.GenerateAccessToken(1, "admin")
	require.NoError(t, err)
	svc := NewAuthService(new(MockUserRepository), jwtService, new(MockSessionStore), testAdmin)

	_, err = svc.Refresh(context.Background(), accessToken)
	assert.Equal(t, apperrors.ErrInvalidRefreshToken, err)
	assert.Equal(t, apperrors.ErrInvalidRefreshToken, svc.Logout(context.Background(), "garbage"))
}

func TestAuthService_DefaultAdminOnFreshStore(t *testing.T) {
	gormDB, err := db.NewSQLite(filepath.Join(t.TempDir(), "inventory.db"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gormDB) })
	require.NoError(t, db.Migrate(gormDB))

	svc := NewAuthService(repository.NewUserRepository(gormDB), auth.NewJWTService("test-secret"), auth.NewTokenStore(nil), testAdmin)
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaultAdmin(ctx))
	require.NoError(t, svc.EnsureDefaultAdmin(ctx))

	ok, err := svc.Verify(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Verify(ctx, "admin", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}
