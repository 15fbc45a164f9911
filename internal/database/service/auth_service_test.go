package service_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/astroseva/backend-go/internal/database/models"
	"github.com/astroseva/backend-go/internal/database/repository"
	"github.com/astroseva/backend-go/internal/database/service"
)

// ==================== AUTH SERVICE UNIT TESTS ====================

func TestAuthService_Signup(t *testing.T) {
	tests := []struct {
		name       string
		username   string
		email      string
		setupMocks func(*MockUserRepository)
		wantErr    error
		wantUserID uint
	}{
		{
			name:     "success",
			username: "stargazer",
			email:    "star@example.com",
			setupMocks: func(userRepo *MockUserRepository) {
				userRepo.On("FindByUsername", "stargazer").Return(nil, repository.ErrUserNotFound)
				userRepo.On("FindByEmail", "star@example.com").Return(nil, repository.ErrUserNotFound)
				userRepo.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
					user := args.Get(0).(*models.User)
					user.ID = 1
				}).Return(uint(1), nil)
			},
			wantUserID: 1,
		},
		{
			name:     "username already taken",
			username: "taken",
			email:    "new@example.com",
			setupMocks: func(userRepo *MockUserRepository) {
				userRepo.On("FindByUsername", "taken").Return(&models.User{ID: 1, Username: "taken"}, nil)
			},
			wantErr: service.ErrUsernameAlreadyTaken,
		},
		{
			name:     "email already registered",
			username: "newname",
			email:    "existing@example.com",
			setupMocks: func(userRepo *MockUserRepository) {
				userRepo.On("FindByUsername", "newname").Return(nil, repository.ErrUserNotFound)
				userRepo.On("FindByEmail", "existing@example.com").Return(&models.User{ID: 1, Email: "existing@example.com"}, nil)
			},
			wantErr: service.ErrEmailAlreadyExists,
		},
		{
			name:     "insert race lost to concurrent signup",
			username: "racer",
			email:    "racer@example.com",
			setupMocks: func(userRepo *MockUserRepository) {
				userRepo.On("FindByUsername", "racer").Return(nil, repository.ErrUserNotFound)
				userRepo.On("FindByEmail", "racer@example.com").Return(nil, repository.ErrUserNotFound)
				userRepo.On("Create", mock.AnythingOfType("*models.User")).Return(repository.ErrDuplicateUser)
			},
			// Neutral conflict: a lost race may be on either unique index,
			// so the error must not claim it was the username
			wantErr: service.ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			tt.setupMocks(userRepo)

			authService := newAuthService(userRepo)
			user, token, err := authService.Signup(tt.username, tt.email, "password123", "Pisces")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantUserID, user.ID)
				assert.Equal(t, "Pisces", user.ZodiacSign)
				assert.NotEqual(t, "password123", user.Password, "password must be stored hashed")
				assert.NotEmpty(t, token)
			}

			userRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	// Password hash for "password" (bcrypt)
	validPasswordHash := "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"

	tests := []struct {
		name       string
		username   string
		password   string
		setupMocks func(*MockUserRepository)
		wantErr    error
	}{
		{
			name:     "success",
			username: "stargazer",
			password: "password",
			setupMocks: func(userRepo *MockUserRepository) {
				userRepo.On("FindByUsername", "stargazer").Return(&models.User{
					ID:       1,
					Username: "stargazer",
					Password: validPasswordHash,
				}, nil)
			},
		},
		{
			name:     "unknown username",
			username: "nobody",
			password: "password",
			setupMocks: func(userRepo *MockUserRepository) {
				userRepo.On("FindByUsername", "nobody").Return(nil, repository.ErrUserNotFound)
			},
			wantErr: service.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			username: "stargazer",
			password: "not-the-password",
			setupMocks: func(userRepo *MockUserRepository) {
				userRepo.On("FindByUsername", "stargazer").Return(&models.User{
					ID:       1,
					Username: "stargazer",
					Password: validPasswordHash,
				}, nil)
			},
			wantErr: service.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			tt.setupMocks(userRepo)

			authService := newAuthService(userRepo)
			user, token, err := authService.Login(tt.username, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.username, user.Username)
				assert.NotEmpty(t, token)
			}

			userRepo.AssertExpectations(t)
		})
	}
}

// Wrong password and unknown username must be the same error, so the response
// cannot be used to probe which usernames exist.
func TestAuthService_Login_FailuresIndistinguishable(t *testing.T) {
	validPasswordHash := "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"

	userRepo := new(MockUserRepository)
	userRepo.On("FindByUsername", "stargazer").Return(&models.User{ID: 1, Username: "stargazer", Password: validPasswordHash}, nil)
	userRepo.On("FindByUsername", "ghost").Return(nil, repository.ErrUserNotFound)

	authService := newAuthService(userRepo)

	_, _, wrongPassErr := authService.Login("stargazer", "wrong")
	_, _, unknownUserErr := authService.Login("ghost", "wrong")

	assert.Equal(t, wrongPassErr, unknownUserErr)
}

func TestAuthService_TokenClaims(t *testing.T) {
	userRepo := new(MockUserRepository)
	validPasswordHash := "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"
	userRepo.On("FindByUsername", "stargazer").Return(&models.User{
		ID:       42,
		Username: "stargazer",
		Password: validPasswordHash,
	}, nil)

	authService := newAuthService(userRepo)
	_, tokenString, err := authService.Login("stargazer", "password")
	require.NoError(t, err)

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(testConfig().JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)

	assert.Equal(t, float64(42), claims["user_id"])
	assert.Equal(t, "stargazer", claims["username"])

	exp := int64(claims["exp"].(float64))
	iat := int64(claims["iat"].(float64))
	assert.Equal(t, int64(86400), exp-iat, "token must expire 24 hours after issuance")
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService := newAuthService(new(MockUserRepository))

	signToken := func(secret string, claims jwt.MapClaims) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte(secret))
		require.NoError(t, err)
		return signed
	}

	validClaims := jwt.MapClaims{
		"user_id":  float64(7),
		"username": "stargazer",
		"exp":      time.Now().Add(time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}

	t.Run("valid token", func(t *testing.T) {
		identity, err := authService.ValidateToken(signToken("test_secret", validClaims))
		require.NoError(t, err)
		assert.Equal(t, uint(7), identity.UserID)
		assert.Equal(t, "stargazer", identity.Username)
	})

	t.Run("malformed token", func(t *testing.T) {
		identity, err := authService.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, service.ErrInvalidToken)
		assert.Nil(t, identity)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := jwt.MapClaims{
			"user_id":  float64(7),
			"username": "stargazer",
			"exp":      time.Now().Add(-time.Hour).Unix(),
			"iat":      time.Now().Add(-25 * time.Hour).Unix(),
		}
		identity, err := authService.ValidateToken(signToken("test_secret", expired))
		assert.ErrorIs(t, err, service.ErrInvalidToken)
		assert.Nil(t, identity)
	})

	t.Run("wrong secret", func(t *testing.T) {
		identity, err := authService.ValidateToken(signToken("other_secret", validClaims))
		assert.ErrorIs(t, err, service.ErrInvalidToken)
		assert.Nil(t, identity)
	})

	t.Run("missing identity claims", func(t *testing.T) {
		noIdentity := jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
			"iat": time.Now().Unix(),
		}
		identity, err := authService.ValidateToken(signToken("test_secret", noIdentity))
		assert.ErrorIs(t, err, service.ErrInvalidToken)
		assert.Nil(t, identity)
	})
}
