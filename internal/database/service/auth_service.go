package service

import (
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/astroseva/backend-go/internal/config"
	"github.com/astroseva/backend-go/internal/database/models"
	"github.com/astroseva/backend-go/internal/database/repository"
)

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Signup(username, email, password, zodiacSign string) (*models.User, string, error)
	Login(username, password string) (*models.User, string, error)
	ValidateToken(tokenString string) (*Identity, error)
	GetUser(userID uint) (*models.User, error)
}

// Identity is the authenticated caller extracted from a verified token
type Identity struct {
	UserID   uint
	Username string
}

type authService struct {
	userRepo  repository.UserRepository
	jwtSecret string
	cfg       *config.Config
	logger    *slog.Logger
}

// NewAuthService creates a new authentication service instance
func NewAuthService(
	userRepo repository.UserRepository,
	cfg *config.Config,
	logger *slog.Logger,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: cfg.JWTSecret,
		cfg:       cfg,
		logger:    logger,
	}
}

func (s *authService) Signup(username, email, password, zodiacSign string) (*models.User, string, error) {
	s.logger.Info("📝 [AuthService] Signup attempt", "username", username, "email", email)

	// Check if username already exists
	existingUser, err := s.userRepo.FindByUsername(username)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		s.logger.Error("❌ [AuthService] Database error checking username", "error", err)
		return nil, "", err
	}

	if existingUser != nil {
		s.logger.Warn("⚠️ [AuthService] Username already taken", "username", username)
		return nil, "", ErrUsernameAlreadyTaken
	}

	// Check if email already exists
	existingUser, err = s.userRepo.FindByEmail(email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		s.logger.Error("❌ [AuthService] Database error checking email", "error", err)
		return nil, "", err
	}

	if existingUser != nil {
		s.logger.Warn("⚠️ [AuthService] Email already registered", "email", email)
		return nil, "", ErrEmailAlreadyExists
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to hash password", "error", err)
		return nil, "", err
	}

	// Create user; the unique indexes close the race between the checks above
	// and this insert
	user := &models.User{
		Username:   username,
		Email:      email,
		Password:   string(hashedPassword),
		ZodiacSign: zodiacSign,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			// The unique indexes don't say which field collided, so the
			// error stays neutral between username and email
			s.logger.Warn("⚠️ [AuthService] Duplicate user lost the insert race", "username", username)
			return nil, "", ErrUserAlreadyExists
		}
		s.logger.Error("❌ [AuthService] Failed to create user", "error", err)
		return nil, "", err
	}

	// Issue token
	token, err := s.generateToken(user)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to generate token", "error", err)
		return nil, "", err
	}

	s.logger.Info("✅ [AuthService] User signed up successfully", "user_id", user.ID)
	return user, token, nil
}

func (s *authService) Login(username, password string) (*models.User, string, error) {
	s.logger.Info("🔐 [AuthService] Login attempt", "username", username)

	// Find user
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Warn("⚠️ [AuthService] User not found", "username", username)
			return nil, "", ErrInvalidCredentials
		}
		s.logger.Error("❌ [AuthService] Database error", "error", err)
		return nil, "", err
	}

	// Verify password; wrong password and unknown username map to the same
	// error so the two cases are indistinguishable to the caller
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logger.Warn("⚠️ [AuthService] Invalid password", "username", username)
		return nil, "", ErrInvalidCredentials
	}

	// Issue token
	token, err := s.generateToken(user)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to generate token", "error", err)
		return nil, "", err
	}

	s.logger.Info("✅ [AuthService] User logged in successfully", "user_id", user.ID)
	return user, token, nil
}

// ValidateToken checks signature and expiry and returns the embedded identity.
// Validity is stateless: no server-side token record is consulted.
func (s *authService) ValidateToken(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}

	username, ok := claims["username"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}

	return &Identity{UserID: uint(userID), Username: username}, nil
}

func (s *authService) GetUser(userID uint) (*models.User, error) {
	return s.userRepo.FindByID(userID)
}

func (s *authService) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(time.Duration(s.cfg.TokenExpiration) * time.Second).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// Service errors
var (
	ErrUsernameAlreadyTaken = errors.New("username already taken")
	ErrEmailAlreadyExists   = errors.New("email already registered")
	ErrUserAlreadyExists    = errors.New("username or email already registered")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrInvalidToken         = errors.New("invalid or expired token")
)
