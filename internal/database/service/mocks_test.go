package service_test

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/astroseva/backend-go/internal/config"
	"github.com/astroseva/backend-go/internal/database/models"
	"github.com/astroseva/backend-go/internal/database/service"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test_secret",
		TokenExpiration: 86400,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAuthService(userRepo *MockUserRepository) service.AuthService {
	return service.NewAuthService(userRepo, testConfig(), testLogger())
}

func newAppointmentService(repo *MockAppointmentRepository) service.AppointmentService {
	return service.NewAppointmentService(repo, testLogger())
}

// ==================== MOCK USER REPOSITORY ====================

// MockUserRepository implements repository.UserRepository for testing
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	if len(args) > 1 && args.Get(0) != nil {
		user.ID = args.Get(0).(uint)
	}
	return args.Error(len(args) - 1)
}

func (m *MockUserRepository) FindByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// ==================== MOCK APPOINTMENT REPOSITORY ====================

// MockAppointmentRepository implements repository.AppointmentRepository for testing
type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Create(appointment *models.Appointment) error {
	args := m.Called(appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) FindByOwner(ownerID uint) ([]models.Appointment, error) {
	args := m.Called(ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) UpdateStatus(id uuid.UUID, ownerID uint, status string) (*models.Appointment, error) {
	args := m.Called(id, ownerID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) Delete(id uuid.UUID, ownerID uint) error {
	args := m.Called(id, ownerID)
	return args.Error(0)
}
