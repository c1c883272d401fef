package admin

import (
	"Treasury-System-Backend/domain"
	"Treasury-System-Backend/entities"
	"Treasury-System-Backend/internal/utils"
	"Treasury-System-Backend/pkg/jwt"
	"context"
	"errors"
	"unicode"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	AdminService interface {
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		GetAdmins(ctx context.Context) ([]domain.AdminResponse, error)
		CreateAdmin(ctx context.Context, req domain.CreateAdminRequest) (domain.AdminResponse, error)
		DeleteAdmin(ctx context.Context, id string) error
		EnsureDefaultAdmin(ctx context.Context) error
	}

	adminService struct {
		adminRepository AdminRepository
		jwtService      jwt.JWTService
	}
)

func NewAdminService(adminRepository AdminRepository, jwtService jwt.JWTService) AdminService {
	return &adminService{
		adminRepository: adminRepository,
		jwtService:      jwtService,
	}
}

// ValidatePasswordStrength enforces the account policy: at least 8
// characters with an uppercase letter, a lowercase letter, a digit and
// a special character.
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return domain.ErrWeakPassword
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return domain.ErrWeakPassword
	}
	return nil
}

func (s *adminService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return domain.LoginResponse{}, domain.ErrCredentialsMissing
	}

	admin, err := s.adminRepository.GetAdminByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.HashedPassword), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	token := s.jwtService.GenerateTokenAdmin(admin.ID.String(), admin.Username, admin.IsSuperuser)

	return domain.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Username:    admin.Username,
		IsSuperuser: admin.IsSuperuser,
	}, nil
}

func (s *adminService) GetAdmins(ctx context.Context) ([]domain.AdminResponse, error) {
	admins, err := s.adminRepository.GetAdmins(ctx)
	if err != nil {
		return nil, err
	}

	response := make([]domain.AdminResponse, 0, len(admins))
	for _, a := range admins {
		response = append(response, domain.AdminResponse{
			ID:          a.ID.String(),
			Username:    a.Username,
			IsSuperuser: a.IsSuperuser,
			CreatedAt:   domain.CreatedAtFormat(a.CreatedAt),
		})
	}
	return response, nil
}

func (s *adminService) CreateAdmin(ctx context.Context, req domain.CreateAdminRequest) (domain.AdminResponse, error) {
	if req.Username == "" || req.Password == "" {
		return domain.AdminResponse{}, domain.ErrCredentialsMissing
	}

	if err := ValidatePasswordStrength(req.Password); err != nil {
		return domain.AdminResponse{}, err
	}

	_, err := s.adminRepository.GetAdminByUsername(ctx, req.Username)
	if err == nil {
		return domain.AdminResponse{}, domain.ErrUsernameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.AdminResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.AdminResponse{}, err
	}

	admin := &entities.Admin{
		ID:             uuid.New(),
		Username:       req.Username,
		HashedPassword: string(hashed),
		IsSuperuser:    req.IsSuperuser,
	}

	if err := s.adminRepository.CreateAdmin(ctx, admin); err != nil {
		return domain.AdminResponse{}, err
	}

	return domain.AdminResponse{
		ID:          admin.ID.String(),
		Username:    admin.Username,
		IsSuperuser: admin.IsSuperuser,
		CreatedAt:   domain.CreatedAtFormat(admin.CreatedAt),
	}, nil
}

func (s *adminService) DeleteAdmin(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrParseUUID
	}

	if _, err := s.adminRepository.GetAdminByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrAdminNotFound
		}
		return err
	}

	return s.adminRepository.DeleteAdmin(ctx, id)
}

// EnsureDefaultAdmin seeds the initial superuser account so a fresh
// deployment can be logged into.
func (s *adminService) EnsureDefaultAdmin(ctx context.Context) error {
	_, err := s.adminRepository.GetAdminByUsername(ctx, "admin")
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	password := utils.GetConfig("DEFAULT_ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &entities.Admin{
		ID:             uuid.New(),
		Username:       "admin",
		HashedPassword: string(hashed),
		IsSuperuser:    true,
	}

	if err := s.adminRepository.CreateAdmin(ctx, admin); err != nil {
		return err
	}

	log.Info("Default superuser created: username=admin")
	return nil
}
