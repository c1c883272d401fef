package admin

import (
	"Treasury-System-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	AdminRepository interface {
		CreateAdmin(ctx context.Context, admin *entities.Admin) error
		GetAdminByUsername(ctx context.Context, username string) (*entities.Admin, error)
		GetAdminByID(ctx context.Context, id string) (*entities.Admin, error)
		GetAdmins(ctx context.Context) ([]*entities.Admin, error)
		DeleteAdmin(ctx context.Context, id string) error
	}

	adminRepository struct {
		db *gorm.DB
	}
)

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) CreateAdmin(ctx context.Context, admin *entities.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *adminRepository) GetAdminByUsername(ctx context.Context, username string) (*entities.Admin, error) {
	var admin entities.Admin
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) GetAdminByID(ctx context.Context, id string) (*entities.Admin, error) {
	var admin entities.Admin
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) GetAdmins(ctx context.Context) ([]*entities.Admin, error) {
	var admins []*entities.Admin
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

func (r *adminRepository) DeleteAdmin(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Admin{}).Error
}
