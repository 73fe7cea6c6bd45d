package repository

import (
	"context"

	"hrms/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StaffRepository interface {
	Create(ctx context.Context, staff *model.Staff) error
	Update(ctx context.Context, staff *model.Staff) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Staff, error)
	FindByEmail(ctx context.Context, email string) (*model.Staff, error)
	FindByStaffNumber(ctx context.Context, staffNumber string) (*model.Staff, error)
	List(ctx context.Context, page, limit int) ([]model.Staff, int64, error)
}

type staffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) Create(ctx context.Context, staff *model.Staff) error {
	return GetDB(ctx, r.db).Create(staff).Error
}

func (r *staffRepository) Update(ctx context.Context, staff *model.Staff) error {
	return GetDB(ctx, r.db).Save(staff).Error
}

func (r *staffRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Staff, error) {
	var staff model.Staff
	if err := GetDB(ctx, r.db).Preload("Branch").First(&staff, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepository) FindByEmail(ctx context.Context, email string) (*model.Staff, error) {
	var staff model.Staff
	if err := GetDB(ctx, r.db).First(&staff, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepository) FindByStaffNumber(ctx context.Context, staffNumber string) (*model.Staff, error) {
	var staff model.Staff
	if err := GetDB(ctx, r.db).First(&staff, "staff_number = ?", staffNumber).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepository) List(ctx context.Context, page, limit int) ([]model.Staff, int64, error) {
	var staffs []model.Staff
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Staff{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Branch").Order("staff_number asc").Offset(offset).Limit(limit).Find(&staffs).Error; err != nil {
		return nil, 0, err
	}

	return staffs, total, nil
}
