package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/TBanda27/Ecommerce-bookstore/internal/authsvc/models"
)

var (
	ErrNotFound  = errors.New("user not found")
	ErrDuplicate = errors.New("duplicate key")
)

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) Create(ctx context.Context, u *models.User) error {
	if err := r.DB.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *GormRepo) Save(ctx context.Context, u *models.User) error {
	if err := r.DB.WithContext(ctx).Save(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *GormRepo) Delete(ctx context.Context, u *models.User) error {
	return r.DB.WithContext(ctx).Delete(u).Error
}

func (r *GormRepo) ByID(ctx context.Context, id uint) (*models.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *GormRepo) ByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *GormRepo) ByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.first(ctx, "username = ?", username)
}

// ByEmailOrUsername resolves the login identifier against both columns, the
// way the original login path accepts either.
func (r *GormRepo) ByEmailOrUsername(ctx context.Context, identifier string) (*models.User, error) {
	return r.first(ctx, "email = ? OR username = ?", identifier, identifier)
}

func (r *GormRepo) ByVerificationToken(ctx context.Context, token string) (*models.User, error) {
	return r.first(ctx, "verification_token = ?", token)
}

func (r *GormRepo) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", username).
		Count(&count).Error
	return count > 0, err
}

// List returns one page of users ordered by id, plus the total row count.
func (r *GormRepo) List(ctx context.Context, page, size int) ([]models.User, int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := r.DB.WithContext(ctx).
		Order("id").
		Offset(page * size).
		Limit(size).
		Find(&users).Error
	return users, total, err
}

func (r *GormRepo) first(ctx context.Context, query string, args ...any) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where(query, args...).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
