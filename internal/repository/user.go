package repository

import (
	"context"
	"errors"

	"github.com/vladimiradmaev/fitness-helper/internal/database"
	"github.com/vladimiradmaev/fitness-helper/internal/domain"
	apperrors "github.com/vladimiradmaev/fitness-helper/internal/errors"
	"gorm.io/gorm"
)

// UserRepository handles user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetOrCreateUser gets an existing user or creates a new one
func (r *UserRepository) GetOrCreateUser(ctx context.Context, telegramID int64, username, firstName, lastName string) (*domain.User, error) {
	var user database.User
	result := r.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&user)
	if result.Error == nil {
		return toDomainUser(user), nil
	}

	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewDatabaseError(result.Error)
	}

	user = database.User{
		TelegramID: telegramID,
		Username:   username,
		FirstName:  firstName,
		LastName:   lastName,
	}

	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	return toDomainUser(user), nil
}

// GetUser gets a user by primary key
func (r *UserRepository) GetUser(ctx context.Context, userID uint) (*domain.User, error) {
	var user database.User
	if err := r.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return toDomainUser(user), nil
}

// GetUserByTelegramID gets a user by their Telegram ID
func (r *UserRepository) GetUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	var user database.User
	if err := r.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&user).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return toDomainUser(user), nil
}

// ListUsers returns every registered user ordered by id
func (r *UserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []database.User
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		out = append(out, *toDomainUser(u))
	}
	return out, nil
}

// GetProfile returns the stored biometrics; missing fields stay nil
func (r *UserRepository) GetProfile(ctx context.Context, userID uint) (domain.UserProfile, error) {
	user, err := r.GetUser(ctx, userID)
	if err != nil {
		return domain.UserProfile{}, err
	}
	return user.Profile, nil
}

// UpdateProfile overwrites the user's biometrics
func (r *UserRepository) UpdateProfile(ctx context.Context, userID uint, profile domain.UserProfile) error {
	result := r.db.WithContext(ctx).Model(&database.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"weight_kg": profile.WeightKg,
		"height_cm": profile.HeightCm,
		"age":       profile.Age,
	})
	if result.Error != nil {
		return apperrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

func toDomainUser(u database.User) *domain.User {
	return &domain.User{
		ID:         u.ID,
		CreatedAt:  u.CreatedAt,
		TelegramID: u.TelegramID,
		Username:   u.Username,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Profile: domain.UserProfile{
			WeightKg: u.WeightKg,
			HeightCm: u.HeightCm,
			Age:      u.Age,
		},
	}
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.Wrap(err, apperrors.ErrorTypeNotFound, apperrors.ErrUserNotFound.Code, apperrors.ErrUserNotFound.Message)
	}
	return apperrors.NewDatabaseError(err)
}
