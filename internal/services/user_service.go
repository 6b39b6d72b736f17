package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/vladimiradmaev/fitness-helper/internal/domain"
	apperrors "github.com/vladimiradmaev/fitness-helper/internal/errors"
)

// Accepted biometric ranges for profile input
const (
	minWeightKg = 20.0
	maxWeightKg = 400.0
	minHeightCm = 80.0
	maxHeightCm = 250.0
	minAge      = 5
	maxAge      = 120
)

type UserService struct {
	users domain.UserStore
}

func NewUserService(users domain.UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) RegisterUser(ctx context.Context, telegramID int64, username, firstName, lastName string) (*domain.User, error) {
	user, err := s.users.GetOrCreateUser(ctx, telegramID, username, firstName, lastName)
	if err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, userID uint) (*domain.User, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *UserService) GetUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	user, err := s.users.GetUserByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateProfile validates and stores biometrics. Nil fields clear the value.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, profile domain.UserProfile) error {
	if err := ValidateProfile(profile); err != nil {
		return err
	}
	if err := s.users.UpdateProfile(ctx, userID, profile); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// ValidateProfile rejects biometrics outside plausible human ranges
func ValidateProfile(p domain.UserProfile) error {
	if p.WeightKg != nil && (*p.WeightKg < minWeightKg || *p.WeightKg > maxWeightKg) {
		return apperrors.NewValidationError(fmt.Sprintf("weight must be between %.0f and %.0f kg", minWeightKg, maxWeightKg))
	}
	if p.HeightCm != nil && (*p.HeightCm < minHeightCm || *p.HeightCm > maxHeightCm) {
		return apperrors.NewValidationError(fmt.Sprintf("height must be between %.0f and %.0f cm", minHeightCm, maxHeightCm))
	}
	if p.Age != nil && (*p.Age < minAge || *p.Age > maxAge) {
		return apperrors.NewValidationError(fmt.Sprintf("age must be between %d and %d", minAge, maxAge))
	}
	return nil
}

// ParseProfile reads "weight height age" separated by spaces or commas.
// A "-" leaves that field unset.
func ParseProfile(text string) (domain.UserProfile, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool { return r == ' ' || r == ',' || r == '\t' })
	if len(fields) != 3 {
		return domain.UserProfile{}, apperrors.NewValidationError("expected weight, height and age")
	}

	var p domain.UserProfile
	if fields[0] != "-" {
		w, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return domain.UserProfile{}, apperrors.NewValidationError("weight must be a number")
		}
		p.WeightKg = &w
	}
	if fields[1] != "-" {
		h, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return domain.UserProfile{}, apperrors.NewValidationError("height must be a number")
		}
		p.HeightCm = &h
	}
	if fields[2] != "-" {
		a, err := strconv.Atoi(fields[2])
		if err != nil {
			return domain.UserProfile{}, apperrors.NewValidationError("age must be a whole number")
		}
		p.Age = &a
	}
	if err := ValidateProfile(p); err != nil {
		return domain.UserProfile{}, err
	}
	return p, nil
}
