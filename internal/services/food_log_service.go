package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vladimiradmaev/fitness-helper/internal/calories"
	"github.com/vladimiradmaev/fitness-helper/internal/domain"
	apperrors "github.com/vladimiradmaev/fitness-helper/internal/errors"
	"github.com/vladimiradmaev/fitness-helper/internal/logger"
)

// FoodInput is a raw food log request as typed by a user
type FoodInput struct {
	FoodName       string
	Quantity       string
	ManualCalories string
	PortionGrams   float64
}

type FoodLogService struct {
	logs       domain.LogWriter
	estimator  *calories.Estimator
	errHandler *apperrors.Handler
	clock      clock
}

func NewFoodLogService(logs domain.LogWriter, estimator *calories.Estimator, loc *time.Location) *FoodLogService {
	return &FoodLogService{
		logs:       logs,
		estimator:  estimator,
		errHandler: apperrors.NewHandler(logger.GetLogger()),
		clock:      newClock(loc),
	}
}

// WithClock replaces the time source
func (s *FoodLogService) WithClock(now func() time.Time) *FoodLogService {
	s.clock.now = now
	return s
}

// LogFood estimates calories for the input and stores the entry. The fruit
// table wins over a manual value; unknown foods without one log 0 kcal.
func (s *FoodLogService) LogFood(ctx context.Context, userID uint, in FoodInput) (*domain.FoodLogEntry, error) {
	name := strings.TrimSpace(in.FoodName)
	if name == "" {
		return nil, apperrors.NewValidationError("food name is required")
	}

	quantity, ok := calories.ParseQuantity(in.Quantity)
	if !ok && strings.TrimSpace(in.Quantity) != "" {
		s.errHandler.Handle(ctx, apperrors.NewMalformedInputError("quantity", in.Quantity, quantity))
	}

	kcal, estimated := s.estimator.EstimateFoodPortion(name, quantity, in.PortionGrams)
	if !estimated {
		s.errHandler.Handle(ctx, apperrors.NewUnrecognizedInputError("food", name))
		manual, ok := calories.ParseCalories(in.ManualCalories)
		if !ok && strings.TrimSpace(in.ManualCalories) != "" {
			s.errHandler.Handle(ctx, apperrors.NewMalformedInputError("calories", in.ManualCalories, manual))
		}
		kcal = manual
	}

	now := s.clock.Now()
	entry := &domain.FoodLogEntry{
		UserID:    userID,
		FoodName:  name,
		Quantity:  quantity,
		Calories:  kcal,
		Estimated: estimated,
		Day:       s.clock.Day(now),
		LoggedAt:  now,
	}
	if err := s.logs.InsertFood(ctx, entry); err != nil {
		return nil, s.errHandler.LogAndReturn(ctx, fmt.Errorf("failed to create food log: %w", err))
	}

	logger.WithContext(ctx).Info("Food logged",
		"user_id", userID,
		"food", name,
		"quantity", quantity,
		"calories", kcal,
		"estimated", estimated)
	return entry, nil
}
