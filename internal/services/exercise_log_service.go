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

// Walking sessions are converted to distance at this pace, and each km
// walked is counted as a km not driven.
const (
	WalkingSpeedKmh     = 5.0
	CarbonSavedKgPerKm  = 0.21
	walkingActivityWord = "walking"
)

// ProfileReader loads the biometrics snapshot for a user
type ProfileReader interface {
	GetProfile(ctx context.Context, userID uint) (domain.UserProfile, error)
}

type ExerciseLogService struct {
	profiles   ProfileReader
	logs       domain.LogWriter
	estimator  *calories.Estimator
	errHandler *apperrors.Handler
	clock      clock
}

func NewExerciseLogService(profiles ProfileReader, logs domain.LogWriter, estimator *calories.Estimator, loc *time.Location) *ExerciseLogService {
	return &ExerciseLogService{
		profiles:   profiles,
		logs:       logs,
		estimator:  estimator,
		errHandler: apperrors.NewHandler(logger.GetLogger()),
		clock:      newClock(loc),
	}
}

// WithClock replaces the time source
func (s *ExerciseLogService) WithClock(now func() time.Time) *ExerciseLogService {
	s.clock.now = now
	return s
}

// IsWalking reports whether an activity produces an environment entry.
// Only plain "walking" counts, ignoring case and surrounding spaces.
func IsWalking(activity string) bool {
	return strings.Join(strings.Fields(strings.ToLower(activity)), " ") == walkingActivityWord
}

// LogExercise estimates burned calories from the user's current biometrics
// and stores the session. Walking sessions also store distance and CO2
// saved; both rows are written together or not at all.
func (s *ExerciseLogService) LogExercise(ctx context.Context, userID uint, activity, durationRaw string) (*domain.ExerciseLogEntry, *domain.EnvironmentLogEntry, error) {
	activity = strings.TrimSpace(activity)
	if activity == "" {
		return nil, nil, apperrors.NewValidationError("activity is required")
	}

	minutes, ok := calories.ParseDuration(durationRaw)
	if !ok {
		s.errHandler.Handle(ctx, apperrors.NewMalformedInputError("duration", durationRaw, minutes))
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load profile: %w", err)
	}
	profile = profile.WithDefaults()

	_, met, matched := s.estimator.MatchMET(activity)
	if !matched {
		s.errHandler.Handle(ctx, apperrors.NewUnrecognizedInputError("activity", activity))
	}
	burned := s.estimator.EstimateBurned(activity, float64(minutes), calories.Biometrics{
		WeightKg: *profile.WeightKg,
		HeightCm: profile.HeightCm,
		Age:      profile.Age,
	})

	now := s.clock.Now()
	day := s.clock.Day(now)
	entry := &domain.ExerciseLogEntry{
		UserID:          userID,
		Activity:        activity,
		DurationMinutes: minutes,
		CaloriesBurned:  burned,
		MET:             met,
		Day:             day,
		LoggedAt:        now,
	}

	var env *domain.EnvironmentLogEntry
	if IsWalking(activity) {
		distance := float64(minutes) * WalkingSpeedKmh / 60
		env = &domain.EnvironmentLogEntry{
			UserID:           userID,
			DistanceWalkedKm: distance,
			CarbonSavedKg:    distance * CarbonSavedKgPerKm,
			Day:              day,
			LoggedAt:         now,
		}
	}

	if err := s.logs.InsertExercise(ctx, entry, env); err != nil {
		return nil, nil, s.errHandler.LogAndReturn(ctx, fmt.Errorf("failed to create exercise log: %w", err))
	}

	logger.WithContext(ctx).Info("Exercise logged",
		"user_id", userID,
		"activity", activity,
		"minutes", minutes,
		"met", met,
		"calories_burned", burned,
		"walking", env != nil)
	return entry, env, nil
}
