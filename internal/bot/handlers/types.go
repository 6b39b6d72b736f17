package handlers

import (
	"github.com/vladimiradmaev/fitness-helper/internal/calories"
	"github.com/vladimiradmaev/fitness-helper/internal/interfaces"
)

// Dependencies holds all service dependencies for handlers
type Dependencies struct {
	UserService    interfaces.UserServiceInterface
	FoodLogSvc     interfaces.FoodLogServiceInterface
	ExerciseLogSvc interfaces.ExerciseLogServiceInterface
	ReportSvc      interfaces.ReportServiceInterface
	Estimator      *calories.Estimator
}
