package api

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/vladimiradmaev/fitness-helper/internal/calories"
	"github.com/vladimiradmaev/fitness-helper/internal/domain"
	apperrors "github.com/vladimiradmaev/fitness-helper/internal/errors"
	"github.com/vladimiradmaev/fitness-helper/internal/services"
	"github.com/vladimiradmaev/fitness-helper/internal/utils"
)

// rawNumber accepts a JSON number or string and keeps the raw text, so
// malformed values reach the coercion rules instead of failing the request.
type rawNumber string

func (r *rawNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = rawNumber(s)
		return nil
	}
	*r = rawNumber(data)
	return nil
}

type foodRequest struct {
	FoodName     string    `json:"food_name"`
	Quantity     rawNumber `json:"quantity"`
	Calories     rawNumber `json:"calories"`
	PortionGrams float64   `json:"portion_grams"`
}

type exerciseRequest struct {
	Activity string    `json:"activity"`
	Duration rawNumber `json:"duration"`
}

// exerciseResponse pairs a session with its derived environment entry
type exerciseResponse struct {
	Exercise    *domain.ExerciseLogEntry    `json:"exercise"`
	Environment *domain.EnvironmentLogEntry `json:"environment,omitempty"`
}

func (s *Server) handleDashboard(c *fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return err
	}
	if _, err := s.deps.UserService.GetUser(c.UserContext(), id); err != nil {
		return err
	}

	today := s.deps.ReportSvc.Today()
	if raw := c.Query("date"); raw != "" {
		today, err = utils.ParseDay(raw, s.cfg.Location)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
		}
	}

	dashboard, err := s.deps.ReportSvc.Dashboard(c.UserContext(), id, today)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dashboard})
}

func (s *Server) handleSummary(c *fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return err
	}
	if _, err := s.deps.UserService.GetUser(c.UserContext(), id); err != nil {
		return err
	}

	total, err := s.deps.ReportSvc.TotalCaloriesConsumed(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"total_calories_consumed": total}})
}

func (s *Server) handleLogFood(c *fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return err
	}
	var payload foodRequest
	if err := c.BodyParser(&payload); err != nil {
		return apperrors.ErrInvalidInput
	}
	if _, err := s.deps.UserService.GetUser(c.UserContext(), id); err != nil {
		return err
	}

	entry, err := s.deps.FoodLogSvc.LogFood(c.UserContext(), id, services.FoodInput{
		FoodName:       payload.FoodName,
		Quantity:       string(payload.Quantity),
		ManualCalories: string(payload.Calories),
		PortionGrams:   payload.PortionGrams,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": entry})
}

func (s *Server) handleLogExercise(c *fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return err
	}
	var payload exerciseRequest
	if err := c.BodyParser(&payload); err != nil {
		return apperrors.ErrInvalidInput
	}
	if strings.TrimSpace(payload.Activity) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "activity is required")
	}
	if _, err := s.deps.UserService.GetUser(c.UserContext(), id); err != nil {
		return err
	}

	entry, env, err := s.deps.ExerciseLogSvc.LogExercise(c.UserContext(), id, payload.Activity, string(payload.Duration))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": exerciseResponse{Exercise: entry, Environment: env}})
}

func (s *Server) handleEstimateFood(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}
	quantity, _ := calories.ParseQuantity(c.Query("quantity"))

	kcal, ok := s.deps.Estimator.EstimateFoodPortion(name, quantity, c.QueryFloat("portion_grams", 0))
	return c.JSON(fiber.Map{"data": fiber.Map{
		"food_name":  name,
		"quantity":   quantity,
		"calories":   kcal,
		"recognized": ok,
	}})
}

func (s *Server) handleEstimateExercise(c *fiber.Ctx) error {
	activity := strings.TrimSpace(c.Query("activity"))
	if activity == "" {
		return fiber.NewError(fiber.StatusBadRequest, "activity is required")
	}
	minutes, _ := calories.ParseDuration(c.Query("minutes"))

	body := calories.Biometrics{WeightKg: c.QueryFloat("weight", 0)}
	if h := c.QueryFloat("height", 0); h > 0 {
		body.HeightCm = &h
	}
	if a := c.QueryInt("age", 0); a > 0 {
		body.Age = &a
	}

	pattern, met, matched := s.deps.Estimator.MatchMET(activity)
	return c.JSON(fiber.Map{"data": fiber.Map{
		"activity": activity,
		"minutes":  minutes,
		"pattern":  pattern,
		"met":      met,
		"matched":  matched,
		"calories": s.deps.Estimator.EstimateBurned(activity, float64(minutes), body),
	}})
}
