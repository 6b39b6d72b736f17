package handlers

import (
	"strconv"
	"strings"

	apperrors "github.com/vladimiradmaev/fitness-helper/internal/errors"
	"github.com/vladimiradmaev/fitness-helper/internal/services"
)

// ParseFoodMessage splits "name [quantity [calories]]". Trailing numbers
// are taken as quantity and then manual calories; the rest is the name.
func ParseFoodMessage(text string) (services.FoodInput, error) {
	fields := strings.Fields(text)
	var numbers []string
	for len(fields) > 1 && len(numbers) < 2 && isNumber(fields[len(fields)-1]) {
		numbers = append([]string{fields[len(fields)-1]}, numbers...)
		fields = fields[:len(fields)-1]
	}

	in := services.FoodInput{FoodName: strings.Join(fields, " ")}
	if in.FoodName == "" {
		return services.FoodInput{}, apperrors.NewValidationError("food name is required")
	}
	if len(numbers) > 0 {
		in.Quantity = numbers[0]
	}
	if len(numbers) > 1 {
		in.ManualCalories = numbers[1]
	}
	return in, nil
}

// ParseExerciseMessage splits "activity minutes"; the last word is the duration
func ParseExerciseMessage(text string) (activity, duration string, err error) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return "", "", apperrors.NewValidationError("expected activity and minutes")
	}
	return strings.Join(fields[:len(fields)-1], " "), fields[len(fields)-1], nil
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
