package handlers_test

import (
	"testing"

	"github.com/vladimiradmaev/fitness-helper/internal/bot/handlers"
)

func TestParseFoodMessage(t *testing.T) {
	t.Parallel()
	cases := []struct {
		text, name, quantity, calories string
	}{
		{"banana 2", "banana", "2", ""},
		{"pizza 1 350", "pizza", "1", "350"},
		{"green apple", "green apple", "", ""},
		{"  fried   rice 2 400 ", "fried rice", "2", "400"},
		{"7up 1", "7up", "1", ""},
		{"2", "2", "", ""},
	}
	for _, tc := range cases {
		in, err := handlers.ParseFoodMessage(tc.text)
		if err != nil {
			t.Fatalf("ParseFoodMessage(%q): %v", tc.text, err)
		}
		if in.FoodName != tc.name || in.Quantity != tc.quantity || in.ManualCalories != tc.calories {
			t.Fatalf("ParseFoodMessage(%q) = %+v", tc.text, in)
		}
	}

	if _, err := handlers.ParseFoodMessage("   "); err == nil {
		t.Fatalf("expected error for empty message")
	}
}

func TestParseExerciseMessage(t *testing.T) {
	t.Parallel()
	activity, duration, err := handlers.ParseExerciseMessage("running fast 30")
	if err != nil || activity != "running fast" || duration != "30" {
		t.Fatalf("got %q %q %v", activity, duration, err)
	}
	if _, _, err := handlers.ParseExerciseMessage("yoga"); err == nil {
		t.Fatalf("expected error without duration")
	}
}
