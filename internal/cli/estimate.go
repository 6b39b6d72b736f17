package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vladimiradmaev/fitness-helper/internal/calories"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate calories without logging anything",
}

var (
	foodQuantity     string
	foodPortionGrams float64
)

var estimateFoodCmd = &cobra.Command{
	Use:   "food NAME...",
	Short: "Estimate calories for a fruit",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		est, err := loadEstimator()
		if err != nil {
			return err
		}
		name := strings.Join(args, " ")
		quantity, _ := calories.ParseQuantity(foodQuantity)

		kcal, ok := est.EstimateFoodPortion(name, quantity, foodPortionGrams)
		if !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: not in the fruit table, log it with manual calories\n", name)
			return nil
		}
		fruit, _ := est.MatchFruit(name)
		fmt.Fprintf(cmd.OutOrStdout(), "%s x%d: %.1f kcal (matched %s)\n", name, quantity, kcal, fruit.Key)
		return nil
	},
}

var (
	exerciseMinutes  string
	exerciseWeightKg float64
	exerciseHeightCm float64
	exerciseAge      int
)

var estimateExerciseCmd = &cobra.Command{
	Use:   "exercise ACTIVITY...",
	Short: "Estimate calories burned for an activity",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		est, err := loadEstimator()
		if err != nil {
			return err
		}
		activity := strings.Join(args, " ")
		minutes, ok := calories.ParseDuration(exerciseMinutes)
		if !ok {
			return fmt.Errorf("invalid --minutes %q", exerciseMinutes)
		}

		body := calories.Biometrics{WeightKg: exerciseWeightKg}
		if cmd.Flags().Changed("height") {
			body.HeightCm = &exerciseHeightCm
		}
		if cmd.Flags().Changed("age") {
			body.Age = &exerciseAge
		}

		pattern, met, matched := est.MatchMET(activity)
		if !matched {
			pattern = "default"
		}
		kcal := est.EstimateBurned(activity, float64(minutes), body)
		fmt.Fprintf(cmd.OutOrStdout(), "%s for %d min: %.1f kcal (%s, MET %.1f)\n", activity, minutes, kcal, pattern, met)
		return nil
	},
}

func init() {
	estimateFoodCmd.Flags().StringVarP(&foodQuantity, "quantity", "q", "1", "Number of pieces")
	estimateFoodCmd.Flags().Float64Var(&foodPortionGrams, "portion-grams", 0, "Grams per piece when the fruit has no standard portion")

	estimateExerciseCmd.Flags().StringVarP(&exerciseMinutes, "minutes", "m", "30", "Duration in minutes")
	estimateExerciseCmd.Flags().Float64Var(&exerciseWeightKg, "weight", 0, "Body weight in kg (default 70)")
	estimateExerciseCmd.Flags().Float64Var(&exerciseHeightCm, "height", 0, "Height in cm")
	estimateExerciseCmd.Flags().IntVar(&exerciseAge, "age", 0, "Age in years")

	estimateCmd.AddCommand(estimateFoodCmd)
	estimateCmd.AddCommand(estimateExerciseCmd)
}
