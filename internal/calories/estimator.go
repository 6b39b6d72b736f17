package calories

import (
	"math"
	"strings"
)

const (
	defaultPortionGrams = 100.0
	defaultWeightKg     = 70.0

	overweightBMI  = 25.0
	underweightBMI = 18.5
)

// Biometrics is the body snapshot used to scale burned calories.
// HeightCm and Age are optional; the BMI correction needs both.
type Biometrics struct {
	WeightKg float64
	HeightCm *float64
	Age      *int
}

// Estimator turns food names and activities into calorie figures using
// immutable lookup tables. It is safe for concurrent use.
type Estimator struct {
	fruits     []Fruit
	activities []METEntry
	defaultMET float64
}

// New builds an Estimator from tables. Names and patterns are normalized
// once here.
func New(t Tables) *Estimator {
	e := &Estimator{
		fruits:     make([]Fruit, 0, len(t.Fruits)),
		activities: make([]METEntry, 0, len(t.Activities)),
		defaultMET: t.DefaultMET,
	}
	if e.defaultMET <= 0 {
		e.defaultMET = DefaultMET
	}
	for _, f := range t.Fruits {
		names := make([]string, 0, len(f.Names))
		for _, n := range f.Names {
			if n = normalize(n); n != "" {
				names = append(names, n)
			}
		}
		f.Names = names
		e.fruits = append(e.fruits, f)
	}
	for _, a := range t.Activities {
		a.Pattern = normalize(a.Pattern)
		e.activities = append(e.activities, a)
	}
	return e
}

// NewDefault builds an Estimator over DefaultTables
func NewDefault() *Estimator {
	return New(DefaultTables())
}

// EstimateFood returns calories for quantity units of the named food.
// ok is false when the name matches nothing in the fruit table.
func (e *Estimator) EstimateFood(name string, quantity int) (float64, bool) {
	return e.EstimateFoodPortion(name, quantity, defaultPortionGrams)
}

// EstimateFoodPortion is EstimateFood with an explicit portion size in grams
// for fruits that have no fixed portion tier.
func (e *Estimator) EstimateFoodPortion(name string, quantity int, portionGrams float64) (float64, bool) {
	fruit, ok := e.MatchFruit(name)
	if !ok {
		return 0, false
	}
	if quantity < 1 {
		quantity = 1
	}
	if portionGrams <= 0 {
		portionGrams = defaultPortionGrams
	}

	portion := portionGrams
	if fruit.PortionGrams > 0 {
		portion = fruit.PortionGrams
	}

	perUnit := round1(fruit.Per100g * portion / 100)
	return round1(perUnit * float64(quantity)), true
}

// MatchFruit resolves a food name to a fruit row: exact name first, then
// the first listed name contained in the input, in table order.
func (e *Estimator) MatchFruit(name string) (Fruit, bool) {
	n := normalize(name)
	if n == "" {
		return Fruit{}, false
	}
	for _, f := range e.fruits {
		for _, candidate := range f.Names {
			if candidate == n {
				return f, true
			}
		}
	}
	for _, f := range e.fruits {
		for _, candidate := range f.Names {
			if strings.Contains(n, candidate) {
				return f, true
			}
		}
	}
	return Fruit{}, false
}

// MatchMET returns the first activity pattern contained in activity.
// When nothing matches, met is the default and ok is false.
func (e *Estimator) MatchMET(activity string) (pattern string, met float64, ok bool) {
	n := normalize(activity)
	if n != "" {
		for _, a := range e.activities {
			if strings.Contains(n, a.Pattern) {
				return a.Pattern, a.MET, true
			}
		}
	}
	return "", e.defaultMET, false
}

// EstimateBurned returns calories burned for minutes of activity.
// base = MET * weight * minutes / 60, scaled by 5% up or down when the
// body mass index is outside the normal range.
func (e *Estimator) EstimateBurned(activity string, minutes float64, body Biometrics) float64 {
	if minutes < 0 {
		minutes = 0
	}
	weight := body.WeightKg
	if weight <= 0 {
		weight = defaultWeightKg
	}

	_, met, _ := e.MatchMET(activity)
	burned := met * weight * minutes / 60

	if body.HeightCm != nil && body.Age != nil && *body.HeightCm > 0 {
		heightM := *body.HeightCm / 100
		bmi := weight / (heightM * heightM)
		// Integer percentages keep x.x5 results from drifting below the rounding edge.
		switch {
		case bmi > overweightBMI:
			burned = burned * 105 / 100
		case bmi < underweightBMI:
			burned = burned * 95 / 100
		}
	}

	return round1(burned)
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
