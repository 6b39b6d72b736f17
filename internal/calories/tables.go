package calories

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultMET is used when no activity pattern matches
const DefaultMET = 5.0

// Fruit is one row of the fruit table. Names lists every spelling that
// resolves to the fruit, in match order. PortionGrams of zero means the
// caller-supplied portion is used.
type Fruit struct {
	Key          string   `yaml:"key"`
	Names        []string `yaml:"names"`
	Per100g      float64  `yaml:"per_100g"`
	PortionGrams float64  `yaml:"portion_grams,omitempty"`
}

// METEntry maps an activity pattern to its metabolic equivalent
type METEntry struct {
	Pattern string  `yaml:"pattern"`
	MET     float64 `yaml:"met"`
}

// Tables holds the ordered lookup tables used by the Estimator.
// Order is significant: the first matching entry wins.
type Tables struct {
	Fruits     []Fruit    `yaml:"fruits"`
	Activities []METEntry `yaml:"activities"`
	DefaultMET float64    `yaml:"default_met"`
}

// DefaultTables returns the built-in fruit and MET tables
func DefaultTables() Tables {
	return Tables{
		Fruits: []Fruit{
			{Key: "apple", Names: []string{"apple", "apples"}, Per100g: 52, PortionGrams: 150},
			{Key: "banana", Names: []string{"banana", "bananas"}, Per100g: 89, PortionGrams: 120},
			{Key: "orange", Names: []string{"orange", "oranges"}, Per100g: 47, PortionGrams: 150},
			{Key: "mango", Names: []string{"mango", "mangos", "mangoes"}, Per100g: 60},
			{Key: "grapes", Names: []string{"grapes", "grape"}, Per100g: 69},
			{Key: "watermelon", Names: []string{"watermelon", "watermelons"}, Per100g: 30},
			{Key: "strawberry", Names: []string{"strawberry", "strawberries"}, Per100g: 32, PortionGrams: 100},
			{Key: "blueberry", Names: []string{"blueberry", "blueberries"}, Per100g: 57, PortionGrams: 100},
			{Key: "pineapple", Names: []string{"pineapple", "pineapples"}, Per100g: 50},
			{Key: "papaya", Names: []string{"papaya", "papayas"}, Per100g: 43},
			{Key: "kiwi", Names: []string{"kiwi", "kiwis", "kiwi fruit"}, Per100g: 61},
			{Key: "pear", Names: []string{"pear", "pears"}, Per100g: 57, PortionGrams: 150},
			{Key: "peach", Names: []string{"peach", "peaches"}, Per100g: 39},
			{Key: "plum", Names: []string{"plum", "plums"}, Per100g: 46},
			{Key: "cherry", Names: []string{"cherry", "cherries"}, Per100g: 50},
			{Key: "avocado", Names: []string{"avocado", "avocados"}, Per100g: 160, PortionGrams: 150},
			{Key: "guava", Names: []string{"guava", "guavas"}, Per100g: 68},
			{Key: "pomegranate", Names: []string{"pomegranate", "pomegranates"}, Per100g: 83},
			{Key: "dragon fruit", Names: []string{"dragon fruit", "dragonfruit"}, Per100g: 60},
			{Key: "lychee", Names: []string{"lychee", "lychees"}, Per100g: 66},
			{Key: "coconut", Names: []string{"coconut", "coconuts"}, Per100g: 354},
			{Key: "cranberry", Names: []string{"cranberry", "cranberries"}, Per100g: 46},
			{Key: "raspberry", Names: []string{"raspberry", "raspberries"}, Per100g: 52, PortionGrams: 100},
			{Key: "blackberry", Names: []string{"blackberry", "blackberries"}, Per100g: 43, PortionGrams: 100},
			{Key: "lemon", Names: []string{"lemon", "lemons"}, Per100g: 29},
			{Key: "lime", Names: []string{"lime", "limes"}, Per100g: 30},
			{Key: "grapefruit", Names: []string{"grapefruit", "grapefruits"}, Per100g: 42},
			{Key: "apricot", Names: []string{"apricot", "apricots"}, Per100g: 48},
			{Key: "fig", Names: []string{"fig", "figs"}, Per100g: 74},
			{Key: "date", Names: []string{"date", "dates"}, Per100g: 282},
		},
		// Specific variants precede their broad pattern.
		Activities: []METEntry{
			{Pattern: "walking fast", MET: 5.0},
			{Pattern: "walking slow", MET: 2.0},
			{Pattern: "walking", MET: 3.5},
			{Pattern: "running fast", MET: 13.0},
			{Pattern: "running slow", MET: 8.0},
			{Pattern: "running", MET: 11.0},
			{Pattern: "swimming fast", MET: 10.0},
			{Pattern: "swimming slow", MET: 6.0},
			{Pattern: "swimming", MET: 8.0},
			{Pattern: "cycling fast", MET: 10.0},
			{Pattern: "cycling slow", MET: 4.0},
			{Pattern: "cycling", MET: 8.0},
			{Pattern: "jogging", MET: 7.0},
			{Pattern: "jumping rope", MET: 12.0},
			{Pattern: "dancing", MET: 6.0},
			{Pattern: "yoga", MET: 3.0},
			{Pattern: "weight lifting", MET: 6.0},
			{Pattern: "aerobics", MET: 7.0},
			{Pattern: "tennis", MET: 7.0},
			{Pattern: "basketball", MET: 8.0},
			{Pattern: "soccer", MET: 7.0},
			{Pattern: "hiking", MET: 6.0},
			{Pattern: "climbing", MET: 8.0},
		},
		DefaultMET: DefaultMET,
	}
}

// LoadTables reads a YAML table file. An empty path yields DefaultTables.
func LoadTables(path string) (Tables, error) {
	if path == "" {
		return DefaultTables(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("failed to read tables file: %w", err)
	}

	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tables{}, fmt.Errorf("failed to parse tables file: %w", err)
	}

	defaults := DefaultTables()
	if len(t.Fruits) == 0 {
		t.Fruits = defaults.Fruits
	}
	if len(t.Activities) == 0 {
		t.Activities = defaults.Activities
	}
	if t.DefaultMET <= 0 {
		t.DefaultMET = DefaultMET
	}

	if err := t.Validate(); err != nil {
		return Tables{}, err
	}
	return t, nil
}

// Validate rejects rows that would produce negative or meaningless estimates
func (t Tables) Validate() error {
	for i, f := range t.Fruits {
		if len(f.Names) == 0 {
			return fmt.Errorf("fruit %d (%q) has no names", i, f.Key)
		}
		if f.Per100g < 0 || f.PortionGrams < 0 {
			return fmt.Errorf("fruit %q has negative values", f.Key)
		}
	}
	for i, a := range t.Activities {
		if strings.TrimSpace(a.Pattern) == "" {
			return fmt.Errorf("activity %d has an empty pattern", i)
		}
		if a.MET <= 0 {
			return fmt.Errorf("activity %q has non-positive MET", a.Pattern)
		}
	}
	return nil
}
