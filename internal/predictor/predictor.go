// Package predictor adapts a pre-trained LightGBM model for habit-risk
// inference. The model is trained offline; this package only loads the
// artifact, encodes the fixed feature vector and runs a forward pass.
package predictor

import (
	"errors"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/dmitryikh/leaves"
)

// ErrModelUnavailable means the model artifact is absent. This is a
// deployment precondition, surfaced to clients as service-unavailable.
var ErrModelUnavailable = errors.New("prediction model unavailable")

// Feature order used at training time. Metadata may override it.
var defaultFeatureNames = []string{
	"difficulty_rating",
	"importance_rating",
	"current_streak",
	"longest_streak",
	"habit_age_days",
	"time_of_day",
	"day_of_week",
	"is_weekend",
	"completion_rate_7d",
	"completion_rate_30d",
	"avg_mood",
	"avg_energy",
	"pet_level",
	"pet_happiness",
}

// Features is the model input. NewFeatures prefills every field with its
// neutral default; callers overwrite what they actually know.
type Features struct {
	DifficultyRating int    `json:"difficulty_rating"` // 1-5, default 3
	ImportanceRating int    `json:"importance_rating"` // 1-5, default 3
	CurrentStreak    int    `json:"current_streak"`    // default 0
	LongestStreak    int    `json:"longest_streak"`    // default 0
	HabitAgeDays     int    `json:"habit_age_days"`    // default 1
	TimeOfDay        string `json:"time_of_day"`       // morning/afternoon/evening/night, default morning
	DayOfWeek        int    `json:"day_of_week"`       // Monday=0..Sunday=6, defaults to the clock

	CompletionRate7d  float64 `json:"completion_rate_7d"`  // 0-1, default 0.5
	CompletionRate30d float64 `json:"completion_rate_30d"` // 0-1, default 0.5
	AvgMood           float64 `json:"avg_mood"`            // 1-5, default 3.0
	AvgEnergy         float64 `json:"avg_energy"`          // 1-5, default 3.0

	PetLevel     int `json:"pet_level"`     // default 1
	PetHappiness int `json:"pet_happiness"` // 0-100, default 50
}

func NewFeatures(now time.Time) Features {
	return Features{
		DifficultyRating:  3,
		ImportanceRating:  3,
		CurrentStreak:     0,
		LongestStreak:     0,
		HabitAgeDays:      1,
		TimeOfDay:         "morning",
		DayOfWeek:         MondayBasedWeekday(now),
		CompletionRate7d:  0.5,
		CompletionRate30d: 0.5,
		AvgMood:           3.0,
		AvgEnergy:         3.0,
		PetLevel:          1,
		PetHappiness:      50,
	}
}

// MondayBasedWeekday converts Go's Sunday-based weekday to the Monday=0
// convention the model was trained with.
func MondayBasedWeekday(t time.Time) int {
	return (int(t.UTC().Weekday()) + 6) % 7
}

func (f Features) values() map[string]float64 {
	isWeekend := 0.0
	if f.DayOfWeek >= 5 {
		isWeekend = 1.0
	}
	return map[string]float64{
		"difficulty_rating":   float64(f.DifficultyRating),
		"importance_rating":   float64(f.ImportanceRating),
		"current_streak":      float64(f.CurrentStreak),
		"longest_streak":      float64(f.LongestStreak),
		"habit_age_days":      float64(f.HabitAgeDays),
		"time_of_day":         float64(encodeTimeOfDay(f.TimeOfDay)),
		"day_of_week":         float64(f.DayOfWeek),
		"is_weekend":          isWeekend,
		"completion_rate_7d":  f.CompletionRate7d,
		"completion_rate_30d": f.CompletionRate30d,
		"avg_mood":            f.AvgMood,
		"avg_energy":          f.AvgEnergy,
		"pet_level":           float64(f.PetLevel),
		"pet_happiness":       float64(f.PetHappiness),
	}
}

func encodeTimeOfDay(s string) int {
	switch strings.ToLower(s) {
	case "afternoon":
		return 1
	case "evening":
		return 2
	case "night":
		return 3
	default:
		return 0
	}
}

type FeatureContribution struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
	Value      float64 `json:"value"`
}

// booster is the slice of the leaves ensemble the adapter needs; tests
// substitute a stub.
type booster interface {
	PredictSingle(fvals []float64, nEstimators int) float64
}

type metadata struct {
	FeatureNames      []string           `json:"feature_names"`
	FeatureImportance map[string]float64 `json:"feature_importance"`
}

// Adapter wraps the loaded model. It is constructed once at startup and
// injected into the prediction service; there is no package-level instance.
type Adapter struct {
	model        booster
	featureNames []string
	importance   map[string]float64
}

// New loads the LightGBM text artifact at modelPath and its sidecar
// metadata (same path with .txt replaced by _metadata.json). A missing
// artifact yields ErrModelUnavailable.
func New(modelPath string) (*Adapter, error) {
	if _, err := os.Stat(modelPath); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrModelUnavailable
		}
		return nil, errors.New("inspecting model artifact error: " + err.Error())
	}
	model, err := leaves.LGEnsembleFromFile(modelPath, true)
	if err != nil {
		return nil, errors.New("loading model artifact error: " + err.Error())
	}
	names, importance := loadMetadata(strings.TrimSuffix(modelPath, ".txt") + "_metadata.json")
	return &Adapter{
		model:        model,
		featureNames: names,
		importance:   importance,
	}, nil
}

func loadMetadata(path string) ([]string, map[string]float64) {
	names := defaultFeatureNames
	// The trainer records gain importances at training time; without the
	// sidecar every feature ranks equally.
	importance := make(map[string]float64, len(names))
	raw, err := os.ReadFile(path)
	if err != nil {
		for _, name := range names {
			importance[name] = 1.0
		}
		return names, importance
	}
	var meta metadata
	if err := sonic.Unmarshal(raw, &meta); err == nil {
		if len(meta.FeatureNames) > 0 {
			names = meta.FeatureNames
		}
		if len(meta.FeatureImportance) > 0 {
			return names, meta.FeatureImportance
		}
	}
	for _, name := range names {
		importance[name] = 1.0
	}
	return names, importance
}

// Predict runs a forward pass and returns the risk score (probability of
// abandoning the habit) with the top 5 training-time feature importances
// annotated with this prediction's input values.
func (a *Adapter) Predict(features Features) (float64, []FeatureContribution, error) {
	values := features.values()
	fvals := make([]float64, len(a.featureNames))
	for i, name := range a.featureNames {
		fvals[i] = values[name]
	}
	successProbability := a.model.PredictSingle(fvals, 0)
	riskScore := 1.0 - successProbability
	return riskScore, a.topFeatures(values, 5), nil
}

func (a *Adapter) topFeatures(values map[string]float64, n int) []FeatureContribution {
	ranked := make([]FeatureContribution, 0, len(a.importance))
	for feature, importance := range a.importance {
		ranked = append(ranked, FeatureContribution{
			Feature:    feature,
			Importance: importance,
			Value:      values[feature],
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Importance != ranked[j].Importance {
			return ranked[i].Importance > ranked[j].Importance
		}
		return ranked[i].Feature < ranked[j].Feature
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
