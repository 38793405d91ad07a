package usecase

import (
	"fmt"
	"math"

	"github.com/cooktimer/backend/internal/domain"
)

// Adjustment factors applied by ComputeCookingTime
const (
	thicknessBaseFactor = 0.8  // thickness level 1
	thicknessStep       = 0.1  // per level above 1
	highRiskMargin      = 1.05 // flat 5% cushion for foods at or above the poultry threshold
)

// startingTempFactors scale cooking time by how cold the food starts
var startingTempFactors = map[domain.StartingTemp]float64{
	domain.StartingTempCold: 1.3,
	domain.StartingTempRoom: 1.0,
	domain.StartingTempWarm: 0.9,
}

// eggSizeAdjustments are seconds added to egg timings, relative to a medium egg
var eggSizeAdjustments = map[domain.EggSize]int{
	domain.EggSizeSmall:      -30,
	domain.EggSizeMedium:     0,
	domain.EggSizeLarge:      30,
	domain.EggSizeExtraLarge: 60,
}

// Servings bounds for ScaleForServings
const (
	minServings = 1
	maxServings = 20
)

// ComputeCookingTime returns the estimated cooking time in whole seconds.
//
// Factors are applied in a fixed order (texture, method, thickness, starting
// temperature, safety margin) and the result is rounded once at the end, so
// the same inputs always produce the same number of seconds.
func ComputeCookingTime(
	food *domain.Food,
	texture *domain.Texture,
	method *domain.CookingMethod,
	thickness int,
	startingTemp domain.StartingTemp,
) (int, error) {
	if food == nil || texture == nil || method == nil {
		return 0, fmt.Errorf("%w: food, texture and cooking method are required", domain.ErrInvalidInput)
	}
	if err := food.Validate(); err != nil {
		return 0, err
	}
	if err := texture.Validate(); err != nil {
		return 0, err
	}
	if err := method.Validate(); err != nil {
		return 0, err
	}
	if thickness < domain.MinThickness || thickness > domain.MaxThickness {
		return 0, fmt.Errorf("%w: got %d", domain.ErrInvalidThickness, thickness)
	}
	tempFactor, ok := startingTempFactors[startingTemp]
	if !ok {
		return 0, fmt.Errorf("%w: got %q", domain.ErrInvalidStartingTemp, startingTemp)
	}

	t := float64(food.BaseTime)
	t *= texture.Multiplier
	t *= method.Multiplier

	// The explicit conversion keeps the compiler from fusing this into an FMA.
	thicknessFactor := thicknessBaseFactor + float64(float64(thickness-1)*thicknessStep)
	t *= thicknessFactor

	t *= tempFactor

	if food.HighRisk() {
		t *= highRiskMargin
	}

	return roundHalfUp(t), nil
}

// IsFoodSafe reports whether calculatedTime meets the food's minimum safe
// cooking time. Foods without a minimum are safe at any time. The cooking
// method does not currently affect the check.
func IsFoodSafe(food *domain.Food, calculatedTime int, method *domain.CookingMethod) bool {
	if food == nil || food.MinimumSafeSeconds <= 0 {
		return true
	}
	return calculatedTime >= food.MinimumSafeSeconds
}

// EggSizeAdjustment returns the seconds to add for the given egg size.
// An empty size is treated as medium.
func EggSizeAdjustment(size domain.EggSize) (int, error) {
	if size == "" {
		return 0, nil
	}
	adj, ok := eggSizeAdjustments[size]
	if !ok {
		return 0, fmt.Errorf("%w: unknown egg size %q", domain.ErrInvalidInput, size)
	}
	return adj, nil
}

// ScaleForServings scales a cooking time for a different batch size.
// Up to double the servings scales by the square root of the ratio; larger
// batches scale logarithmically to avoid overcooking.
func ScaleForServings(seconds, baseServings, targetServings int) (int, error) {
	if baseServings < minServings || targetServings < minServings || targetServings > maxServings {
		return 0, fmt.Errorf("%w: servings must be between %d and %d", domain.ErrInvalidInput, minServings, maxServings)
	}
	if seconds < 0 {
		return 0, fmt.Errorf("%w: seconds must not be negative", domain.ErrInvalidInput)
	}

	ratio := float64(targetServings) / float64(baseServings)
	var multiplier float64
	if ratio <= 2 {
		multiplier = math.Sqrt(ratio)
	} else {
		multiplier = 1.4 + math.Log(ratio)*0.3
	}
	return roundHalfUp(float64(seconds) * multiplier), nil
}

// FormatDuration renders seconds as m:ss, or h:mm:ss from one hour up.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// FahrenheitToCelsius converts a temperature, rounded to a whole degree.
func FahrenheitToCelsius(f int) int {
	return roundHalfUp(float64(f-32) * 5 / 9)
}

// roundHalfUp rounds to the nearest integer, halves toward positive infinity
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
