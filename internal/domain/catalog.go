package domain

import "fmt"

// PoultrySafetyTempF is the minimum internal temperature (°F) at which a food
// is treated as high risk and receives the extra safety margin.
const PoultrySafetyTempF = 165

// Food represents a catalog food with its reference cooking time
type Food struct {
	ID                 string `json:"id" yaml:"id"`
	Name               string `json:"name" yaml:"name"`
	Category           string `json:"category" yaml:"category"`
	Description        string `json:"description,omitempty" yaml:"description"`
	SafetyTemp         *int   `json:"safetyTemp,omitempty" yaml:"safetyTemp"` // °F, nil when no safety floor
	BaseTime           int    `json:"baseTime" yaml:"baseTime"`               // seconds
	MinimumSafeSeconds int    `json:"minimumSafeSeconds,omitempty" yaml:"minimumSafeSeconds"`
	Premium            bool   `json:"premium,omitempty" yaml:"premium"`
}

// HighRisk reports whether the food's safety temperature meets the poultry threshold.
func (f *Food) HighRisk() bool {
	return f.SafetyTemp != nil && *f.SafetyTemp >= PoultrySafetyTempF
}

// Validate checks the numeric fields the estimation engine depends on
func (f *Food) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("%w: food id is required", ErrInvalidCatalog)
	}
	if f.BaseTime <= 0 {
		return fmt.Errorf("%w: food %q base time must be positive, got %d", ErrInvalidCatalog, f.ID, f.BaseTime)
	}
	if f.MinimumSafeSeconds < 0 {
		return fmt.Errorf("%w: food %q minimum safe seconds must not be negative", ErrInvalidCatalog, f.ID)
	}
	return nil
}

// Texture is a doneness level for a food, expressed as a base time multiplier
type Texture struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description"`
	Multiplier  float64  `json:"multiplier" yaml:"multiplier"`
	Tips        []string `json:"tips,omitempty" yaml:"tips"`
}

// Validate checks that the texture can be used by the estimation engine
func (t *Texture) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("%w: texture id is required", ErrInvalidCatalog)
	}
	if t.Multiplier <= 0 {
		return fmt.Errorf("%w: texture %q multiplier must be positive, got %v", ErrInvalidCatalog, t.ID, t.Multiplier)
	}
	return nil
}

// CookingMethod describes a heat-transfer method and how it scales base time
type CookingMethod struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description,omitempty" yaml:"description"`
	Multiplier  float64 `json:"multiplier" yaml:"multiplier"`
}

// Validate checks that the method can be used by the estimation engine
func (m *CookingMethod) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("%w: cooking method id is required", ErrInvalidCatalog)
	}
	if m.Multiplier <= 0 {
		return fmt.Errorf("%w: cooking method %q multiplier must be positive, got %v", ErrInvalidCatalog, m.ID, m.Multiplier)
	}
	return nil
}

// Thickness bounds (1 = very thin, 5 = very thick)
const (
	MinThickness = 1
	MaxThickness = 5
)

// StartingTemp is the temperature category of the food before cooking
type StartingTemp string

const (
	StartingTempCold StartingTemp = "cold" // refrigerated
	StartingTempRoom StartingTemp = "room"
	StartingTempWarm StartingTemp = "warm" // pre-heated
)

// Valid reports whether t is one of the known categories.
func (t StartingTemp) Valid() bool {
	switch t {
	case StartingTempCold, StartingTempRoom, StartingTempWarm:
		return true
	}
	return false
}

// EggSize adjusts boiled egg timings
type EggSize string

const (
	EggSizeSmall      EggSize = "small"
	EggSizeMedium     EggSize = "medium"
	EggSizeLarge      EggSize = "large"
	EggSizeExtraLarge EggSize = "extra-large"
)

// EggsFoodID is the catalog id egg size adjustments apply to.
const EggsFoodID = "eggs"
