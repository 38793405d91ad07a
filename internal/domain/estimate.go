package domain

import "time"

// EstimateRequest represents a cooking time estimation request
type EstimateRequest struct {
	FoodID       string       `json:"foodId" binding:"required"`
	TextureID    string       `json:"textureId" binding:"required"`
	MethodID     string       `json:"methodId" binding:"required"`
	Thickness    int          `json:"thickness" binding:"required"`
	StartingTemp StartingTemp `json:"startingTemp" binding:"required"`

	// Optional adjustments
	EggSize        EggSize `json:"eggSize,omitempty"`
	BaseServings   int     `json:"baseServings,omitempty"`
	TargetServings int     `json:"targetServings,omitempty"`
}

// CookingEstimate is the result of one estimation. It is never mutated after creation.
type CookingEstimate struct {
	FoodID             string       `json:"foodId"`
	TextureID          string       `json:"textureId"`
	MethodID           string       `json:"methodId"`
	Thickness          int          `json:"thickness"`
	StartingTemp       StartingTemp `json:"startingTemp"`
	BaseSeconds        int          `json:"baseSeconds"` // engine output before adjustments
	Seconds            int          `json:"seconds"`
	Formatted          string       `json:"formatted"`
	Safe               bool         `json:"safe"`
	MinimumSafeSeconds int          `json:"minimumSafeSeconds,omitempty"`
	SafetyTempF        *int         `json:"safetyTempF,omitempty"`
	SafetyTempC        *int         `json:"safetyTempC,omitempty"`
	Source             string       `json:"source"` // "Engine" or "Cache"
	ComputedAt         time.Time    `json:"computedAt"`
}

// SafetyVerdict is the result of a standalone safety check
type SafetyVerdict struct {
	FoodID             string `json:"foodId"`
	Seconds            int    `json:"seconds"`
	Safe               bool   `json:"safe"`
	MinimumSafeSeconds int    `json:"minimumSafeSeconds,omitempty"`
}
