package domain

import "errors"

var (
	// ErrInvalidInput is returned when estimation parameters are invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidThickness is returned when thickness is outside 1-5
	ErrInvalidThickness = errors.New("thickness must be between 1 and 5")

	// ErrInvalidStartingTemp is returned for an unknown starting temperature category
	ErrInvalidStartingTemp = errors.New("starting temperature must be cold, room or warm")

	// ErrInvalidCatalog is returned when catalog data fails validation
	ErrInvalidCatalog = errors.New("invalid catalog data")

	// ErrNotFound is returned when a food, texture, method, timer or favorite does not exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition is returned when a timer command does not apply to its current state
	ErrInvalidTransition = errors.New("invalid timer transition")

	// ErrUnsafeTime is returned when a cooking time is below the food's safe minimum
	ErrUnsafeTime = errors.New("cooking time below food safety minimum")

	// ErrTooManyTimers is returned when the timer limit is reached
	ErrTooManyTimers = errors.New("too many timers")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
