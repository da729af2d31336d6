package progression

import "errors"

var (
	// ErrInvalidMoodRating is returned for mood ratings outside 1-5.
	ErrInvalidMoodRating = errors.New("mood rating must be between 1 and 5")

	// ErrInvalidTimestamp is returned for malformed or future-dated
	// event days.
	ErrInvalidTimestamp = errors.New("invalid event day")

	// ErrInvalidDuration is returned for non-positive session durations.
	ErrInvalidDuration = errors.New("session duration must be positive")
)
