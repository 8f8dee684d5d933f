package pipeline

import (
	"time"

	"github.com/barrios-a2i/lanesight/internal/vision"
)

// Config tunes the orchestration loop.
type Config struct {
	// Minimum spacing between analyzed captures. A capture arriving
	// inside the window is rejected before any classification happens.
	Cooldown time.Duration

	VisionTimeout   time.Duration // roster parse
	CoachingTimeout time.Duration // individual coaching agents
	ExtractTimeout  time.Duration // live screenshot extraction

	BreakerThreshold int
	// BreakerCooldown > 0 allows a probe call after a trip; zero keeps
	// tripped breakers open for the rest of the session.
	BreakerCooldown time.Duration

	PatchVersion string
	UserChampion string
	UserRole     string

	// Detector holds the frame classification thresholds.
	Detector vision.Config
}

func DefaultConfig() Config {
	return Config{
		Cooldown:         3 * time.Second,
		VisionTimeout:    10 * time.Second,
		CoachingTimeout:  20 * time.Second,
		ExtractTimeout:   8 * time.Second,
		BreakerThreshold: 3,
		PatchVersion:     "26.17",
		Detector:         vision.DefaultConfig(),
	}
}
