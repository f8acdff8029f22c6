package trigger

import "time"

// Kind names a cosmetic effect.
type Kind string

const (
	KindCelebration      Kind = "celebration"
	KindSecretFound      Kind = "secret-found"
	KindFlavorMessage    Kind = "flavor-message"
	KindSparkles         Kind = "sparkles"
	KindAlternatePalette Kind = "alternate-palette"
)

// EventType defines whether an effect turned on or off.
type EventType string

const (
	EventRaised  EventType = "raised"
	EventCleared EventType = "cleared"
)

// Event represents a cosmetic effect change for observers.
type Event struct {
	Type    EventType
	Kind    Kind
	Message string
	At      time.Time
}

const (
	CelebrationThreshold = 10
	HotspotThreshold     = 21
	FlavorChance         = 0.15

	CelebrationDuration = 2 * time.Second
	SecretDuration      = 3 * time.Second
	FlavorDuration      = 2500 * time.Millisecond
	SparklesDuration    = time.Second

	SecretMessage = "You found the secret code!"
)

// FlavorMessages are the affirmations picked by the primary control.
var FlavorMessages = []string{
	"go baby!",
	"focus ka muna!",
	"You've got this!",
	"go go go!",
	"galing!",
	"i love you",
}
