package domain

import "time"

// AdSource identifies where an announcement originated.
type AdSource string

const (
	AdSourceWebsite AdSource = "website"
	AdSourceDiscord AdSource = "discord"
)

// AdStatus enumerates announcement visibility states. Archived ads are
// retained, never physically deleted.
type AdStatus string

const (
	AdStatusActive   AdStatus = "active"
	AdStatusArchived AdStatus = "archived"
)

const (
	// AdTitleMaxLen caps stored ad titles.
	AdTitleMaxLen = 120
	// AdBodyMaxLen caps stored ad bodies.
	AdBodyMaxLen = 2000
)

// Ad is a marketplace announcement. Discord-origin ads carry the
// external message id used as the dedup key: at most one Ad exists per
// DiscordMessageID.
type Ad struct {
	ID               string
	Title            string
	Body             string
	Source           AdSource
	Status           AdStatus
	CreatedBy        string
	DiscordMessageID *string
	DiscordChannelID *string
	DiscordAuthor    *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// DiscordEvent is a raw webhook payload kept when the declared event
// kind is unrecognized. Append-only diagnostic trail.
type DiscordEvent struct {
	ID         string
	Payload    []byte
	ReceivedAt time.Time
}
