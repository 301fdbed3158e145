package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification is one turn announcement on its way to the destinations.
type Notification struct {
	// ID is the unique identifier for the notification
	ID string `json:"id"`

	// Game is the game the turn belongs to
	Game string `json:"game"`

	// Player is the player whose turn it is
	Player string `json:"player"`

	// Turn is the turn number, if the client sent one
	Turn string `json:"turn,omitempty"`

	// Text is the announcement delivered to every destination
	Text string `json:"text"`

	// CreatedDate is when the notification was created
	CreatedDate time.Time `json:"created_date"`
}

// NewNotification creates a notification for a turn event
func NewNotification(e TurnEvent) *Notification {
	return &Notification{
		ID:          uuid.NewString(),
		Game:        e.Game.String(),
		Player:      e.Player.String(),
		Turn:        e.Turn.String(),
		Text:        e.Message(),
		CreatedDate: time.Now().UTC(),
	}
}
