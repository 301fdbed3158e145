package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingField is returned when a turn event lacks a required value.
var ErrMissingField = errors.New("missing required field")

// Value is a webhook field. The game client sends strings, but numbers and
// booleans are accepted and kept in their JSON text form.
type Value string

// UnmarshalJSON accepts a JSON string, number, boolean or null. Null decodes
// to empty text.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errors.New("empty value")
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value(s)
	case 'n':
		*v = ""
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = Value(fmt.Sprint(b))
	case '{', '[':
		return fmt.Errorf("value must be a string, number or boolean, got %s", data)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*v = Value(n.String())
	}
	return nil
}

// String returns the value text
func (v Value) String() string {
	return string(v)
}

// TurnEvent is the Play By Cloud webhook payload.
type TurnEvent struct {
	// Game is the game name
	Game Value `json:"value1"`

	// Player is the player whose turn it is
	Player Value `json:"value2"`

	// Turn is the turn number; the client does not always send it
	Turn Value `json:"value3,omitempty"`

	// Set by UnmarshalJSON when the key is absent from the payload.
	missingGame   bool
	missingPlayer bool
}

// UnmarshalJSON decodes the payload and records which required keys were
// absent. Present keys with empty or null values are kept as empty text.
func (e *TurnEvent) UnmarshalJSON(data []byte) error {
	type payload TurnEvent
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	_, hasGame := keys["value1"]
	_, hasPlayer := keys["value2"]

	*e = TurnEvent(p)
	e.missingGame = !hasGame
	e.missingPlayer = !hasPlayer
	return nil
}

// Validate reports required keys that were absent from the decoded payload.
func (e TurnEvent) Validate() error {
	var errs []error
	if e.missingGame {
		errs = append(errs, fmt.Errorf("%w: value1", ErrMissingField))
	}
	if e.missingPlayer {
		errs = append(errs, fmt.Errorf("%w: value2", ErrMissingField))
	}
	return errors.Join(errs...)
}

// Message returns the human-readable turn announcement.
func (e TurnEvent) Message() string {
	return fmt.Sprintf("It is now %s's turn in Civ6 game %s", e.Player, e.Game)
}
