// Package wire defines the voter and listener message formats.
package wire

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed indicates a message that could not be decoded.
var ErrMalformed = errors.New("malformed message")

// MouseDelta is the voter's normalized pointer motion.
type MouseDelta struct {
	XDelta float64 `json:"xDelta"`
	YDelta float64 `json:"yDelta"`
}

// VoteMessage is the voter→relay payload.
type VoteMessage struct {
	Key         *string     `json:"key"`
	MouseButton *string     `json:"mouseButton"`
	MouseDelta  *MouseDelta `json:"mouseDelta"`
}

// Movement is a mean pointer vector in the normalized [-1,1] range.
type Movement struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RelayMessage is the relay→listener payload pushed every tick.
type RelayMessage struct {
	Button        *string   `json:"button"`
	MouseButton   *string   `json:"mouse_button"`
	MouseMovement *Movement `json:"mouse_movement"`
}

// Vote is a decoded voter selection. Empty strings mean absent.
type Vote struct {
	Key         string
	MouseButton string
	Delta       MouseDelta
	HasDelta    bool
}

// DecodeVote parses a voter message and clamps its delta to [-1,1].
func DecodeVote(data []byte) (Vote, error) {
	var msg VoteMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return Vote{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	v := Vote{
		Key:         deref(msg.Key),
		MouseButton: deref(msg.MouseButton),
	}
	if msg.MouseDelta != nil {
		v.HasDelta = true
		v.Delta = MouseDelta{
			XDelta: Clamp(msg.MouseDelta.XDelta),
			YDelta: Clamp(msg.MouseDelta.YDelta),
		}
	}
	return v, nil
}

// EncodeRelay serializes a relay message. Empty codes encode as null.
func EncodeRelay(button, mouseButton string, movement Movement) ([]byte, error) {
	return json.Marshal(RelayMessage{
		Button:        ref(button),
		MouseButton:   ref(mouseButton),
		MouseMovement: &movement,
	})
}

// DecodeRelay parses a relay message.
func DecodeRelay(data []byte) (RelayMessage, error) {
	var msg RelayMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return RelayMessage{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return msg, nil
}

// SplitCodes splits a comma-joined code set, dropping empty entries.
func SplitCodes(csv string) []string {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Clamp bounds v to [-1,1].
func Clamp(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ref(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
