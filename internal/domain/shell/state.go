package shell

import (
	"fmt"
	"time"
)

// State is a lifecycle state
type State int

const (
	StateIdle State = iota
	StateLoading
	StateStarted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateLoading:
		return "Loading"
	case StateStarted:
		return "Started"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *State) UnmarshalText(text []byte) error {
	for _, st := range []State{StateIdle, StateLoading, StateStarted} {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown state %q", text)
}

// Trigger is an input to the state machine
type Trigger int

const (
	TriggerStart Trigger = iota
	TriggerLoaded
	TriggerStop
)

func (t Trigger) String() string {
	switch t {
	case TriggerStart:
		return "Start"
	case TriggerLoaded:
		return "Loaded"
	case TriggerStop:
		return "Stop"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (t Trigger) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *Trigger) UnmarshalText(text []byte) error {
	for _, tr := range []Trigger{TriggerStart, TriggerLoaded, TriggerStop} {
		if tr.String() == string(text) {
			*t = tr
			return nil
		}
	}
	return fmt.Errorf("unknown trigger %q", text)
}

// Transition describes one accepted state change
type Transition struct {
	From    State     `json:"from"`
	To      State     `json:"to"`
	Trigger Trigger   `json:"trigger"`
	AppID   string    `json:"app_id,omitempty"`
	App     string    `json:"app,omitempty"`
	Faces   int       `json:"faces"`
	At      time.Time `json:"at"`
}
