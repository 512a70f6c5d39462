package media

import "github.com/GriffinCanCode/appshell/internal/shared/types"

// Kind identifies a player implementation
type Kind string

const (
	KindWeb    Kind = "web"
	KindNative Kind = "native"
	KindNoop   Kind = "noop"
)

// EventType is the kind of notification a consumer receives
type EventType string

const (
	EventAttached EventType = "attached"
	EventDetached EventType = "detached"
)

// Event is delivered to a consumer when it gains or loses the player
type Event struct {
	Type   EventType `json:"type"`
	Stream string    `json:"stream,omitempty"`
}

// Consumer is the UI element that owns playback. Consumers with the same
// ConsumerID are the same consumer.
type Consumer interface {
	ConsumerID() string
	HandleMediaEvent(Event)
}

// Settings is the media sub-object of a focus pass
type Settings struct {
	Consumer Consumer
	Stream   string
	Hide     bool
	VideoPos types.Rect
}

// DefaultSettings returns the settings a focus pass starts from
func DefaultSettings() Settings {
	return Settings{VideoPos: types.DefaultVideoPos}
}

// ConsumerID returns the consumer's id, or "" when there is none
func (s Settings) ConsumerID() string {
	if s.Consumer == nil {
		return ""
	}
	return s.Consumer.ConsumerID()
}

// Player is the uniform media player contract
type Player interface {
	Kind() Kind
	Attached() bool
	Attach()
	Detach()
	UpdateSettings(Settings)
	SkipRenderToTexture() bool
	SetSkipRenderToTexture(bool)
}
