package live

// Event types sent from the server to the browser
const (
	EventStatus = "status"
	EventAudio  = "audio"
	EventStop   = "stop"
)

// Control message types sent from the browser
const (
	ControlMute       = "mute"
	ControlUnmute     = "unmute"
	ControlDisconnect = "disconnect"
)

// Event is a JSON text frame to the browser
type Event struct {
	Type string `json:"type"`

	// status
	State string `json:"state,omitempty"`
	Text  string `json:"text,omitempty"`

	// audio and stop
	ID         int64    `json:"id,omitempty"`
	StartAt    *float64 `json:"start_at,omitempty"` // seconds on the browser output clock; set on every audio event
	SampleRate int      `json:"sample_rate,omitempty"`
	Data       string   `json:"data,omitempty"` // base64 PCM16 little-endian
}

// Control is a JSON text frame from the browser
type Control struct {
	Type string `json:"type"`
	// Clock reports the browser output clock in seconds
	Clock float64 `json:"clock,omitempty"`
}
