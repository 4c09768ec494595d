package host

import "github.com/smartmouse/smartmouse/internal/mouse"

// Message types exchanged between a Remote and an Agent.
const (
	MsgQuery = "query"
	MsgMove  = "move"
	MsgState = "state"
)

// Message is the single JSON envelope of the remote host protocol. Requests
// carry Type and, for moves, X/Y; every request is answered with a state.
type Message struct {
	Type     string      `json:"type"`
	X        int         `json:"x,omitempty"`
	Y        int         `json:"y,omitempty"`
	Width    int         `json:"w,omitempty"`
	Height   int         `json:"h,omitempty"`
	Running  bool        `json:"running,omitempty"`
	Exterior mouse.Point `json:"exterior"`
	Ts       int64       `json:"ts"`
}

func (m Message) point() mouse.Point {
	return mouse.Point{X: m.X, Y: m.Y}
}
