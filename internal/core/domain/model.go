package domain

import (
	"fmt"
	"time"
)

type Actor struct {
	ID            string
	Name          string
	Mention       string
	Bot           bool
	Administrator bool
}

type Channel struct {
	ID      string
	Name    string
	Mention string
}

type State string

const (
	Received     State = "received"
	Acknowledged State = "acknowledged"
	Processing   State = "processing"
	Replied      State = "replied"
	Failed       State = "failed"
)

var transitions = map[State][]State{
	Received:     {Acknowledged, Failed},
	Acknowledged: {Processing, Failed},
	Processing:   {Replied, Failed},
}

// Invocation is one inbound command event. It only carries plain values; the
// platform adapter keeps whatever it needs to answer in ID, AppID and Token.
type Invocation struct {
	ID        string
	AppID     string
	Token     string
	Command   string
	GuildID   string
	ChannelID string
	Actor     Actor
	Options   map[string]any
	Received  time.Time

	state State
}

func (i *Invocation) State() State {
	if i.state == "" {
		return Received
	}
	return i.state
}

// Transition moves the invocation to the next state. Terminal states accept no
// further moves, so a second reply is rejected.
func (i *Invocation) Transition(to State) error {
	from := i.State()
	for _, allowed := range transitions[from] {
		if allowed == to {
			i.state = to
			return nil
		}
	}

	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

func (i *Invocation) Done() bool {
	s := i.State()
	return s == Replied || s == Failed
}
