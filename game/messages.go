package game

import (
	"fmt"
	"strings"

	"github.com/pthm-cable/evac/systems"
)

// MsgPriority controls the color of a message in the combat log.
type MsgPriority uint8

const (
	MsgInfo MsgPriority = iota
	MsgWarning
	MsgCritical
)

// Message is a single entry in the combat log.
type Message struct {
	Text     string
	Priority MsgPriority
}

// MessageLog is a bounded FIFO of messages.
type MessageLog struct {
	Messages []Message
	maxSize  int
}

// NewMessageLog creates a log that keeps the most recent maxSize messages.
func NewMessageLog(maxSize int) *MessageLog {
	if maxSize < 1 {
		maxSize = 1
	}
	return &MessageLog{
		Messages: make([]Message, 0, maxSize),
		maxSize:  maxSize,
	}
}

// Add appends a message, evicting the oldest if full.
func (l *MessageLog) Add(text string, priority MsgPriority) {
	msg := Message{Text: text, Priority: priority}
	if len(l.Messages) >= l.maxSize {
		copy(l.Messages, l.Messages[1:])
		l.Messages[len(l.Messages)-1] = msg
		return
	}
	l.Messages = append(l.Messages, msg)
}

// Clear empties the log.
func (l *MessageLog) Clear() {
	l.Messages = l.Messages[:0]
}

// logEvent turns the events a player should hear about into log lines.
func (st *ShipState) logEvent(e systems.Event) {
	name := func(idx int) string {
		return strings.ToUpper(st.Slots[idx].Type.String())
	}
	switch e.Type {
	case systems.EventSlotDestroyed:
		st.Messages.Add(fmt.Sprintf("%s destroyed by %s", name(e.Slot), e.Cause), MsgCritical)
	case systems.EventPassengersLost:
		if e.Cause == systems.CauseOxygen {
			st.Messages.Add("A passenger suffocated", MsgCritical)
		} else {
			st.Messages.Add(fmt.Sprintf("%d passengers killed", int(e.Amount)), MsgCritical)
		}
	case systems.EventAutoCool:
		st.Messages.Add(fmt.Sprintf("%s overheated, cooling down", name(e.Slot)), MsgWarning)
	case systems.EventAutoOff:
		st.Messages.Add(fmt.Sprintf("Power overload, %s shut off", name(e.Slot)), MsgWarning)
	case systems.EventWaveWon:
		st.Messages.Add("Encounter won!", MsgInfo)
	case systems.EventShipLost:
		st.Messages.Add("Ship lost with all hands", MsgCritical)
	}
}
