package client

import "github.com/hassankh203/IslamicSoccerClub/internal/models"

// Mode selects which conversation the chat widget shows.
type Mode string

const (
	ModeGroup   Mode = "group"
	ModePrivate Mode = "private"
)

// ChatView is the state behind one open chat widget: the selected
// conversation plus the unread tracker. Like Tracker, it is owned by a
// single goroutine.
type ChatView struct {
	Tracker

	mode        Mode
	counterpart string
}

// NewChatView starts in group mode with the widget closed.
func NewChatView() *ChatView {
	return &ChatView{
		Tracker: *NewTracker(),
		mode:    ModeGroup,
	}
}

// SelectGroup switches to the broadcast room. The buffer is cleared so a
// fresh backlog can load.
func (v *ChatView) SelectGroup() {
	v.mode = ModeGroup
	v.counterpart = ""
	v.messages = nil
}

// SelectPrivate switches to the one-to-one conversation with counterpart.
func (v *ChatView) SelectPrivate(counterpart string) {
	v.mode = ModePrivate
	v.counterpart = counterpart
	v.messages = nil
}

func (v *ChatView) Mode() Mode {
	return v.mode
}

// Counterpart is the selected private participant; empty in group mode.
func (v *ChatView) Counterpart() string {
	return v.counterpart
}

// Receiver is the receiver field to put on an outgoing message for the
// current selection.
func (v *ChatView) Receiver() string {
	if v.mode == ModePrivate {
		return v.counterpart
	}
	return models.GroupRoom
}
