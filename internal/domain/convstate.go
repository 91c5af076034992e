package domain

// ConversationState describes where a planning conversation currently stands.
type ConversationState string

const (
	StateAwaitingConfirmation ConversationState = "awaiting_confirmation"
	StateEditing              ConversationState = "editing"
	StateSchedulingNew        ConversationState = "scheduling_new"
	StateAskingForDate        ConversationState = "asking_for_date"
)

var validStates = map[ConversationState]bool{
	StateAwaitingConfirmation: true,
	StateEditing:              true,
	StateSchedulingNew:        true,
	StateAskingForDate:        true,
}

// Valid returns true if the state is a known value.
func (s ConversationState) Valid() bool {
	return validStates[s]
}

// ParseConversationState normalizes a raw state string. Anything outside
// the canonical set maps to StateSchedulingNew.
func ParseConversationState(s string) ConversationState {
	cs := ConversationState(s)
	if cs.Valid() {
		return cs
	}
	return StateSchedulingNew
}
