package domain

// DefaultMaxParticipants is the number of input slots offered to an organizer.
const DefaultMaxParticipants = 8

// ParticipantSlot is one raw row of organizer input. Any field may be empty.
// swagger:model ParticipantSlot
type ParticipantSlot struct {
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
	Gift  string `json:"gift" yaml:"gift"`
}

// Participant is a validated slot: every field is non-empty and Email is unique within a draw.
type Participant struct {
	Name  string
	Email string
	Gift  string
}

// ParticipantRegistry turns raw slots into the participants of a draw.
type ParticipantRegistry interface {
	Collect(slots []ParticipantSlot) ([]Participant, error)
}
