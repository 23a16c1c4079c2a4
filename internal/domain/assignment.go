package domain

// Assignment pairs a giver with the participant they buy a gift for.
type Assignment struct {
	Giver     Participant
	Recipient Participant
}

// Shuffler permutes n elements in place through swap. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// AssignmentEngine derives the gifting cycle for a set of participants.
type AssignmentEngine interface {
	Assign(participants []Participant) ([]Assignment, error)
}
