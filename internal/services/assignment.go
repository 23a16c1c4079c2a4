package services

import (
	"math/rand/v2"

	"secretsanta/internal/domain"
)

type globalShuffler struct{}

func (globalShuffler) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

type assignmentEngine struct {
	shuffler domain.Shuffler
}

// NewAssignmentEngine returns an engine using shuffler, or the math/rand/v2 global
// source when shuffler is nil.
func NewAssignmentEngine(shuffler domain.Shuffler) domain.AssignmentEngine {
	if shuffler == nil {
		shuffler = globalShuffler{}
	}
	return &assignmentEngine{shuffler: shuffler}
}

// Assign shuffles a copy of participants and pairs each one with its successor,
// wrapping around. The result is a single cycle through every participant, in
// shuffled order.
func (e *assignmentEngine) Assign(participants []domain.Participant) ([]domain.Assignment, error) {
	n := len(participants)
	if n < 2 {
		return nil, domain.ErrInsufficientParticipants
	}

	order := make([]domain.Participant, n)
	copy(order, participants)
	e.shuffler.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })

	assignments := make([]domain.Assignment, n)
	for i := range order {
		assignments[i] = domain.Assignment{
			Giver:     order[i],
			Recipient: order[(i+1)%n],
		}
	}
	return assignments, nil
}
