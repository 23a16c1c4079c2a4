package services

import (
	"strings"

	"secretsanta/internal/domain"
)

type registry struct {
	maxSlots int
}

// NewParticipantRegistry returns a registry accepting at most maxSlots input slots.
// A non-positive maxSlots falls back to domain.DefaultMaxParticipants.
func NewParticipantRegistry(maxSlots int) domain.ParticipantRegistry {
	if maxSlots <= 0 {
		maxSlots = domain.DefaultMaxParticipants
	}
	return &registry{maxSlots: maxSlots}
}

// Collect scans slots in order and returns the complete ones. Empty slots are skipped;
// the first partial or duplicate slot aborts the scan with a *domain.SlotError.
func (r *registry) Collect(slots []domain.ParticipantSlot) ([]domain.Participant, error) {
	if len(slots) > r.maxSlots {
		return nil, domain.ErrTooManyParticipants
	}

	seen := make(map[string]struct{}, len(slots))
	participants := make([]domain.Participant, 0, len(slots))
	for i, slot := range slots {
		name := strings.TrimSpace(slot.Name)
		email := strings.TrimSpace(slot.Email)
		gift := strings.TrimSpace(slot.Gift)

		if name == "" && email == "" && gift == "" {
			continue
		}
		if field := missingField(name, email, gift); field != "" {
			return nil, &domain.SlotError{Position: i + 1, Field: field}
		}

		key := strings.ToLower(email)
		if _, dup := seen[key]; dup {
			return nil, &domain.SlotError{Position: i + 1, Field: domain.FieldEmail, Duplicate: true}
		}
		seen[key] = struct{}{}

		participants = append(participants, domain.Participant{Name: name, Email: email, Gift: gift})
	}

	if len(participants) < 2 {
		return nil, domain.ErrInsufficientParticipants
	}
	return participants, nil
}

func missingField(name, email, gift string) string {
	switch {
	case name == "":
		return domain.FieldName
	case email == "":
		return domain.FieldEmail
	case gift == "":
		return domain.FieldGift
	}
	return ""
}
