package services

import (
	"testing"
	"time"

	"secretsanta/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEvent(t *testing.T) {
	tests := []struct {
		name      string
		rawDate   string
		rawBudget string
		want      domain.Event
		wantErr   error
	}{
		{
			name:      "date and budget",
			rawDate:   "12/24/2024",
			rawBudget: "50",
			want:      domain.NewEvent(time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC), 50),
		},
		{
			name:      "unpadded date",
			rawDate:   "1/5/2025",
			rawBudget: "20",
			want:      domain.NewEvent(time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), 20),
		},
		{
			name:      "year one is a real date",
			rawDate:   "01/01/0001",
			rawBudget: "5",
			want:      domain.NewEvent(time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC), 5),
		},
		{
			name:      "empty date is unspecified",
			rawDate:   "  ",
			rawBudget: " 0 ",
			want:      domain.NewUndatedEvent(0),
		},
		{name: "impossible calendar date", rawDate: "02/30/2024", rawBudget: "10", wantErr: domain.ErrInvalidDate},
		{name: "wrong order", rawDate: "2024-12-24", rawBudget: "10", wantErr: domain.ErrInvalidDate},
		{name: "date checked before budget", rawDate: "13/01/2024", rawBudget: "abc", wantErr: domain.ErrInvalidDate},
		{name: "non-integer budget", rawDate: "", rawBudget: "12.50", wantErr: domain.ErrInvalidBudget},
		{name: "empty budget", rawDate: "", rawBudget: "", wantErr: domain.ErrInvalidBudget},
		{name: "negative budget", rawDate: "", rawBudget: "-5", wantErr: domain.ErrInvalidBudget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEvent(tt.rawDate, tt.rawBudget)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Date.Equal(got.Date))
			assert.Equal(t, tt.want.Budget, got.Budget)
			assert.Equal(t, tt.want.HasDate(), got.HasDate())
		})
	}
}

func TestParseEvent_Messages(t *testing.T) {
	_, err := ParseEvent("02/30/2024", "10")
	require.EqualError(t, err, "Invalid date format")
	_, err = ParseEvent("", "ten")
	require.EqualError(t, err, "Invalid budget value")
}
