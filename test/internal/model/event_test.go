package model

import (
	"testing"

	"event-gallery-api/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestEvent_HasCapacityFor(t *testing.T) {
	limit := func(n int) *int { return &n }

	tests := []struct {
		name            string
		maxParticipants *int
		current         int
		n               int
		want            bool
	}{
		{"no limit always has room", nil, 1000, 1, true},
		{"room for one more", limit(10), 9, 1, true},
		{"exactly full", limit(10), 10, 1, false},
		{"last seat", limit(10), 9, 2, false},
		{"zero joiners on a full event", limit(10), 10, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := &model.Event{
				MaxParticipants:  tt.maxParticipants,
				ParticipantCount: tt.current,
			}
			assert.Equal(t, tt.want, event.HasCapacityFor(tt.n))
		})
	}
}
