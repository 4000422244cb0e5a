package invite_test

import (
	"strings"
	"testing"

	"event-gallery-api/internal/invite"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := invite.Generate()

		assert.Len(t, code, invite.Length)
		for _, c := range code {
			assert.True(t, strings.ContainsRune(invite.Alphabet, c), "unexpected character %q in %s", c, code)
		}
		assert.True(t, invite.IsWellFormed(code))
	}
}

func TestIsWellFormed(t *testing.T) {
	tests := []struct {
		name string
		code string
		want bool
	}{
		{"valid uppercase and digits", "AB12CD34", true},
		{"all letters", "ABCDEFGH", true},
		{"all digits", "01234567", true},
		{"too short", "ABC123", false},
		{"too long", "ABC123456", false},
		{"lowercase rejected", "ab12cd34", false},
		{"symbol rejected", "AB12CD3!", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, invite.IsWellFormed(tt.code))
		})
	}
}
