// internal/gameid/gameid_test.go
package gameid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqSource is a deterministic RandSource for tests.
type seqSource struct{ n int }

func (s *seqSource) Intn(n int) int {
	v := s.n % n
	s.n++
	return v
}

func TestGenerateShape(t *testing.T) {
	id := Generate()
	require.Len(t, id, Length)
	assert.NoError(t, Validate(id))
}

func TestGenerateUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := Generate()
		require.False(t, seen[id], "collision on %s", id)
		seen[id] = true
	}
}

func TestGenerateDeterministicWithSource(t *testing.T) {
	a := NewGenerator(&seqSource{}).Generate()
	b := NewGenerator(&seqSource{}).Generate()
	assert.Equal(t, a, b)
	assert.NoError(t, Validate(a))
}

func TestValidate(t *testing.T) {
	assert.Error(t, Validate("short"))
	assert.Error(t, Validate("iiiiiiiiiiii")) // 'i' is not in the alphabet
	assert.Error(t, Validate("UPPERCASE000"))
	assert.NoError(t, Validate("0123456789ab"))
}
