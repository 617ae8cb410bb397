package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserIDDeterministic(t *testing.T) {
	id1 := UserID("Alice", "al")
	id2 := UserID("Alice", "al")
	assert.Equal(t, id1, id2)
	assert.NotZero(t, id1)
}

func TestUserIDDistinguishesNameAndShortName(t *testing.T) {
	a := UserID("Alice", "al")
	b := UserID("al", "Alice")
	assert.NotEqual(t, a, b, "swapping name/short_name must not collide")
}

func TestChatIDByDescriptionIsStable(t *testing.T) {
	id1 := ChatID("general", nil)
	id2 := ChatID("general", []uint64{99})
	assert.Equal(t, id1, id2, "non-empty description always wins over members")
}

func TestChatIDByMembersIgnoresOrderAndDuplicates(t *testing.T) {
	a := UserID("U1", "u1")
	b := UserID("U2", "u2")

	forward := ChatID("", []uint64{a, b})
	backward := ChatID("", []uint64{b, a})
	withDupes := ChatID("", []uint64{b, a, a, b, b})

	assert.Equal(t, forward, backward)
	assert.Equal(t, forward, withDupes)
}

func TestChatIDDistinguishesDistinctMemberSets(t *testing.T) {
	id1 := UserID("user 1", "u1")
	id2 := UserID("user 2", "u2")
	id3 := UserID("user 3", "u3")

	c12 := ChatID("", []uint64{id1, id2})
	c13 := ChatID("", []uint64{id1, id3})
	c23 := ChatID("", []uint64{id2, id3})
	c123 := ChatID("", []uint64{id1, id2, id3})

	assert.NotEqual(t, c12, c13)
	assert.NotEqual(t, c12, c23)
	assert.NotEqual(t, c12, c123)
	assert.NotEqual(t, c23, c13)
	assert.NotEqual(t, c123, c13)
	assert.NotEqual(t, c123, c23)
}

func TestChatIDFallsBackToRandomNonzero(t *testing.T) {
	id := ChatID("", nil)
	require.NotZero(t, id)
}

func TestNewPostIDNeverZero(t *testing.T) {
	for i := 0; i < 1000; i++ {
		require.NotZero(t, NewPostID())
	}
}
