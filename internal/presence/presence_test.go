package presence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnterLeave(t *testing.T) {
	r := New()
	assert.False(t, r.IsOnline(1))

	r.Enter(1)
	assert.True(t, r.IsOnline(1))

	r.Leave(1)
	assert.False(t, r.IsOnline(1))
}

func TestLeaveIsIdempotent(t *testing.T) {
	r := New()
	r.Leave(42)
	r.Leave(42)
	assert.False(t, r.IsOnline(42))
}

func TestClassify(t *testing.T) {
	r := New()
	r.Enter(1)
	r.Enter(2)

	online, offline := r.Classify([]uint64{1, 2, 3})
	assert.ElementsMatch(t, []uint64{1, 2}, online)
	assert.ElementsMatch(t, []uint64{3}, offline)
}
