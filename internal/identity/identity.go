// Package identity computes the deterministic ids used throughout migchat.
//
// User ids are derived from a user's (name, short_name) pair, chat ids from
// a chat's description or its sorted member set, and post/chat fallback ids
// are drawn at random. None of these ever produce zero: zero is the
// reserved "unassigned" sentinel in every id space.
package identity

import (
	"math/bits"
	"math/rand/v2"
	"sort"
)

// fxSeed is the multiplier used by rustc's FxHash, the non-cryptographic
// hash migchat's original server used to turn names and member lists into
// stable ids. It isn't load-bearing cryptography, just a well-mixed
// constant; reimplemented here instead of pulled in as a dependency since
// no example in the retrieval pack wraps an equivalent hash.
const fxSeed uint64 = 0x517c_c1b7_2722_0a95

// fxHash accumulates bytes the same way FxHasher64 does: 8-byte words are
// folded in via rotate-xor-multiply, with a final partial word for any
// remaining tail bytes.
type fxHash struct {
	state uint64
}

func (h *fxHash) writeWord(w uint64) {
	h.state = bits.RotateLeft64(h.state, 5) ^ w
	h.state *= fxSeed
}

func (h *fxHash) write(b []byte) {
	for len(b) >= 8 {
		h.writeWord(leUint64(b))
		b = b[8:]
	}
	if len(b) > 0 {
		var tail [8]byte
		copy(tail[:], b)
		h.writeWord(leUint64(tail[:]))
	}
}

func leUint64(b []byte) uint64 {
	var v uint64
	for i := 0; i < 8 && i < len(b); i++ {
		v |= uint64(b[i]) << (8 * i)
	}
	return v
}

func leBytes(v uint64) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
	return b
}

// UserID computes the stable id for a (name, short_name) pair. Calling it
// twice with the same inputs always returns the same id, which is what
// makes re-registration idempotent.
func UserID(name, shortName string) uint64 {
	var h fxHash
	h.write([]byte(name))
	h.write([]byte(shortName))
	return h.state
}

// ChatID computes the stable id for a chat. A non-empty description always
// wins; otherwise the (deduplicated, sorted) member ids are hashed so that
// "the dialog between A and B" converges on one id regardless of which
// member proposed it first or how desired_users was ordered. With no
// description and no members, a random nonzero id is drawn instead.
func ChatID(description string, users []uint64) uint64 {
	if description != "" {
		var h fxHash
		h.write([]byte(description))
		return h.state
	}
	if len(users) > 0 {
		sorted := append([]uint64(nil), users...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
		var h fxHash
		for i, id := range sorted {
			if i > 0 && id == sorted[i-1] {
				continue
			}
			h.write(leBytes(id))
		}
		return h.state
	}
	return NewChatID()
}

// NewPostID draws a random nonzero post id.
func NewPostID() uint64 {
	return randNonzero()
}

// NewChatID draws a random nonzero chat id, used only when a chat has
// neither a description nor any initial members.
func NewChatID() uint64 {
	return randNonzero()
}

func randNonzero() uint64 {
	v := rand.Uint64()
	for v == 0 {
		v = rand.Uint64()
	}
	return v
}
