package archecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// go test -run ^TestSignatureContains$ . -count 1
func TestSignatureContains(t *testing.T) {
	s := Signature{1, 3, 5, 8}
	for _, tc := range []struct {
		sub  Signature
		want bool
	}{
		{sub: nil, want: true},
		{sub: Signature{1}, want: true},
		{sub: Signature{3, 8}, want: true},
		{sub: Signature{1, 3, 5, 8}, want: true},
		{sub: Signature{2}, want: false},
		{sub: Signature{5, 9}, want: false},
		{sub: Signature{0, 1, 3, 5, 8}, want: false},
	} {
		assert.Equal(t, tc.want, s.Contains(tc.sub), "%v in %v", tc.sub, s)
	}
	assert.True(t, s.Has(5))
	assert.False(t, s.Has(4))
	assert.Equal(t, 2, s.indexOf(5))
	assert.Equal(t, -1, s.indexOf(4))
}

// go test -run ^TestSignatureSetOps$ . -count 1
func TestSignatureSetOps(t *testing.T) {
	s := Signature{2, 4}

	assert.Equal(t, Signature{1, 2, 4, 6}, s.union(nil, []ComponentID{6, 1, 2}))
	assert.Equal(t, Signature{4}, s.difference(nil, []ComponentID{2, 9}))
	assert.Empty(t, s.difference(nil, []ComponentID{4, 2}))

	// union must not write through a shared backing array
	buf := make(Signature, 0, 8)
	u := s.union(buf, []ComponentID{3})
	assert.Equal(t, Signature{2, 3, 4}, u)
	assert.Equal(t, Signature{2, 4}, s)
}

// go test -run ^TestDuplicate$ . -count 1
func TestDuplicate(t *testing.T) {
	_, ok := duplicate([]ComponentID{1, 2, 3})
	assert.False(t, ok)
	id, ok := duplicate([]ComponentID{4, 2, 4})
	assert.True(t, ok)
	assert.Equal(t, ComponentID(4), id)
}

// go test -run ^TestEntityPacking$ . -count 1
func TestEntityPacking(t *testing.T) {
	e := NewEntity(42, 7)
	assert.Equal(t, uint32(42), e.Index())
	assert.Equal(t, uint32(7), e.Version())
	assert.Equal(t, "Entity(42v7)", e.String())
	assert.Equal(t, "Entity(null)", Null.String())

	r := newEntityRegistry(4)
	assert.False(t, r.isValid(Null))
	assert.False(t, r.isValid(e))
}
