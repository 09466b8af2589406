package bitstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_DropsNonBinaryCharacters(t *testing.T) {
	s := Parse([]byte("0 1\n0\t1"))

	require.Equal(t, 4, s.Len())
	assert.Equal(t, []int{0, 1, 0, 1}, s.Bits())
	assert.Equal(t, 2, s.Ones())
	assert.Equal(t, 2, s.Zeros())
}

func TestParse_NoBinaryCharacters(t *testing.T) {
	s := Parse([]byte("abc\r\n\x00 2345"))

	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0, s.Ones())
	assert.Empty(t, s.Bits())
}

func TestFromBits_DropsOutOfRangeValues(t *testing.T) {
	s := FromBits([]int{1, 2, 0, -1, 1})

	assert.Equal(t, []int{1, 0, 1}, s.Bits())
	assert.Equal(t, 2, s.Ones())
}

func TestBits_ReturnsCopy(t *testing.T) {
	s := Parse([]byte("0101"))
	bits := s.Bits()
	bits[0] = 1

	assert.Equal(t, 0, s.At(0), "mutating the copy must not change the stream")
}

func TestBuilder_ChunkedWrites(t *testing.T) {
	b := NewBuilder(8)
	assert.Equal(t, 3, b.Write([]byte("01\n1")))
	assert.Equal(t, 2, b.Write([]byte("x0 0")))

	s := b.Build()
	assert.Equal(t, []int{0, 1, 1, 0, 0}, s.Bits())
	assert.Equal(t, 2, s.Ones())
}

func TestPrefix(t *testing.T) {
	s := Parse([]byte("1101001"))

	p := s.Prefix(3)
	assert.Equal(t, []int{1, 1, 0}, p.Bits())
	assert.Equal(t, 2, p.Ones())

	assert.Equal(t, s.Len(), s.Prefix(100).Len())
	assert.Equal(t, 0, s.Prefix(-1).Len())
}

func TestTransitions(t *testing.T) {
	s := Parse([]byte("0011010"))
	tr := s.Transitions()

	assert.Equal(t, Transitions{ZeroZero: 1, ZeroOne: 2, OneZero: 2, OneOne: 1}, tr)
	assert.Equal(t, Transitions{}, Parse([]byte("1")).Transitions())
}

func TestTextAndFingerprint(t *testing.T) {
	a := Parse([]byte("01 01\n"))
	b := Parse([]byte("0101"))

	assert.Equal(t, "0101", string(a.Text()))
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}
