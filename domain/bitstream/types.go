// Package bitstream holds the immutable binary sample under audit.
package bitstream

import (
	"trngaudit/domain/core"
)

// Bitstream is an ordered, 0-indexed sequence of 0/1 symbols. The zero value is
// an empty stream. The backing slice is never exposed, so a Bitstream can be
// shared between goroutines without synchronization.
type Bitstream struct {
	bits []byte
	ones int
}

// Transitions counts lag-1 symbol pairs (bit[i], bit[i+1])
type Transitions struct {
	ZeroZero int `json:"00" yaml:"00"`
	ZeroOne  int `json:"01" yaml:"01"`
	OneZero  int `json:"10" yaml:"10"`
	OneOne   int `json:"11" yaml:"11"`
}

// Parse keeps only the '0' and '1' characters of text; everything else is dropped
func Parse(text []byte) Bitstream {
	bits := make([]byte, 0, len(text))
	ones := 0
	for _, c := range text {
		switch c {
		case '0':
			bits = append(bits, 0)
		case '1':
			bits = append(bits, 1)
			ones++
		}
	}
	return Bitstream{bits: bits, ones: ones}
}

// FromBits builds a stream from integer symbols, dropping anything that is not 0 or 1
func FromBits(values []int) Bitstream {
	bits := make([]byte, 0, len(values))
	ones := 0
	for _, v := range values {
		switch v {
		case 0:
			bits = append(bits, 0)
		case 1:
			bits = append(bits, 1)
			ones++
		}
	}
	return Bitstream{bits: bits, ones: ones}
}

// Builder accumulates filtered symbols for loaders that read in chunks
type Builder struct {
	bits []byte
	ones int
}

// NewBuilder returns a builder with capacity hint n
func NewBuilder(n int) *Builder {
	if n < 0 {
		n = 0
	}
	return &Builder{bits: make([]byte, 0, n)}
}

// Write appends the binary characters of p and reports how many were kept
func (b *Builder) Write(p []byte) int {
	kept := 0
	for _, c := range p {
		switch c {
		case '0':
			b.bits = append(b.bits, 0)
			kept++
		case '1':
			b.bits = append(b.bits, 1)
			b.ones++
			kept++
		}
	}
	return kept
}

// Len returns the number of symbols accepted so far
func (b *Builder) Len() int {
	return len(b.bits)
}

// Build hands the accumulated symbols to a Bitstream. The builder must not be
// reused afterwards.
func (b *Builder) Build() Bitstream {
	out := Bitstream{bits: b.bits, ones: b.ones}
	b.bits = nil
	b.ones = 0
	return out
}

// Len returns N
func (s Bitstream) Len() int {
	return len(s.bits)
}

// At returns the symbol at index i
func (s Bitstream) At(i int) int {
	return int(s.bits[i])
}

// Ones returns count(1)
func (s Bitstream) Ones() int {
	return s.ones
}

// Zeros returns count(0)
func (s Bitstream) Zeros() int {
	return len(s.bits) - s.ones
}

// IsEmpty reports whether N == 0
func (s Bitstream) IsEmpty() bool {
	return len(s.bits) == 0
}

// Bits returns a copy of the symbols as integers
func (s Bitstream) Bits() []int {
	out := make([]int, len(s.bits))
	for i, b := range s.bits {
		out[i] = int(b)
	}
	return out
}

// Float64s returns a copy of the symbols as float64, for numeric libraries
func (s Bitstream) Float64s() []float64 {
	out := make([]float64, len(s.bits))
	for i, b := range s.bits {
		out[i] = float64(b)
	}
	return out
}

// Prefix returns the first n symbols (or the whole stream when n >= N)
func (s Bitstream) Prefix(n int) Bitstream {
	if n >= len(s.bits) {
		return s
	}
	if n < 0 {
		n = 0
	}
	head := s.bits[:n:n]
	ones := 0
	for _, b := range head {
		ones += int(b)
	}
	return Bitstream{bits: head, ones: ones}
}

// Transitions counts every adjacent pair in the stream
func (s Bitstream) Transitions() Transitions {
	var t Transitions
	for i := 0; i+1 < len(s.bits); i++ {
		switch s.bits[i]<<1 | s.bits[i+1] {
		case 0:
			t.ZeroZero++
		case 1:
			t.ZeroOne++
		case 2:
			t.OneZero++
		case 3:
			t.OneOne++
		}
	}
	return t
}

// Text renders the canonical '0'/'1' form of the stream
func (s Bitstream) Text() []byte {
	out := make([]byte, len(s.bits))
	for i, b := range s.bits {
		out[i] = '0' + b
	}
	return out
}

// Fingerprint hashes the canonical text of the stream
func (s Bitstream) Fingerprint() core.SampleFingerprint {
	return core.NewSampleFingerprint(s.Text())
}
