// Package testkit builds deterministic bitstreams for tests.
package testkit

import (
	"bytes"
	"context"
	"math/rand"

	"trngaudit/adapters/sample"
	"trngaudit/domain/bitstream"
)

// Alternating returns 0,1,0,1,... of length n
func Alternating(n int) bitstream.Bitstream {
	values := make([]int, n)
	for i := range values {
		values[i] = i % 2
	}
	return bitstream.FromBits(values)
}

// Constant returns n copies of bit
func Constant(n int, bit int) bitstream.Bitstream {
	values := make([]int, n)
	for i := range values {
		values[i] = bit
	}
	return bitstream.FromBits(values)
}

// Bernoulli returns n independent draws with P(1) = p from a seeded source, so
// the same arguments always produce the same stream
func Bernoulli(n int, p float64, seed int64) bitstream.Bitstream {
	return bitstream.Parse(BernoulliText(n, p, seed))
}

// BernoulliText is Bernoulli in the persisted '0'/'1' text form, byte for byte
// what the generate command writes for the same arguments
func BernoulliText(n int, p float64, seed int64) []byte {
	var buf bytes.Buffer
	if _, err := sample.Generate(context.Background(), &buf, n, p, seed); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// Sticky returns a Markov stream that repeats the previous bit with probability
// stay; stay > 0.5 produces positive serial correlation of roughly 2*stay-1
func Sticky(n int, stay float64, seed int64) bitstream.Bitstream {
	rng := rand.New(rand.NewSource(seed))
	values := make([]int, n)
	for i := range values {
		switch {
		case i == 0:
			values[i] = rng.Intn(2)
		case rng.Float64() < stay:
			values[i] = values[i-1]
		default:
			values[i] = 1 - values[i-1]
		}
	}
	return bitstream.FromBits(values)
}
