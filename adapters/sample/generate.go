package sample

import (
	"context"
	"io"
	"math/rand"

	"trngaudit/internal/errors"
)

const generateChunk = 4096

// Generate writes n synthetic symbols to w, each '1' with probability bias,
// drawn from a source seeded with seed. The same arguments always produce the
// same bytes. Output is written in chunks so a Writer persists a loadable
// prefix even if the run is interrupted.
func Generate(ctx context.Context, w io.Writer, n int, bias float64, seed int64) (int, error) {
	if err := ValidateGenerate(n, bias); err != nil {
		return 0, err
	}

	rng := rand.New(rand.NewSource(seed))
	buf := make([]byte, generateChunk)
	written := 0
	for written < n {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		size := min(generateChunk, n-written)
		for i := 0; i < size; i++ {
			if rng.Float64() < bias {
				buf[i] = '1'
			} else {
				buf[i] = '0'
			}
		}
		if _, err := w.Write(buf[:size]); err != nil {
			return written, errors.Wrap(err, "failed to write generated sample")
		}
		written += size
	}
	return written, nil
}

// ValidateGenerate checks Generate's arguments without writing anything
func ValidateGenerate(n int, bias float64) error {
	if n < 0 {
		return errors.InvalidInput("bit count must be >= 0")
	}
	if bias < 0 || bias > 1 {
		return errors.InvalidInput("bias must be in [0, 1]")
	}
	return nil
}
