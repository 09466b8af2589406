package ports

import (
	"context"

	"trngaudit/domain/bitstream"
)

// SampleLoader materializes a persisted sample as a bitstream
type SampleLoader interface {
	Load(ctx context.Context, source string) (bitstream.Bitstream, error)
}
