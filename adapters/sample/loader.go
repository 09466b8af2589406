// Package sample reads and writes the persisted sample format: text whose '0'
// and '1' characters, in order, are the bitstream. Every other character is
// ignored so acquisition artifacts never corrupt the logical stream.
package sample

import (
	"bufio"
	"context"
	"io"
	"os"

	"trngaudit/domain/bitstream"
	"trngaudit/domain/core"
	"trngaudit/internal"
	"trngaudit/internal/errors"
)

const readChunk = 64 << 10

// FileLoader loads samples from the local filesystem
type FileLoader struct {
	logger *internal.Logger
}

// NewFileLoader creates a loader; a nil logger discards output
func NewFileLoader(logger *internal.Logger) *FileLoader {
	if logger == nil {
		logger = internal.NopLogger()
	}
	return &FileLoader{logger: logger}
}

// Load reads the whole file at path in one pass. A missing file is reported as
// SOURCE_NOT_FOUND before anything is opened.
func (l *FileLoader) Load(ctx context.Context, path string) (bitstream.Bitstream, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return bitstream.Bitstream{}, errors.SourceNotFound(path, core.ErrSourceMissing)
		}
		return bitstream.Bitstream{}, errors.SourceUnreadable(path, err)
	}
	if info.IsDir() {
		return bitstream.Bitstream{}, errors.SourceUnreadable(path, errors.InvalidInput("path is a directory"))
	}

	f, err := os.Open(path)
	if err != nil {
		return bitstream.Bitstream{}, errors.SourceUnreadable(path, err)
	}
	defer f.Close()

	l.logger.Debug("reading sample %s (%d bytes)", path, info.Size())
	bits, err := read(ctx, f, int(info.Size()))
	if err != nil {
		return bitstream.Bitstream{}, errors.SourceUnreadable(path, err)
	}
	l.logger.Debug("kept %d binary symbols from %s", bits.Len(), path)
	return bits, nil
}

// LoadReader applies the same filter to an arbitrary reader, e.g. a request body
func LoadReader(ctx context.Context, r io.Reader) (bitstream.Bitstream, error) {
	bits, err := read(ctx, r, readChunk)
	if err != nil {
		return bitstream.Bitstream{}, &errors.AppError{Code: errors.CodeInvalidInput, Message: "failed to read sample", Cause: err}
	}
	return bits, nil
}

func read(ctx context.Context, r io.Reader, sizeHint int) (bitstream.Bitstream, error) {
	builder := bitstream.NewBuilder(sizeHint)
	br := bufio.NewReaderSize(r, readChunk)
	buf := make([]byte, readChunk)
	for {
		if err := ctx.Err(); err != nil {
			return bitstream.Bitstream{}, err
		}
		n, err := br.Read(buf)
		builder.Write(buf[:n])
		if err == io.EOF {
			break
		}
		if err != nil {
			return bitstream.Bitstream{}, err
		}
	}
	return builder.Build(), nil
}
