package sample

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trngaudit/domain/core"
	"trngaudit/internal/errors"
)

func writeSample(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFileLoader_FiltersNonBinary(t *testing.T) {
	path := writeSample(t, "0 1\n0\t1")

	bits, err := NewFileLoader(nil).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 0, 1}, bits.Bits())
}

func TestFileLoader_EmptySampleIsNotAnError(t *testing.T) {
	path := writeSample(t, "\n\n  abc \r\n")

	bits, err := NewFileLoader(nil).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 0, bits.Len())
}

func TestFileLoader_MissingSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quantum_data.txt")

	_, err := NewFileLoader(nil).Load(context.Background(), path)
	require.Error(t, err)
	assert.Equal(t, errors.CodeSourceNotFound, errors.GetCode(err))
	assert.True(t, core.IsSourceMissing(err))
}

func TestFileLoader_Directory(t *testing.T) {
	_, err := NewFileLoader(nil).Load(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.Equal(t, errors.CodeSourceUnreadable, errors.GetCode(err))
}

func TestFileLoader_LargeSampleAcrossChunks(t *testing.T) {
	const n = 3*readChunk + 17
	content := strings.Repeat("10", n/2) + "1"
	path := writeSample(t, content)

	bits, err := NewFileLoader(nil).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, len(content), bits.Len())
	assert.Equal(t, n/2+1, bits.Ones())
}

func TestLoadReader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := LoadReader(ctx, strings.NewReader("0101"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestWriter_PersistsFilteredPrefix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	w, err := Create(path)
	require.NoError(t, err)

	_, err = w.Write([]byte("01\r\n"))
	require.NoError(t, err)
	_, err = w.Write([]byte("garbage 1"))
	require.NoError(t, err)

	// Durable before Close: a reader sees every accepted symbol
	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "011", string(onDisk))
	assert.Equal(t, 3, w.Written())

	require.NoError(t, w.Close())

	bits, err := NewFileLoader(nil).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 1}, bits.Bits())
}
