package sample

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trngaudit/internal/errors"
)

func TestGenerate_Deterministic(t *testing.T) {
	var a, b bytes.Buffer
	n, err := Generate(context.Background(), &a, 10000, 0.5, 7)
	require.NoError(t, err)
	assert.Equal(t, 10000, n)
	_, err = Generate(context.Background(), &b, 10000, 0.5, 7)
	require.NoError(t, err)
	assert.Equal(t, a.Bytes(), b.Bytes())
	assert.Equal(t, 10000, bytes.Count(a.Bytes(), []byte("0"))+bytes.Count(a.Bytes(), []byte("1")))
}

func TestGenerate_Bias(t *testing.T) {
	var ones, zeros bytes.Buffer
	_, err := Generate(context.Background(), &ones, 5000, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 5000, bytes.Count(ones.Bytes(), []byte("1")))

	_, err = Generate(context.Background(), &zeros, 5000, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 5000, bytes.Count(zeros.Bytes(), []byte("0")))
}

func TestGenerate_InvalidArguments(t *testing.T) {
	_, err := Generate(context.Background(), &bytes.Buffer{}, -1, 0.5, 1)
	assert.True(t, errors.HasCode(err, errors.CodeInvalidInput))
	_, err = Generate(context.Background(), &bytes.Buffer{}, 10, 1.5, 1)
	assert.True(t, errors.HasCode(err, errors.CodeInvalidInput))
}

func TestGenerate_ThroughWriterRoundTrips(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "fixture.txt")
	w, err := Create(path)
	require.NoError(t, err)

	_, err = Generate(ctx, w, 9000, 0.5, 42)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.Equal(t, 9000, w.Written())

	bits, err := NewFileLoader(nil).Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 9000, bits.Len())
}
