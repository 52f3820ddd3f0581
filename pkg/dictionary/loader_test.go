package dictionary

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeChunkFile(t *testing.T, path string, words []string) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WriteChunk(&buf, words))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestReadWords(t *testing.T) {
	words, err := ReadWords(strings.NewReader("cat dog\r\n  bat\n\nrat\tcow\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "dog", "bat", "rat", "cow"}, words)
}

func TestChunkRoundTrip(t *testing.T) {
	words := []string{"alpha", "beta", "gamma"}
	var buf bytes.Buffer
	require.NoError(t, WriteChunk(&buf, words))

	// int32 header, then len + bytes + rank per word
	assert.Equal(t, 4+(2+5+2)+(2+4+2)+(2+5+2), buf.Len())

	got, err := ReadChunk(&buf)
	require.NoError(t, err)
	assert.Equal(t, words, got)
}

func TestReadChunkErrors(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, err := ReadChunk(bytes.NewReader(nil))
		assert.ErrorIs(t, err, ErrBadChunk)
	})
	t.Run("negative count", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, int32(-1)))
		_, err := ReadChunk(&buf)
		assert.ErrorIs(t, err, ErrBadChunk)
	})
	t.Run("truncated word", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteChunk(&buf, []string{"alpha"}))
		_, err := ReadChunk(bytes.NewReader(buf.Bytes()[:8]))
		assert.ErrorIs(t, err, ErrBadChunk)
	})
	t.Run("fewer words than header", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteChunk(&buf, []string{"alpha"}))
		b := buf.Bytes()
		binary.LittleEndian.PutUint32(b[:4], 3)
		words, err := ReadChunk(bytes.NewReader(b))
		assert.ErrorIs(t, err, ErrBadChunk)
		assert.ErrorContains(t, err, "declares 3 words, found 1")
		assert.Nil(t, words)
	})
}

func TestLoadText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words_alpha.txt")
	require.NoError(t, os.WriteFile(path, []byte("Cat\nat\ndon't\ndog\ncat\n"), 0o644))

	d, err := Load(path, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 4, d.Len())

	d, err = LoadText(path, LoadOptions{MinLength: 3, LettersOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "dog"}, d.Words())

	_, err = LoadText(path, LoadOptions{MinLength: 10})
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestLoadChunks(t *testing.T) {
	dir := t.TempDir()
	writeChunkFile(t, filepath.Join(dir, "dict_0002.bin"), []string{"bat", "rat"})
	writeChunkFile(t, filepath.Join(dir, "dict_0001.bin"), []string{"cat", "act"})
	writeChunkFile(t, filepath.Join(dir, "dict_xx.bin"), []string{"skipped"})

	chunks, err := GetAvailableChunks(dir)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, 1, chunks[0].ID)
	assert.Equal(t, 2, chunks[1].WordCount)

	d, err := Load(dir, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "act", "bat", "rat"}, d.Words())
	assert.Equal(t, []string{"cat", "act"}, d.AnagramsOf("tac"))

	single, err := Load(filepath.Join(dir, "dict_0002.bin"), LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, single.Len())

	_, err = LoadChunks(t.TempDir(), LoadOptions{})
	assert.ErrorIs(t, err, ErrNoChunks)
}

func TestDetectFileFormat(t *testing.T) {
	dir := t.TempDir()
	text := filepath.Join(dir, "words")
	require.NoError(t, os.WriteFile(text, []byte("cat\n"), 0o644))
	chunk := filepath.Join(dir, "dict_0001.bin")
	writeChunkFile(t, chunk, []string{"cat"})
	bad := filepath.Join(dir, "bad.bin")
	require.NoError(t, os.WriteFile(bad, []byte{0xff, 0xff, 0xff, 0x7f}, 0o644))
	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))

	tests := []struct {
		path    string
		want    FileFormat
		wantErr bool
	}{
		{text, FormatText, false},
		{chunk, FormatChunk, false},
		{dir, FormatChunkDir, false},
		{bad, FormatUnknown, true},
		{empty, FormatUnknown, true},
		{filepath.Join(dir, "missing.txt"), FormatUnknown, true},
		{t.TempDir(), FormatUnknown, true},
	}
	for _, tt := range tests {
		t.Run(filepath.Base(tt.path), func(t *testing.T) {
			got, err := DetectFileFormat(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "Plain Text Dictionary", FormatText.String())
	assert.Equal(t, "Unknown", FormatUnknown.String())
}
