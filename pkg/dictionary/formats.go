package dictionary

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// FileFormat represents the dictionary source formats
type FileFormat int

const (
	FormatUnknown  FileFormat = iota
	FormatChunk               // single dict_NNNN.bin chunk
	FormatChunkDir            // directory of chunk files
	FormatText                // whitespace separated word list
)

// FormatInfo contains metadata about a dictionary file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64 // Minimum expected file size in bytes
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatChunk: {
		Format:      FormatChunk,
		Description: "Chunked Binary Dictionary",
		Extensions:  []string{".bin"},
		MinSize:     4, // word count header
	},
	FormatChunkDir: {
		Format:      FormatChunkDir,
		Description: "Chunk Directory",
	},
	FormatText: {
		Format:      FormatText,
		Description: "Plain Text Dictionary",
		MinSize:     1,
	},
}

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "Unknown"
}

// maxChunkWords is the sanity limit on a chunk's word count header.
const maxChunkWords = 1000000

// ValidateFileFormat checks if a file matches the expected format
func ValidateFileFormat(filename string, expectedFormat FileFormat) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", filename, err)
	}

	formatInfo, exists := supportedFormats[expectedFormat]
	if !exists {
		return fmt.Errorf("%w: %v", ErrUnknownFormat, expectedFormat)
	}

	if expectedFormat == FormatChunkDir {
		if !fileInfo.IsDir() {
			return fmt.Errorf("%s is not a directory", filename)
		}
		matches, _ := filepath.Glob(filepath.Join(filename, chunkPattern))
		if len(matches) == 0 {
			return fmt.Errorf("%w in %s", ErrNoChunks, filename)
		}
		return nil
	}

	if fileInfo.Size() < formatInfo.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			filename, fileInfo.Size(), formatInfo.Description, formatInfo.MinSize)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	validExt := len(formatInfo.Extensions) == 0
	for _, validExtension := range formatInfo.Extensions {
		if ext == validExtension {
			validExt = true
			break
		}
	}
	if !validExt {
		return fmt.Errorf("file %s has invalid extension %q for format %s (expected: %v)",
			filename, ext, formatInfo.Description, formatInfo.Extensions)
	}

	if expectedFormat == FormatChunk {
		return validateChunkHeader(filename)
	}
	return nil
}

// validateChunkHeader reads and sanity checks the word count header
func validateChunkHeader(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer file.Close()

	var wordCount int32
	if err := binary.Read(file, binary.LittleEndian, &wordCount); err != nil {
		return fmt.Errorf("failed to read header from %s: %w", filename, err)
	}
	if wordCount < 0 || wordCount > maxChunkWords {
		return fmt.Errorf("%w: %s declares %d words", ErrBadChunk, filename, wordCount)
	}

	log.Debugf("Binary file %s validated: %d words", filename, wordCount)
	return nil
}

// DetectFileFormat works out which loader a path needs
func DetectFileFormat(path string) (FileFormat, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FormatUnknown, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		if err := ValidateFileFormat(path, FormatChunkDir); err != nil {
			return FormatUnknown, err
		}
		return FormatChunkDir, nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".bin" {
		if err := ValidateFileFormat(path, FormatChunk); err != nil {
			return FormatUnknown, err
		}
		return FormatChunk, nil
	}
	if err := ValidateFileFormat(path, FormatText); err != nil {
		return FormatUnknown, err
	}
	return FormatText, nil
}
