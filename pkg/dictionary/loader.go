package dictionary

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bastiangx/wordcost/internal/utils"
	"github.com/charmbracelet/log"
)

var (
	ErrUnknownFormat = errors.New("dictionary: unknown file format")
	ErrNoChunks      = errors.New("dictionary: no chunk files found")
	ErrBadChunk      = errors.New("dictionary: malformed chunk")
	ErrEmpty         = errors.New("dictionary: no words loaded")
)

const chunkPattern = "dict_*.bin"

// LoadOptions filters words while loading.
type LoadOptions struct {
	// MinLength drops words shorter than this many bytes.
	MinLength int
	// LettersOnly drops words containing anything but a-z after lowercasing.
	LettersOnly bool
}

func (o LoadOptions) keep(word string) bool {
	if len(word) < o.MinLength {
		return false
	}
	return !o.LettersOnly || utils.IsValidWord(word)
}

// ChunkInfo contains metadata about a chunk file
type ChunkInfo struct {
	ID        int
	Filename  string
	WordCount int
}

// Load detects the format at path and loads it.
func Load(path string, opts LoadOptions) (*Dictionary, error) {
	format, err := DetectFileFormat(path)
	if err != nil {
		return nil, err
	}
	log.Debugf("Loading dictionary %s as %s", path, format)

	var words []string
	switch format {
	case FormatChunkDir:
		words, err = readChunkDir(path)
	case FormatChunk:
		words, err = readChunkFile(path)
	case FormatText:
		words, err = readTextFile(path)
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return nil, err
	}
	return build(words, opts, path)
}

// LoadText loads a whitespace separated word list.
func LoadText(path string, opts LoadOptions) (*Dictionary, error) {
	words, err := readTextFile(path)
	if err != nil {
		return nil, err
	}
	return build(words, opts, path)
}

// LoadChunks loads every dict_NNNN.bin file of dir in id order.
func LoadChunks(dir string, opts LoadOptions) (*Dictionary, error) {
	words, err := readChunkDir(dir)
	if err != nil {
		return nil, err
	}
	return build(words, opts, dir)
}

func build(words []string, opts LoadOptions, source string) (*Dictionary, error) {
	kept := words[:0]
	for _, w := range words {
		w = strings.ToLower(w)
		if opts.keep(w) {
			kept = append(kept, w)
		}
	}
	d := New(kept)
	if d.Len() == 0 {
		return nil, fmt.Errorf("%w from %s", ErrEmpty, source)
	}
	log.Debugf("Dictionary ready: %d words, %d anagram classes", d.Len(), d.Classes())
	return d, nil
}

func readTextFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list %s: %w", path, err)
	}
	defer file.Close()
	return ReadWords(file)
}

// ReadWords splits r on whitespace.
func ReadWords(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	scanner.Split(bufio.ScanWords)
	var words []string
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	return words, nil
}

// GetAvailableChunks scans dir for chunk files, sorted by id
func GetAvailableChunks(dir string) ([]ChunkInfo, error) {
	files, err := filepath.Glob(filepath.Join(dir, chunkPattern))
	if err != nil {
		return nil, fmt.Errorf("failed to scan for chunk files: %w", err)
	}

	var chunks []ChunkInfo
	for _, file := range files {
		// dict_0001.bin -> 1
		idStr := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(file), "dict_"), ".bin")
		id, err := strconv.Atoi(idStr)
		if err != nil {
			log.Warnf("Skipping chunk with unexpected name: %s", file)
			continue
		}
		count, err := chunkWordCount(file)
		if err != nil {
			log.Warnf("Failed to get word count for chunk %s: %v", file, err)
		}
		chunks = append(chunks, ChunkInfo{ID: id, Filename: file, WordCount: count})
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].ID < chunks[j].ID
	})
	return chunks, nil
}

func chunkWordCount(filename string) (int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var wordCount int32
	if err := binary.Read(file, binary.LittleEndian, &wordCount); err != nil {
		return 0, err
	}
	return int(wordCount), nil
}

func readChunkDir(dir string) ([]string, error) {
	chunks, err := GetAvailableChunks(dir)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoChunks, dir)
	}
	log.Debugf("Found %d chunk files", len(chunks))

	var words []string
	for _, chunk := range chunks {
		w, err := readChunkFile(chunk.Filename)
		if err != nil {
			return nil, err
		}
		words = append(words, w...)
	}
	return words, nil
}

func readChunkFile(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open chunk file %s: %w", filename, err)
	}
	defer file.Close()

	words, err := ReadChunk(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	log.Debugf("Chunk %s loaded: %d words", filepath.Base(filename), len(words))
	return words, nil
}

// ReadChunk decodes one chunk: an int32 word count, then for each word a
// uint16 length, the word bytes and a uint16 rank. Ranks are discarded.
func ReadChunk(r io.Reader) ([]string, error) {
	var total int32
	if err := binary.Read(r, binary.LittleEndian, &total); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrBadChunk, err)
	}
	if total < 0 || total > maxChunkWords {
		return nil, fmt.Errorf("%w: word count %d", ErrBadChunk, total)
	}

	words := make([]string, 0, total)
	for i := 0; i < int(total); i++ {
		var wordLen uint16
		if err := binary.Read(r, binary.LittleEndian, &wordLen); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: header declares %d words, found %d", ErrBadChunk, total, len(words))
			}
			return nil, fmt.Errorf("%w: word length: %v", ErrBadChunk, err)
		}
		wordBytes := make([]byte, wordLen)
		if _, err := io.ReadFull(r, wordBytes); err != nil {
			return nil, fmt.Errorf("%w: word: %v", ErrBadChunk, err)
		}
		var rank uint16
		if err := binary.Read(r, binary.LittleEndian, &rank); err != nil {
			return nil, fmt.Errorf("%w: rank: %v", ErrBadChunk, err)
		}
		words = append(words, string(wordBytes))
	}
	return words, nil
}

// WriteChunk encodes words in the chunk format, ranking them by position.
func WriteChunk(w io.Writer, words []string) error {
	if err := binary.Write(w, binary.LittleEndian, int32(len(words))); err != nil {
		return err
	}
	for i, word := range words {
		if err := binary.Write(w, binary.LittleEndian, uint16(len(word))); err != nil {
			return err
		}
		if _, err := io.WriteString(w, word); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint16(min(i+1, 65535))); err != nil {
			return err
		}
	}
	return nil
}
