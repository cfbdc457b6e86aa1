package pagerank

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Source loads a raw (unnormalized) POR-key → weight map.
type Source interface {
	Load() (map[string]float64, error)
}

// FileSource reads the two-column comma-separated PageRank file.
// Malformed lines are logged and skipped rather than failing the whole
// load; the affected keys simply fall back to the floor weight.
type FileSource struct {
	Path   string
	Logger *zap.Logger
}

func (f FileSource) Load() (map[string]float64, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, &NotReadableError{Path: f.Path, Err: err}
	}
	defer file.Close()

	logger := f.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	raw := make(map[string]float64)
	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		key, weightStr, ok := strings.Cut(text, ",")
		if !ok {
			logger.Warn("pagerank: malformed line, falling back to floor weight",
				zap.Error(&FormatError{Line: line, Message: "expected key,weight"}))
			continue
		}
		weight, err := strconv.ParseFloat(strings.TrimSpace(weightStr), 64)
		if err != nil {
			logger.Warn("pagerank: malformed weight, falling back to floor weight",
				zap.Error(&FormatError{Line: line, Message: "weight is not a float"}))
			continue
		}
		if weight <= 0 {
			continue
		}
		raw[strings.TrimSpace(key)] = weight
	}
	if err := scanner.Err(); err != nil {
		return raw, err
	}
	return raw, nil
}

// NotReadableError wraps a failure to open the PageRank file.
type NotReadableError struct {
	Path string
	Err  error
}

func (e *NotReadableError) Error() string {
	return "pagerank: " + e.Path + " is not readable: " + e.Err.Error()
}

func (e *NotReadableError) Unwrap() error { return e.Err }
