package mimefile

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"scmutil/internal/logging"
)

// Separator splits a line into key and value.
const Separator = ": "

var (
	// ErrFileAccess reports that the file could not be opened or read.
	ErrFileAccess = errors.New("mime file not accessible")
	// ErrEncoding reports that the file content is not valid UTF-8.
	ErrEncoding = errors.New("mime file is not valid utf-8")
)

// ReadFile parses the pseudo-MIME file at path. See Read for logging.
func ReadFile(path string, logger *slog.Logger) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileAccess, err)
	}
	defer file.Close()

	return Read(file, path, logger)
}

// Read parses pseudo-MIME content from r. source names the input in errors and
// log records; the content and the parsed data are logged at debug level.
func Read(r io.Reader, source string, logger *slog.Logger) (map[string]string, error) {
	logger = logging.NewComponentLogger(logger, "mimefile")

	content, err := Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	logger.Debug("mime content", logging.Path(source), logging.String("content", indent(content, "    ")))

	data := Parse(content)
	logger.Debug("mime data", logging.Path(source), logging.Any("data", data))
	return data, nil
}

// Decode reads r to EOF and rejects content that is not valid UTF-8.
func Decode(r io.Reader) (string, error) {
	raw, err := io.ReadAll(transform.NewReader(r, encoding.UTF8Validator))
	if err != nil {
		if errors.Is(err, encoding.ErrInvalidUTF8) {
			return "", fmt.Errorf("%w: %w", ErrEncoding, err)
		}
		return "", fmt.Errorf("%w: %w", ErrFileAccess, err)
	}
	return string(raw), nil
}

// Parse builds the key/value map for content. The result is never nil.
func Parse(content string) map[string]string {
	data := make(map[string]string)
	for _, line := range SplitLines(content) {
		key, value, ok := strings.Cut(line, Separator)
		if !ok {
			continue
		}
		data[key] = value
	}
	return data
}

func indent(content, prefix string) string {
	lines := strings.SplitAfter(content, "\n")
	var b strings.Builder
	b.Grow(len(content) + len(lines)*len(prefix))
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			b.WriteString(prefix)
		}
		b.WriteString(line)
	}
	return b.String()
}
