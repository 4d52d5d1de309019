package rosterfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/jakechorley/yellow-box/pkg/core/model"
)

// Load reads the roster at path. Each line holds "LastName, FirstName".
// Blank lines and lines starting with # are ignored; malformed lines are skipped with a warning.
func Load(path string, logger *zap.Logger) ([]model.Person, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: names file %s: %w", model.ErrFileNotFound, path, err)
		}
		return nil, fmt.Errorf("failed to open names file: %w", err)
	}
	defer f.Close()

	people, err := Parse(f, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to read names file %s: %w", path, err)
	}

	logger.Debug("Loaded roster", zap.String("path", path), zap.Int("people", len(people)))
	return people, nil
}

// Parse reads roster lines from r, preserving their order
func Parse(r io.Reader, logger *zap.Logger) ([]model.Person, error) {
	var people []model.Person

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		person, ok := parseLine(line)
		if !ok {
			logger.Warn("Skipping malformed roster line",
				zap.Int("line", lineNumber),
				zap.String("content", line))
			continue
		}
		people = append(people, person)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return people, nil
}

// parseLine splits "LastName, FirstName[, ...]"; extra fields are ignored
func parseLine(line string) (model.Person, bool) {
	parts := strings.Split(line, ",")
	if len(parts) < 2 {
		return model.Person{}, false
	}

	person := model.Person{
		LastName:  strings.TrimSpace(parts[0]),
		FirstName: strings.TrimSpace(parts[1]),
	}
	if person.LastName == "" && person.FirstName == "" {
		return model.Person{}, false
	}
	return person, true
}
