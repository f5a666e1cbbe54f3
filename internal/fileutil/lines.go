package fileutil

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadLines reads the file at path and returns its non-empty lines,
// trimmed of surrounding whitespace, in file order. Blank lines are
// dropped; no other filtering happens here.
func ReadLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return lines, nil
}
