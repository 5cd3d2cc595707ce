package automatic

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/domino14/crapette/card"
)

// GenerateSeeds creates n random deal seeds.
func GenerateSeeds(n int) []string {
	seeds := make([]string, n)
	for i := range seeds {
		seeds[i] = card.GenerateSeed()
	}
	return seeds
}

// SaveSeeds writes seeds to a file, one per line.
func SaveSeeds(seeds []string, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create seed file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if _, err := writer.WriteString("# crapette deal seeds\n"); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, seed := range seeds {
		if strings.ContainsAny(seed, "\n#") || strings.TrimSpace(seed) != seed {
			return fmt.Errorf("seed %d cannot be saved: %q", i, seed)
		}
		if _, err := writer.WriteString(seed + "\n"); err != nil {
			return fmt.Errorf("failed to write seed %d: %w", i, err)
		}
	}
	return writer.Flush()
}

// LoadSeeds reads seeds written by SaveSeeds. Blank lines and lines
// starting with # are skipped.
func LoadSeeds(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer file.Close()

	var seeds []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		seeds = append(seeds, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading seed file: %w", err)
	}
	return seeds, nil
}
