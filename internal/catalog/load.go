package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a seed catalog file from disk. A missing file yields an empty
// catalog.
func Load(path string) ([]Paper, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Paper{}, nil
		}
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML bytes into a paper list. Dates are normalised to UTC
// calendar dates.
func Parse(data []byte) ([]Paper, error) {
	if len(data) == 0 {
		return []Paper{}, nil
	}
	var papers []Paper
	if err := yaml.Unmarshal(data, &papers); err != nil {
		return nil, fmt.Errorf("parsing catalog YAML: %w", err)
	}
	if papers == nil {
		return []Paper{}, nil
	}
	seen := make(map[int]bool, len(papers))
	for i := range papers {
		if papers[i].ID <= 0 {
			return nil, fmt.Errorf("parsing catalog YAML: paper %q has no positive id", papers[i].Title)
		}
		if seen[papers[i].ID] {
			return nil, fmt.Errorf("parsing catalog YAML: duplicate id %d", papers[i].ID)
		}
		seen[papers[i].ID] = true
		if !papers[i].DateAdded.IsZero() {
			papers[i].DateAdded = Date(papers[i].DateAdded)
		}
	}
	return papers, nil
}
