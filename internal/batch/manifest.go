package batch

import (
	"encoding/json"
	"fmt"
	"os"

	"cardfx/internal/imageio"
)

// Manifest summarizes a batch run.
type Manifest struct {
	Format    string   `json:"format"`
	MIME      string   `json:"mime"`
	Total     int      `json:"total"`
	Succeeded int      `json:"succeeded"`
	Fallbacks int      `json:"fallbacks"`
	Failed    int      `json:"failed"`
	Results   []Result `json:"results"`
}

// NewManifest tallies results.
func NewManifest(f imageio.Format, results []Result) Manifest {
	m := Manifest{Format: string(f), MIME: f.MIME(), Total: len(results), Results: results}
	for _, r := range results {
		switch {
		case r.Success:
			m.Succeeded++
		case r.Fallback:
			m.Fallbacks++
		default:
			m.Failed++
		}
	}
	return m
}

// WriteManifest writes manifest.json to path.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: manifest: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
