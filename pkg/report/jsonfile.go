package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/elonfeng/channelpulse/pkg/analytics"
)

// JSONFile writes the full report as indented JSON to a file path.
type JSONFile struct {
	path string
}

// NewJSONFile creates a JSON file sink.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

func (j *JSONFile) Name() string { return "json-file" }

func (j *JSONFile) Write(rep *analytics.Report) error {
	f, err := os.Create(j.path)
	if err != nil {
		return fmt.Errorf("create %s: %w", j.path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
