package api

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadDocument reads a runbook file, sets Dir/FilePath, and validates it.
func LoadDocument(filename string) (*Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading runbook file: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing runbook file: %w", err)
	}

	absPath, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}
	doc.FilePath = absPath
	doc.Dir = filepath.Dir(absPath)

	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("validating runbook %s: %w", filename, err)
	}

	return &doc, nil
}
