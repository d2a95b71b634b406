package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gamematch/internal/matching"
)

// referenceFile is the JSON shape of a catalog entry passed via --reference.
type referenceFile struct {
	Name              string   `json:"name"`
	AlternativeNames  []string `json:"alternativeNames"`
	ReleaseDate       string   `json:"releaseDate"`
	Category          string   `json:"category"`
	Platforms         []string `json:"platforms"`
	FranchiseSiblings []string `json:"franchiseSiblings"`
	EditionTitles     []string `json:"editionTitles"`
	Summary           string   `json:"summary"`
}

// loadReference reads a catalog entry from a JSON file.
func loadReference(path string) (matching.ReferenceItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return matching.ReferenceItem{}, fmt.Errorf("read reference: %w", err)
	}
	var file referenceFile
	if err := json.Unmarshal(data, &file); err != nil {
		return matching.ReferenceItem{}, fmt.Errorf("parse reference: %w", err)
	}
	if strings.TrimSpace(file.Name) == "" {
		return matching.ReferenceItem{}, fmt.Errorf("reference %s: missing name", path)
	}

	ref := matching.ReferenceItem{
		Name:                  file.Name,
		Category:              matching.Category(strings.TrimSpace(file.Category)),
		Platforms:             file.Platforms,
		FranchiseSiblingNames: file.FranchiseSiblings,
		EditionTitles:         file.EditionTitles,
		Summary:               file.Summary,
	}
	for _, alt := range file.AlternativeNames {
		if alt = strings.TrimSpace(alt); alt != "" {
			ref.AlternativeNames = append(ref.AlternativeNames, matching.AlternativeName{Name: alt})
		}
	}
	if raw := strings.TrimSpace(file.ReleaseDate); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return matching.ReferenceItem{}, fmt.Errorf("reference %s: parse release date %q: %w", path, raw, err)
		}
		ref.ReleaseDate = &parsed
	}
	return ref, nil
}
