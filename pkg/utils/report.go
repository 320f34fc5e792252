package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
	"github.com/opnlabs/advisor/pkg/models"
)

// WriteReport writes the analysis result for the named input as a JSON file
// under dir and returns the path. The file name is a slug of the input name,
// so arbitrary paths produce safe file names.
func WriteReport(dir, name string, result models.AnalysisResult) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("could not create report directory %s: %v", dir, err)
	}

	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	path := filepath.Join(dir, slug.Make(base)+".json")

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("could not encode report for %s: %v", name, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("could not write report %s: %v", path, err)
	}
	return path, nil
}
