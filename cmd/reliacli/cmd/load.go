package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Temi-Tory/IPM-Working-sub011/graphmodel"
	"github.com/Temi-Tory/IPM-Working-sub011/loader"
)

// loadGraph dispatches on file extension: .json via loader.FromJSON,
// anything else (including .csv) via loader.FromCSV.
func loadGraph(path string) (*graphmodel.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reliacli: opening %s: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return loader.FromJSON(f)
	}

	return loader.FromCSV(f)
}
