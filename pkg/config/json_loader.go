package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// JSONConfigLoader reads the first existing .json file among its paths.
// Paths outside the working directory are ignored.
type JSONConfigLoader struct {
	paths []string
}

func NewJSONConfigLoader(paths ...string) *JSONConfigLoader {
	return &JSONConfigLoader{paths: filterExt(paths, ".json")}
}

func (l *JSONConfigLoader) Load() (map[string]any, error) {
	base := workDir()

	for _, path := range l.paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			continue
		}
		absPath = filepath.Clean(absPath)
		if !strings.HasPrefix(absPath, base+string(filepath.Separator)) || !fileExists(absPath) {
			continue
		}

		data, err := os.ReadFile(absPath)
		if err != nil {
			continue
		}

		var values map[string]any
		if err = json.Unmarshal(data, &values); err != nil {
			return nil, ErrParseJSON.
				WithDetail("path", path).
				WithDetail("reason", err.Error()).
				WithCause(err)
		}
		return values, nil
	}

	return nil, ErrNoConfigSource.WithDetail("loader", "json")
}

func workDir() string {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	base, err := filepath.Abs(wd)
	if err != nil {
		return string(filepath.Separator)
	}
	return filepath.Clean(base)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// filterExt keeps paths with one of exts; paths without an extension are kept
// for every loader.
func filterExt(paths []string, exts ...string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		ext := strings.ToLower(filepath.Ext(p))
		if ext == "" {
			out = append(out, p)
			continue
		}
		for _, e := range exts {
			if ext == e {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
