package records

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const gzipSuffix = ".gz"

// Load reads a container file and returns its record collection. Files
// ending in .gz are transparently decompressed. The root of the payload
// must be a JSON array.
func Load(path string) (Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, gzipSuffix) {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid gzip stream in %s: %v", ErrMalformedInput, path, err)
		}
		defer gz.Close()
		reader = gz
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrMalformedInput, err)
	}

	arr, ok := root.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: JSON root must be an array of records", ErrMalformedInput)
	}

	return Collection(arr), nil
}

// Save writes the collection as a JSON array. When compress is true, or the
// path already carries a .gz suffix, the output is gzipped and the returned
// path is normalized to end in .gz. Intermediate directories are created.
func Save(collection Collection, path string, compress bool) (string, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	data, err := json.Marshal(collection)
	if err != nil {
		return "", fmt.Errorf("failed to marshal records: %w", err)
	}

	if compress || strings.HasSuffix(path, gzipSuffix) {
		if !strings.HasSuffix(path, gzipSuffix) {
			path += gzipSuffix
		}
		f, err := os.Create(path)
		if err != nil {
			return "", fmt.Errorf("failed to create %s: %w", path, err)
		}
		gz := gzip.NewWriter(f)
		if _, err := gz.Write(data); err != nil {
			f.Close()
			return "", fmt.Errorf("failed to write %s: %w", path, err)
		}
		if err := gz.Close(); err != nil {
			f.Close()
			return "", fmt.Errorf("failed to flush gzip stream for %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("failed to close %s: %w", path, err)
		}
		return path, nil
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
