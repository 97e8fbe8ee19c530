package staging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/reelstats/reelstats/internal/models"
	"github.com/reelstats/reelstats/internal/repositories"
)

// Dir is a staging directory holding the three record files.
type Dir string

func (d Dir) path(name string) string {
	return filepath.Join(string(d), name)
}

// Write stores v as indented JSON, creating parent directories.
func Write(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create staging dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Read decodes the JSON file at path into v.
func Read(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (d Dir) WriteCatalog(records []CatalogRecord) error {
	return Write(d.path(CatalogFile), records)
}

func (d Dir) WriteRatings(records []RatingRecord) error {
	return Write(d.path(RatingsFile), records)
}

func (d Dir) WriteTrailers(records []TrailerRecord) error {
	return Write(d.path(TrailerFile), records)
}

// Catalog loads the staged catalog movies.
func (d Dir) Catalog() ([]*models.CatalogMovie, error) {
	var records []CatalogRecord
	if err := Read(d.path(CatalogFile), &records); err != nil {
		return nil, err
	}
	out := make([]*models.CatalogMovie, len(records))
	for i, r := range records {
		out[i] = r.ToModel()
	}
	return out, nil
}

// Ratings loads the staged rating records.
func (d Dir) Ratings() ([]repositories.RatingInput, error) {
	var records []RatingRecord
	if err := Read(d.path(RatingsFile), &records); err != nil {
		return nil, err
	}
	out := make([]repositories.RatingInput, len(records))
	for i, r := range records {
		out[i] = r.ToInput()
	}
	return out, nil
}

// Trailers loads the staged trailers.
func (d Dir) Trailers() ([]*models.Trailer, error) {
	var records []TrailerRecord
	if err := Read(d.path(TrailerFile), &records); err != nil {
		return nil, err
	}
	out := make([]*models.Trailer, len(records))
	for i, r := range records {
		out[i] = r.ToModel()
	}
	return out, nil
}
