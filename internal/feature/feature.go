package feature

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Feature is a single GeoJSON feature. Geometry is kept as raw JSON so that
// output serialization never rewrites geometry bytes; Properties is shared by
// reference with any Element viewing the feature.
type Feature struct {
	Type       string                 `json:"type"`
	ID         interface{}            `json:"id,omitempty"`
	Geometry   json.RawMessage        `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// Collection is an ordered GeoJSON feature collection. Feature order is
// preserved through load, assignment, and save.
type Collection struct {
	Type     string     `json:"type"`
	Features []*Feature `json:"features"`
}

// NewCollection returns an empty collection with the FeatureCollection type
// marker set.
func NewCollection(features ...*Feature) *Collection {
	return &Collection{Type: "FeatureCollection", Features: features}
}

// Load reads a GeoJSON feature collection from path.
func Load(path string) (*Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "feature: read %s", path)
	}
	var c Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, eris.Wrapf(err, "feature: parse %s", path)
	}
	zap.L().Debug("feature: loaded collection",
		zap.String("path", path),
		zap.Int("features", len(c.Features)),
	)
	return &c, nil
}

// Save writes c to path as JSON. The data is written to a temporary file in
// the destination directory and renamed into place, so a failed run never
// leaves a partial output file.
func Save(c *Collection, path string) error {
	if c.Type == "" {
		c.Type = "FeatureCollection"
	}
	data, err := json.Marshal(c)
	if err != nil {
		return eris.Wrap(err, "feature: marshal collection")
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return eris.Wrapf(err, "feature: create temp file in %s", dir)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return eris.Wrapf(err, "feature: write %s", path)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return eris.Wrapf(err, "feature: close temp file for %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return eris.Wrapf(err, "feature: rename temp file to %s", path)
	}
	return nil
}
