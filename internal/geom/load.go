package geom

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// Extensions lists the file extensions Load understands.
var Extensions = []string{".geojson", ".json", ".csv", ".kml", ".wkt"}

// Load reads one geometry from a file, picking the decoder by extension.
func Load(path string) (Geometry, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".geojson", ".json":
		return LoadGeoJSON(path)
	case ".csv":
		return LoadCSV(path)
	case ".kml":
		return LoadKML(path)
	case ".wkt":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return ParseWKT(string(data))
	}
	return nil, errors.Newf("unsupported file: %q", ext)
}

// Properties returns attribute columns and rows for GeoJSON and CSV files.
// Other formats carry no attributes and return nil.
func Properties(path string) ([]string, [][]string) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil
		}
		return geoJSONProperties(data)
	case ".csv":
		return csvProperties(path)
	}
	return nil, nil
}
