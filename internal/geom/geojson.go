package geom

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	gogeom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// DecodeGeoJSON decodes a single geometry from a geometry object, a Feature,
// or a FeatureCollection holding exactly one feature.
func DecodeGeoJSON(data []byte) (Geometry, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, errors.Wrap(err, "geojson")
	}
	var t gogeom.T
	switch head.Type {
	case "":
		return nil, errors.New("invalid geojson: missing type")
	case "Feature":
		var f geojson.Feature
		if err := f.UnmarshalJSON(data); err != nil {
			return nil, errors.Wrap(err, "geojson feature")
		}
		t = f.Geometry
	case "FeatureCollection":
		var fc geojson.FeatureCollection
		if err := fc.UnmarshalJSON(data); err != nil {
			return nil, errors.Wrap(err, "geojson feature collection")
		}
		if len(fc.Features) != 1 {
			return nil, errors.Newf("geojson: expected exactly one feature, got %d", len(fc.Features))
		}
		t = fc.Features[0].Geometry
	default:
		if err := geojson.Unmarshal(data, &t); err != nil {
			return nil, errors.Wrap(err, "geojson")
		}
	}
	g, err := fromGoGeom(t)
	if err != nil {
		return nil, errors.Wrap(err, "geojson")
	}
	return g, nil
}

// LoadGeoJSON reads a GeoJSON file holding one geometry.
func LoadGeoJSON(path string) (Geometry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeGeoJSON(data)
}

// geoJSONProperties collects feature properties and unions the keys, sorted
// per feature, in order of first appearance.
func geoJSONProperties(data []byte) ([]string, [][]string) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, nil
	}
	var features []*geojson.Feature
	switch head.Type {
	case "FeatureCollection":
		var fc geojson.FeatureCollection
		if err := fc.UnmarshalJSON(data); err != nil {
			return nil, nil
		}
		features = fc.Features
	case "Feature":
		var f geojson.Feature
		if err := f.UnmarshalJSON(data); err != nil {
			return nil, nil
		}
		features = []*geojson.Feature{&f}
	default:
		// geometry only; no attributes
		return nil, nil
	}
	var order []string
	seen := map[string]bool{}
	for _, f := range features {
		keys := lo.Keys(f.Properties)
		sort.Strings(keys)
		for _, k := range keys {
			if !seen[k] {
				seen[k] = true
				order = append(order, k)
			}
		}
	}
	rows := make([][]string, 0, len(features))
	for _, f := range features {
		vals := make([]string, 0, len(order))
		for _, k := range order {
			vals = append(vals, formatProperty(f.Properties[k]))
		}
		rows = append(rows, vals)
	}
	return order, rows
}

func formatProperty(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		bs, _ := json.Marshal(t)
		return string(bs)
	}
}
