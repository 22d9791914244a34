package geom

import (
	"encoding/xml"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

type kmlCoords struct {
	Coordinates string `xml:"coordinates"`
}

type kmlBoundary struct {
	LinearRing kmlCoords `xml:"LinearRing"`
}

type kmlPolygon struct {
	Outer kmlBoundary   `xml:"outerBoundaryIs"`
	Inner []kmlBoundary `xml:"innerBoundaryIs"`
}

type kmlPlacemark struct {
	Point      *kmlCoords  `xml:"Point"`
	LineString *kmlCoords  `xml:"LineString"`
	Polygon    *kmlPolygon `xml:"Polygon"`
}

type kmlDoc struct {
	Placemarks []kmlPlacemark `xml:"Placemark"`
	Document   struct {
		Placemarks []kmlPlacemark `xml:"Placemark"`
		Folders    []struct {
			Placemarks []kmlPlacemark `xml:"Placemark"`
		} `xml:"Folder"`
	} `xml:"Document"`
}

func (d kmlDoc) placemarks() []kmlPlacemark {
	out := append([]kmlPlacemark{}, d.Placemarks...)
	out = append(out, d.Document.Placemarks...)
	for _, f := range d.Document.Folders {
		out = append(out, f.Placemarks...)
	}
	return out
}

// LoadKML reads the first Placemark carrying a Point, LineString or Polygon.
// KML coordinates are "lon,lat[,alt]"; altitude becomes Z.
func LoadKML(path string) (Geometry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeKML(data)
}

func DecodeKML(data []byte) (Geometry, error) {
	var doc kmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "kml")
	}
	for _, pm := range doc.placemarks() {
		switch {
		case pm.Point != nil:
			pos, err := parseKMLCoordinates(pm.Point.Coordinates)
			if err != nil {
				return nil, err
			}
			if len(pos) != 1 {
				return nil, errors.Wrapf(ErrInvalidPosition, "kml point has %d positions", len(pos))
			}
			return NewPoint(pos[0][0], pos[0][1], pos[0][2:]...)
		case pm.LineString != nil:
			pos, err := parseKMLCoordinates(pm.LineString.Coordinates)
			if err != nil {
				return nil, err
			}
			return NewLineString(pos)
		case pm.Polygon != nil:
			outer, err := parseKMLCoordinates(pm.Polygon.Outer.LinearRing.Coordinates)
			if err != nil {
				return nil, err
			}
			rings := [][][]float64{outer}
			for _, in := range pm.Polygon.Inner {
				hole, err := parseKMLCoordinates(in.LinearRing.Coordinates)
				if err != nil {
					return nil, err
				}
				rings = append(rings, hole)
			}
			return NewPolygon(rings)
		}
	}
	return nil, errors.New("kml: no geometry found")
}

// parseKMLCoordinates splits whitespace separated "lon,lat[,alt]" tuples.
func parseKMLCoordinates(s string) ([][]float64, error) {
	var out [][]float64
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 || len(vals) > 3 {
			return nil, errors.Wrapf(ErrInvalidPosition, "kml tuple %q", tuple)
		}
		pos := make([]float64, 0, len(vals))
		for _, v := range vals {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, errors.Wrapf(ErrInvalidPosition, "kml tuple %q", tuple)
			}
			pos = append(pos, f)
		}
		out = append(out, pos)
	}
	return out, nil
}
