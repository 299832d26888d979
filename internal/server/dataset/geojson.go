package dataset

// GeoJSON marshalling for the map layer. Only the geometry flavors the WKT
// parser produces are emitted, so hand-rolled structs are enough here.

type geoJSONGeometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

type geoJSONFeature struct {
	Type       string          `json:"type"`
	Geometry   geoJSONGeometry `json:"geometry"`
	Properties map[string]any  `json:"properties"`
}

// FeatureCollection is a GeoJSON FeatureCollection ready for json.Marshal.
type FeatureCollection struct {
	Type     string           `json:"type"`
	Features []geoJSONFeature `json:"features"`
}

func polygonCoords(poly Polygon) [][][2]float64 {
	rings := make([][][2]float64, 0, len(poly))
	for _, ring := range poly {
		coords := make([][2]float64, 0, len(ring))
		for _, pt := range ring {
			coords = append(coords, [2]float64{pt.Lon, pt.Lat})
		}
		rings = append(rings, coords)
	}
	return rings
}

func (g Geometry) geoJSON() geoJSONGeometry {
	if len(g.Polygons) == 1 {
		return geoJSONGeometry{Type: "Polygon", Coordinates: polygonCoords(g.Polygons[0])}
	}
	polys := make([][][][2]float64, 0, len(g.Polygons))
	for _, p := range g.Polygons {
		polys = append(polys, polygonCoords(p))
	}
	return geoJSONGeometry{Type: "MultiPolygon", Coordinates: polys}
}

func featureFor(r Record) geoJSONFeature {
	return geoJSONFeature{
		Type:     "Feature",
		Geometry: r.Geometry.geoJSON(),
		Properties: map[string]any{
			"pcode":      r.PCode,
			"name":       r.Name,
			"risk_index": r.RiskIndex,
			"risk_label": r.RiskLabel,
		},
	}
}

// GeoJSON returns the whole dataset as a FeatureCollection for the city
// choropleth.
func (d *Dataset) GeoJSON() FeatureCollection {
	features := make([]geoJSONFeature, 0, len(d.records))
	for _, r := range d.records {
		features = append(features, featureFor(r))
	}
	return FeatureCollection{Type: "FeatureCollection", Features: features}
}

// GeoJSONFor returns a single-feature collection for the deep-dive map.
func (d *Dataset) GeoJSONFor(pcode string) (FeatureCollection, error) {
	r, err := d.ByPCode(pcode)
	if err != nil {
		return FeatureCollection{}, err
	}
	return FeatureCollection{Type: "FeatureCollection", Features: []geoJSONFeature{featureFor(*r)}}, nil
}
