package dataset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Geometry is a normalized multipolygon in EPSG:4326. A plain WKT POLYGON
// parses into a Geometry with a single polygon. Each polygon's first ring is
// the exterior; any further rings are holes.
type Geometry struct {
	Polygons []Polygon
}

// Polygon is a set of rings; Ring is a closed sequence of lon/lat points.
type (
	Polygon []Ring
	Ring    []Point
)

// Point is a lon/lat coordinate pair (x=lon, y=lat).
type Point struct {
	Lon float64
	Lat float64
}

var errBadWKT = errors.New("malformed WKT")

// ParseWKT parses a WKT POLYGON or MULTIPOLYGON string. Other geometry
// types (and anything malformed) produce an error; the CSV loader treats
// that as "drop the row", matching how the source data is cleaned upstream.
func ParseWKT(s string) (Geometry, error) {
	p := &wktParser{s: s}
	p.skipSpace()

	var g Geometry
	switch {
	case p.consumeWord("MULTIPOLYGON"):
		polys, err := p.parseMultiPolygonBody()
		if err != nil {
			return Geometry{}, err
		}
		g = Geometry{Polygons: polys}
	case p.consumeWord("POLYGON"):
		poly, err := p.parsePolygonBody()
		if err != nil {
			return Geometry{}, err
		}
		g = Geometry{Polygons: []Polygon{poly}}
	default:
		return Geometry{}, fmt.Errorf("%w: unsupported geometry type", errBadWKT)
	}

	p.skipSpace()
	if p.i != len(p.s) {
		return Geometry{}, fmt.Errorf("%w: trailing data", errBadWKT)
	}
	if len(g.Polygons) == 0 {
		return Geometry{}, fmt.Errorf("%w: empty geometry", errBadWKT)
	}
	return g, nil
}

type wktParser struct {
	s string
	i int
}

func (p *wktParser) skipSpace() {
	for p.i < len(p.s) && (p.s[p.i] == ' ' || p.s[p.i] == '\t' || p.s[p.i] == '\n' || p.s[p.i] == '\r') {
		p.i++
	}
}

func (p *wktParser) consumeWord(word string) bool {
	if strings.HasPrefix(strings.ToUpper(p.s[p.i:]), word) {
		p.i += len(word)
		return true
	}
	return false
}

func (p *wktParser) expect(ch byte) error {
	p.skipSpace()
	if p.i >= len(p.s) || p.s[p.i] != ch {
		return fmt.Errorf("%w: expected %q at offset %d", errBadWKT, string(ch), p.i)
	}
	p.i++
	return nil
}

func (p *wktParser) peek() byte {
	p.skipSpace()
	if p.i < len(p.s) {
		return p.s[p.i]
	}
	return 0
}

// MULTIPOLYGON (((...)), ((...)))
func (p *wktParser) parseMultiPolygonBody() ([]Polygon, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	var polys []Polygon
	for {
		poly, err := p.parsePolygonBody()
		if err != nil {
			return nil, err
		}
		polys = append(polys, poly)
		if p.peek() != ',' {
			break
		}
		p.i++
	}
	if err := p.expect(')'); err != nil {
		return nil, err
	}
	return polys, nil
}

// ((x y, x y, ...), (hole...))
func (p *wktParser) parsePolygonBody() (Polygon, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	var poly Polygon
	for {
		ring, err := p.parseRing()
		if err != nil {
			return nil, err
		}
		poly = append(poly, ring)
		if p.peek() != ',' {
			break
		}
		p.i++
	}
	if err := p.expect(')'); err != nil {
		return nil, err
	}
	return poly, nil
}

func (p *wktParser) parseRing() (Ring, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	var ring Ring
	for {
		pt, err := p.parsePoint()
		if err != nil {
			return nil, err
		}
		ring = append(ring, pt)
		if p.peek() != ',' {
			break
		}
		p.i++
	}
	if err := p.expect(')'); err != nil {
		return nil, err
	}
	if len(ring) < 4 {
		return nil, fmt.Errorf("%w: ring needs at least 4 points", errBadWKT)
	}
	return ring, nil
}

func (p *wktParser) parsePoint() (Point, error) {
	lon, err := p.parseNumber()
	if err != nil {
		return Point{}, err
	}
	lat, err := p.parseNumber()
	if err != nil {
		return Point{}, err
	}
	return Point{Lon: lon, Lat: lat}, nil
}

func (p *wktParser) parseNumber() (float64, error) {
	p.skipSpace()
	start := p.i
	for p.i < len(p.s) {
		c := p.s[p.i]
		if (c >= '0' && c <= '9') || c == '-' || c == '+' || c == '.' || c == 'e' || c == 'E' {
			p.i++
			continue
		}
		break
	}
	if start == p.i {
		return 0, fmt.Errorf("%w: expected number at offset %d", errBadWKT, p.i)
	}
	v, err := strconv.ParseFloat(p.s[start:p.i], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errBadWKT, err)
	}
	return v, nil
}

// Centroid returns the area-weighted centroid of the exterior rings.
// Adequate for picking a map center; not a geodesic computation.
func (g Geometry) Centroid() Point {
	var cx, cy, total float64
	for _, poly := range g.Polygons {
		if len(poly) == 0 {
			continue
		}
		x, y, a := ringCentroid(poly[0])
		cx += x * a
		cy += y * a
		total += a
	}
	if total == 0 {
		// degenerate geometry: fall back to the mean of the first ring
		if len(g.Polygons) > 0 && len(g.Polygons[0]) > 0 {
			ring := g.Polygons[0][0]
			var sx, sy float64
			for _, pt := range ring {
				sx += pt.Lon
				sy += pt.Lat
			}
			n := float64(len(ring))
			return Point{Lon: sx / n, Lat: sy / n}
		}
		return Point{}
	}
	return Point{Lon: cx / total, Lat: cy / total}
}

// ringCentroid computes the shoelace centroid and unsigned area of a ring.
func ringCentroid(ring Ring) (cx, cy, area float64) {
	var a, sx, sy float64
	for i := 0; i < len(ring)-1; i++ {
		p0, p1 := ring[i], ring[i+1]
		cross := p0.Lon*p1.Lat - p1.Lon*p0.Lat
		a += cross
		sx += (p0.Lon + p1.Lon) * cross
		sy += (p0.Lat + p1.Lat) * cross
	}
	if a == 0 {
		return 0, 0, 0
	}
	cx = sx / (3 * a)
	cy = sy / (3 * a)
	if a < 0 {
		a = -a
	}
	return cx, cy, a / 2
}
