package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWKT_Polygon(t *testing.T) {
	g, err := ParseWKT("POLYGON ((122.5 10.7, 122.6 10.7, 122.6 10.8, 122.5 10.7))")
	require.NoError(t, err)
	require.Len(t, g.Polygons, 1)
	require.Len(t, g.Polygons[0], 1)
	assert.Equal(t, Point{Lon: 122.5, Lat: 10.7}, g.Polygons[0][0][0])
	assert.Len(t, g.Polygons[0][0], 4)
}

func TestParseWKT_PolygonWithHole(t *testing.T) {
	g, err := ParseWKT(`POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0), (2 2, 4 2, 4 4, 2 2))`)
	require.NoError(t, err)
	require.Len(t, g.Polygons, 1)
	assert.Len(t, g.Polygons[0], 2)
}

func TestParseWKT_MultiPolygon(t *testing.T) {
	g, err := ParseWKT(`MULTIPOLYGON (((0 0, 1 0, 1 1, 0 0)), ((5 5, 6 5, 6 6, 5 5)))`)
	require.NoError(t, err)
	assert.Len(t, g.Polygons, 2)
}

func TestParseWKT_ScientificNotationAndNegatives(t *testing.T) {
	g, err := ParseWKT("POLYGON ((-1.5e1 2, 1E1 2, 10 3, -1.5e1 2))")
	require.NoError(t, err)
	assert.Equal(t, Point{Lon: -15, Lat: 2}, g.Polygons[0][0][0])
}

func TestParseWKT_Malformed(t *testing.T) {
	bad := []string{
		"",
		"POINT (1 2)",
		"LINESTRING (0 0, 1 1)",
		"POLYGON ((0 0, 1 1))",                        // too few points
		"POLYGON ((0 0, 1 0, 1 1, 0 0)",               // unbalanced parens
		"POLYGON ((0 0, 1 0, 1 1, 0 0)) extra",        // trailing data
		"POLYGON ((a b, 1 0, 1 1, 0 0))",              // not numbers
		"MULTIPOLYGON ((0 0, 1 0, 1 1, 0 0))",         // missing nesting level
		"not wkt at all",
	}
	for _, s := range bad {
		_, err := ParseWKT(s)
		assert.Error(t, err, "input: %q", s)
	}
}

func TestCentroid_Square(t *testing.T) {
	g, err := ParseWKT("POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))")
	require.NoError(t, err)

	c := g.Centroid()
	assert.InDelta(t, 1.0, c.Lon, 1e-9)
	assert.InDelta(t, 1.0, c.Lat, 1e-9)
}

func TestCentroid_MultiPolygonWeightsByArea(t *testing.T) {
	// a large square around (1,1) and a tiny one far away: the centroid
	// must stay close to the large square
	g, err := ParseWKT(`MULTIPOLYGON (((0 0, 2 0, 2 2, 0 2, 0 0)), ((100 100, 100.01 100, 100.01 100.01, 100 100.01, 100 100)))`)
	require.NoError(t, err)

	c := g.Centroid()
	assert.InDelta(t, 1.0, c.Lon, 0.01)
	assert.InDelta(t, 1.0, c.Lat, 0.01)
}
