package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/text/encoding/charmap"

	"github.com/klimata/riskboard/internal/common"
)

// Column names as they appear in the KLIMATA export.
const (
	colPCode    = "adm4_pcode"
	colName     = "brgy_names-ILOILO.location.adm4_en"
	colGeometry = "brgy_names-ILOILO.geometry"
	colRisk     = "urban_risk_index"
	colLabel    = "risk_label"
	colClimate  = "climate_exposure_score"
	colInfra    = "infra_index"
	colWealth   = "rwi_mean"
)

// Load reads the indicator CSV from r. encoding selects the byte encoding of
// the file: "latin1" (the KLIMATA export default) or anything else for
// UTF-8. Rows whose geometry does not parse or whose risk index is missing
// are dropped, the same cleaning the source data receives upstream; a file
// with no surviving rows is an error.
func Load(r io.Reader, encoding string) (*Dataset, error) {
	if encoding == "latin1" {
		r = charmap.ISO8859_1.NewDecoder().Reader(r)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged exports happen; validate per-field instead

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, required := range []string{colPCode, colName, colGeometry, colRisk} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("CSV is missing required column %q", required)
		}
	}

	field := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var records []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		risk, err := strconv.ParseFloat(field(row, colRisk), 64)
		if err != nil {
			continue // dropna: no usable risk index
		}
		geom, err := ParseWKT(field(row, colGeometry))
		if err != nil {
			continue // dropna: no usable geometry
		}

		records = append(records, Record{
			PCode:           field(row, colPCode),
			Name:            field(row, colName),
			RiskIndex:       risk,
			RiskLabel:       field(row, colLabel),
			ClimateExposure: parseFloatOrZero(field(row, colClimate)),
			InfraIndex:      parseFloatOrZero(field(row, colInfra)),
			WealthIndex:     parseFloatOrZero(field(row, colWealth)),
			Geometry:        geom,
		})
	}

	if len(records) == 0 {
		return nil, common.ErrorEmptyDataset
	}
	return newDataset(records), nil
}

func parseFloatOrZero(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
