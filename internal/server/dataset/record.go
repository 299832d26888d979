// Package dataset loads the per-barangay urban-risk indicator CSV and
// derives the figures the dashboard draws: city-wide summaries, top-N
// rankings, risk-level distributions, and GeoJSON for the choropleth layer.
// The dataset is read once at startup and is read-only afterwards.
package dataset

// Record is one barangay row of the indicator CSV.
type Record struct {
	PCode           string   // adm4_pcode, the choropleth join key
	Name            string   // human-readable barangay name
	RiskIndex       float64  // urban_risk_index
	RiskLabel       string   // "High Risk" / "Medium Risk" / "Low Risk"
	ClimateExposure float64  // climate_exposure_score
	InfraIndex      float64  // infra_index
	WealthIndex     float64  // rwi_mean (relative wealth index)
	Geometry        Geometry // barangay boundary, EPSG:4326
}

// Dataset is the loaded collection of barangay records.
type Dataset struct {
	records []Record
	byPCode map[string]int
}

func newDataset(records []Record) *Dataset {
	byPCode := make(map[string]int, len(records))
	for i, r := range records {
		byPCode[r.PCode] = i
	}
	return &Dataset{records: records, byPCode: byPCode}
}

// Len returns the number of usable rows.
func (d *Dataset) Len() int { return len(d.records) }

// Records returns all rows in file order. Callers must not mutate them.
func (d *Dataset) Records() []Record { return d.records }
