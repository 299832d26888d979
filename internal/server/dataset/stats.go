package dataset

import (
	"sort"

	"github.com/klimata/riskboard/internal/common"
)

// Summary holds the city-wide KPI figures shown on the overview page.
type Summary struct {
	Barangays  int     `json:"barangays"`
	AvgRisk    float64 `json:"avg_risk"`
	AvgInfra   float64 `json:"avg_infra"`
	AvgWealth  float64 `json:"avg_wealth"`
	AvgClimate float64 `json:"avg_climate"`
}

// Summary computes the city means across all loaded barangays.
func (d *Dataset) Summary() Summary {
	var s Summary
	s.Barangays = len(d.records)
	if s.Barangays == 0 {
		return s
	}
	for _, r := range d.records {
		s.AvgRisk += r.RiskIndex
		s.AvgInfra += r.InfraIndex
		s.AvgWealth += r.WealthIndex
		s.AvgClimate += r.ClimateExposure
	}
	n := float64(s.Barangays)
	s.AvgRisk /= n
	s.AvgInfra /= n
	s.AvgWealth /= n
	s.AvgClimate /= n
	return s
}

// Ranked is one entry of the top-at-risk chart.
type Ranked struct {
	PCode     string  `json:"pcode"`
	Name      string  `json:"name"`
	RiskIndex float64 `json:"risk_index"`
}

// TopAtRisk returns the n barangays with the highest risk index, descending.
// Ties break on pcode so the ordering is stable across requests.
func (d *Dataset) TopAtRisk(n int) []Ranked {
	ranked := make([]Ranked, 0, len(d.records))
	for _, r := range d.records {
		ranked = append(ranked, Ranked{PCode: r.PCode, Name: r.Name, RiskIndex: r.RiskIndex})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].RiskIndex != ranked[j].RiskIndex {
			return ranked[i].RiskIndex > ranked[j].RiskIndex
		}
		return ranked[i].PCode < ranked[j].PCode
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// LabelCount is one slice of the risk-level distribution pie.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// RiskDistribution counts barangays per risk label, most frequent first.
func (d *Dataset) RiskDistribution() []LabelCount {
	counts := map[string]int{}
	for _, r := range d.records {
		counts[r.RiskLabel]++
	}
	out := make([]LabelCount, 0, len(counts))
	for label, count := range counts {
		out = append(out, LabelCount{Label: label, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// ByPCode returns the record for one barangay.
func (d *Dataset) ByPCode(pcode string) (*Record, error) {
	i, ok := d.byPCode[pcode]
	if !ok {
		return nil, common.ErrorBarangayNotFound
	}
	return &d.records[i], nil
}

// Metric is one row of the barangay-vs-city comparison chart.
type Metric struct {
	Name        string  `json:"name"`
	Barangay    float64 `json:"barangay"`
	CityAverage float64 `json:"city_average"`
}

// Compare builds the deep-dive comparison for one barangay against the city
// averages, in the chart's display order.
func (d *Dataset) Compare(pcode string) ([]Metric, error) {
	r, err := d.ByPCode(pcode)
	if err != nil {
		return nil, err
	}
	s := d.Summary()
	return []Metric{
		{Name: "Climate Exposure", Barangay: r.ClimateExposure, CityAverage: s.AvgClimate},
		{Name: "Infrastructure Index", Barangay: r.InfraIndex, CityAverage: s.AvgInfra},
		{Name: "Relative Wealth", Barangay: r.WealthIndex, CityAverage: s.AvgWealth},
	}, nil
}
