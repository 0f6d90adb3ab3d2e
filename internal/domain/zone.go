package domain

// ZoneKind distinguishes supply (resistance) from demand (support) bands.
type ZoneKind string

const (
	ZoneSupply ZoneKind = "SUPPLY"
	ZoneDemand ZoneKind = "DEMAND"
)

// Zone is a static supply/demand price band. Zones are created once per
// instrument session from the then-current price and never mutated; the
// Mitigated flag is informational only.
type Zone struct {
	Kind      ZoneKind `json:"kind"`
	Top       float64  `json:"top"`    // Top >= Bottom
	Bottom    float64  `json:"bottom"`
	Strength  float64  `json:"strength"` // in [0, 1]
	Mitigated bool     `json:"mitigated"`
}

// Contains reports whether price lies within [Bottom, Top].
func (z Zone) Contains(price float64) bool {
	return price >= z.Bottom && price <= z.Top
}
