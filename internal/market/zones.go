package market

import (
	"sort"

	"github.com/profxlabs/fxterm/internal/domain"
)

// ZoneParams controls zone construction around a reference price. Offsets are
// fractional distances from the reference (one supply above and one demand
// below per offset), Strengths pair with Offsets by index, and BandWidth is
// the fractional thickness of each band.
type ZoneParams struct {
	Offsets   []float64
	Strengths []float64
	BandWidth float64
}

// Registry holds the fixed set of supply and demand zones built for one
// instrument session. Zones do not move after construction; only their
// Mitigated flag changes as price trades through them.
type Registry struct {
	zones []domain.Zone
}

// BuildZones constructs a Registry around ref. For each offset a supply band
// is centered at ref*(1+offset) and a demand band at ref*(1-offset), each
// BandWidth*ref thick. Zones are ordered supply bands descending strength
// first, then demand bands, matching construction order.
func BuildZones(ref float64, p ZoneParams) *Registry {
	half := ref * p.BandWidth / 2
	zones := make([]domain.Zone, 0, len(p.Offsets)*2)
	for i, off := range p.Offsets {
		strength := 0.5
		if i < len(p.Strengths) {
			strength = p.Strengths[i]
		}
		supply := ref * (1 + off)
		demand := ref * (1 - off)
		zones = append(zones,
			domain.Zone{Kind: domain.ZoneSupply, Top: supply + half, Bottom: supply - half, Strength: strength},
			domain.Zone{Kind: domain.ZoneDemand, Top: demand + half, Bottom: demand - half, Strength: strength},
		)
	}
	return &Registry{zones: zones}
}

// Zones returns a copy of all zones.
func (r *Registry) Zones() []domain.Zone {
	out := make([]domain.Zone, len(r.zones))
	copy(out, r.zones)
	return out
}

// Containing returns the zone whose band contains price, preferring the
// strongest when bands overlap. The second return is false when price sits
// outside every band.
func (r *Registry) Containing(price float64) (domain.Zone, bool) {
	var best domain.Zone
	found := false
	for _, z := range r.zones {
		if !z.Contains(price) {
			continue
		}
		if !found || z.Strength > best.Strength {
			best = z
			found = true
		}
	}
	return best, found
}

// Mitigate marks every zone containing price as mitigated and reports whether
// any flag changed.
func (r *Registry) Mitigate(price float64) bool {
	changed := false
	for i := range r.zones {
		if !r.zones[i].Mitigated && r.zones[i].Contains(price) {
			r.zones[i].Mitigated = true
			changed = true
		}
	}
	return changed
}

// NearestAbove returns the zone of the given kind whose bottom edge is the
// closest one strictly above price.
func (r *Registry) NearestAbove(price float64, kind domain.ZoneKind) (domain.Zone, bool) {
	candidates := r.ofKind(kind)
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Bottom < candidates[j].Bottom })
	for _, z := range candidates {
		if z.Bottom > price {
			return z, true
		}
	}
	return domain.Zone{}, false
}

// NearestBelow returns the zone of the given kind whose top edge is the
// closest one strictly below price.
func (r *Registry) NearestBelow(price float64, kind domain.ZoneKind) (domain.Zone, bool) {
	candidates := r.ofKind(kind)
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Top > candidates[j].Top })
	for _, z := range candidates {
		if z.Top < price {
			return z, true
		}
	}
	return domain.Zone{}, false
}

func (r *Registry) ofKind(kind domain.ZoneKind) []domain.Zone {
	out := make([]domain.Zone, 0, len(r.zones))
	for _, z := range r.zones {
		if z.Kind == kind {
			out = append(out, z)
		}
	}
	return out
}
