package market

// EMAPair maintains a fast and a slow exponential moving average over the
// same price series, updated incrementally per tick. The fast alpha must
// exceed the slow alpha so the fast average reacts quicker.
//
// Both averages are initialized to the first observed price, so there is no
// warm-up transient beyond that.
type EMAPair struct {
	fastAlpha float64
	slowAlpha float64
	fast      float64
	slow      float64
	primed    bool
}

// NewEMAPair creates an EMAPair with the given smoothing factors.
func NewEMAPair(fastAlpha, slowAlpha float64) *EMAPair {
	return &EMAPair{fastAlpha: fastAlpha, slowAlpha: slowAlpha}
}

// Update folds price into both averages and returns the new values. The
// update is a pure function of (previous state, price): identical inputs
// produce bit-identical outputs.
func (e *EMAPair) Update(price float64) (fast, slow float64) {
	if !e.primed {
		e.fast = price
		e.slow = price
		e.primed = true
		return e.fast, e.slow
	}
	e.fast = price*e.fastAlpha + e.fast*(1-e.fastAlpha)
	e.slow = price*e.slowAlpha + e.slow*(1-e.slowAlpha)
	return e.fast, e.slow
}

// Values returns the current averages without updating them.
func (e *EMAPair) Values() (fast, slow float64) {
	return e.fast, e.slow
}
