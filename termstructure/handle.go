package termstructure

// Handle is a rebindable reference to a term structure. Models hold a handle
// rather than the curve itself so market data can be swapped underneath them;
// observers registered on the handle are notified synchronously on relink so
// they can re-derive anything computed from the old curve.
//
// Handles are not safe for concurrent use. Callers must serialize relinking
// against any pricing that reads through the handle.
type Handle struct {
	ts        TermStructure
	observers []func()
}

// NewHandle returns a handle bound to ts, which may be nil. Queries through
// an unlinked handle fail with ErrNotLinked.
func NewHandle(ts TermStructure) *Handle {
	return &Handle{ts: ts}
}

// Link rebinds the handle and notifies every registered observer.
func (h *Handle) Link(ts TermStructure) {
	h.ts = ts
	for _, fn := range h.observers {
		fn()
	}
}

// Observe registers fn to be called whenever the handle is relinked.
func (h *Handle) Observe(fn func()) {
	h.observers = append(h.observers, fn)
}

// Term returns the currently linked term structure, or nil.
func (h *Handle) Term() TermStructure {
	return h.ts
}

// Handle implements TermStructure by delegation so it can be queried
// directly wherever a curve is expected.

func (h *Handle) Discount(t float64) (float64, error) {
	if h.ts == nil {
		return 0, ErrNotLinked
	}
	return h.ts.Discount(t)
}

func (h *Handle) Forward(t float64) (float64, error) {
	if h.ts == nil {
		return 0, ErrNotLinked
	}
	return h.ts.Forward(t)
}

func (h *Handle) MaxTime() float64 {
	if h.ts == nil {
		return 0
	}
	return h.ts.MaxTime()
}
