package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger so that named rolls leave an audit trail.
// Roller is itself a Source, so it can be handed to anything that needs one.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs named rolls to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	if src == nil || logger == nil {
		panic("dice.NewLoggedRoller: src and logger must not be nil")
	}
	return &Roller{src: src, logger: logger}
}

// Intn delegates to the wrapped Source.
func (r *Roller) Intn(n int) int { return r.src.Intn(n) }

// Float64 delegates to the wrapped Source.
func (r *Roller) Float64() float64 { return r.src.Float64() }

// Check rolls Chance(p) and logs the outcome at debug level under name.
//
// Postcondition: result logged; returns the same value Chance would.
func (r *Roller) Check(name string, p float64) bool {
	hit := Chance(r.src, p)
	r.logger.Debug("chance roll",
		zap.String("roll", name),
		zap.Float64("probability", p),
		zap.Bool("hit", hit),
	)
	return hit
}
