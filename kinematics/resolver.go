// Package kinematics owns the derivation of the arm's fifth joint angle
// and the application of complete five-angle poses onto the chain.
package kinematics

import (
	"sync"

	"github.com/edaniels/golog"

	"github.com/armviz/armviz/arm"
	"github.com/armviz/armviz/utils"
)

// DeriveTipTilt returns the tilt angle, in degrees, that joint 4 must
// contribute so the terminal link points straight down. The three pitch
// joints share one rotation axis and their rotations compose through the
// chain's parent-child nesting, so the net pitch at the tip of link 3 is
// the arithmetic sum j1+j2+j3; the tilt is the complement to 90 degrees.
// The relation is exact for any inputs and the result is never clamped.
func DeriveTipTilt(ja arm.JointAngles) float64 {
	return 90 - (ja.J1 + ja.J2 + ja.J3)
}

// Resolve expands the four authoritative angles into the complete
// five-angle pose, in degrees and chain order.
func Resolve(ja arm.JointAngles) [5]float64 {
	return [5]float64{ja.J0, ja.J1, ja.J2, ja.J3, DeriveTipTilt(ja)}
}

// Resolver applies poses onto a chain's transform nodes. Until a chain is
// bound it is uninitialized and pose updates are silently ignored; once
// bound, every update is a total, idempotent assignment of all five node
// rotations. The resolver is the only writer of the chain's rotations.
type Resolver struct {
	logger golog.Logger

	mu      sync.Mutex
	chain   *arm.Chain
	current arm.JointAngles
}

// NewResolver returns a resolver with no chain bound.
func NewResolver(logger golog.Logger) *Resolver {
	return &Resolver{logger: logger}
}

// Bind attaches the chain and applies the full home pose so the terminal
// link is vertical from the very first rendered frame.
func (r *Resolver) Bind(c *arm.Chain) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chain = c
	r.applyLocked(arm.HomePose())
}

// Unbind detaches the chain, returning the resolver to its uninitialized
// state. Later updates are ignored until another Bind.
func (r *Resolver) Unbind() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chain = nil
}

// Ready reports whether a chain is bound.
func (r *Resolver) Ready() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.chain != nil
}

// Apply resolves the four-angle update into a five-angle pose and writes
// each joint's local rotation, in radians, onto that joint's own node.
// Updates arriving before a chain is bound are a harmless no-op.
func (r *Resolver) Apply(ja arm.JointAngles) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.chain == nil {
		r.logger.Debugw("pose update before chain construction, ignoring", "pose", ja)
		return
	}
	r.applyLocked(ja)
}

func (r *Resolver) applyLocked(ja arm.JointAngles) {
	five := Resolve(ja)
	radians := make([]float64, len(five))
	for i, deg := range five {
		radians[i] = utils.DegToRad(deg)
	}
	if err := r.chain.SetRotations(radians); err != nil {
		// the chain's DoF is fixed at five, so this cannot happen
		r.logger.Errorw("failed to apply pose", "error", err)
		return
	}
	r.current = ja
}

// Current returns the authoritative angles of the last applied pose. The
// boolean is false while no chain is bound.
func (r *Resolver) Current() (arm.JointAngles, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current, r.chain != nil
}
