// Package arm models a fixed five-joint articulated arm as an ordered
// rigid chain: a yaw joint at the base and four pitch joints above it.
// Each node stores only its own local rotation; world poses are composed
// root to leaf on demand and never cached.
//
// Coordinate convention: Z is up and the arm extends along +X when all
// pitch angles are zero. Pitch is rotation about +Y, so positive pitch
// swings a link downward. Node rotations are stored in radians.
package arm

import (
	"sync"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"

	"github.com/armviz/armviz/spatialmath"
)

// Names of the five joint transform nodes, in chain order.
const (
	BaseYaw       = "base-yaw"
	ShoulderPitch = "shoulder-pitch"
	ElbowPitch    = "elbow-pitch"
	WristPitch    = "wrist-pitch"
	TipTilt       = "tip-tilt"
)

// JointSpec describes one revolute joint: the axis it rotates about and
// the fixed offset of its pivot from the parent joint, expressed in the
// parent's rotated frame.
type JointSpec struct {
	Name   string
	Axis   r3.Vector
	Offset r3.Vector
}

// LinkSpec describes the rigid segment extending from a joint's pivot:
// its length along the local forward axis and, for visualization only,
// its cross-section.
type LinkSpec struct {
	Length float64
	Width  float64
	Height float64
}

// JointAngles is the authoritative part of a pose: the four user-settable
// joint angles in degrees. The fifth angle (end-effector tilt) is always
// derived from these, never stored.
type JointAngles struct {
	J0 float64 `json:"j0"`
	J1 float64 `json:"j1"`
	J2 float64 `json:"j2"`
	J3 float64 `json:"j3"`
}

// HomePose is the configuration applied at chain construction, before any
// user interaction.
func HomePose() JointAngles {
	return JointAngles{J0: 0, J1: -60, J2: 20, J3: 30}
}

// NodePose is the world-frame pose of one joint pivot.
type NodePose struct {
	Name        string
	Point       r3.Vector
	Orientation quat.Number
}

// Chain is an ordered sequence of (JointSpec, LinkSpec) pairs rooted at a
// fixed base. The specs never change after construction; only the per-node
// local rotations vary.
type Chain struct {
	joints []JointSpec
	links  []LinkSpec

	mu        sync.RWMutex
	rotations []float64 // local rotation per joint, radians
}

// NewFiveJointChain builds the arm with its fixed geometry: a 120mm
// pedestal under the yaw joint, a 60mm column up to the shoulder, then
// 100mm, 80mm and 50mm pitch links, and a 40mm terminal link.
func NewFiveJointChain() *Chain {
	up := r3.Vector{Z: 1}
	pitch := r3.Vector{Y: 1}
	return &Chain{
		joints: []JointSpec{
			{Name: BaseYaw, Axis: up, Offset: r3.Vector{Z: 120}},
			{Name: ShoulderPitch, Axis: pitch, Offset: r3.Vector{Z: 60}},
			{Name: ElbowPitch, Axis: pitch, Offset: r3.Vector{X: 100}},
			{Name: WristPitch, Axis: pitch, Offset: r3.Vector{X: 80}},
			{Name: TipTilt, Axis: pitch, Offset: r3.Vector{X: 50}},
		},
		links: []LinkSpec{
			{Length: 60, Width: 40, Height: 40},
			{Length: 100, Width: 24, Height: 30},
			{Length: 80, Width: 20, Height: 26},
			{Length: 50, Width: 16, Height: 20},
			{Length: 40, Width: 12, Height: 16},
		},
		rotations: make([]float64, 5),
	}
}

// DoF returns the number of joints in the chain.
func (c *Chain) DoF() int {
	return len(c.joints)
}

// JointNames returns the node names in chain order.
func (c *Chain) JointNames() []string {
	names := make([]string, 0, len(c.joints))
	for _, j := range c.joints {
		names = append(names, j.Name)
	}
	return names
}

// Links returns the link specs in chain order.
func (c *Chain) Links() []LinkSpec {
	out := make([]LinkSpec, len(c.links))
	copy(out, c.links)
	return out
}

// SetRotations assigns every node's local rotation at once, in radians and
// chain order. A partial assignment is never observable.
func (c *Chain) SetRotations(radians []float64) error {
	if len(radians) != len(c.joints) {
		return errors.Errorf("given input length %d does not match chain DoF %d", len(radians), len(c.joints))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	copy(c.rotations, radians)
	return nil
}

// Rotations returns a snapshot of the current local rotations, in radians,
// keyed by node name.
func (c *Chain) Rotations() map[string]float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]float64, len(c.joints))
	for i, j := range c.joints {
		out[j.Name] = c.rotations[i]
	}
	return out
}

// rotationSnapshot returns the local rotations in chain order.
func (c *Chain) rotationSnapshot() []float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]float64, len(c.rotations))
	copy(out, c.rotations)
	return out
}

// WorldPoses composes the chain root to leaf and returns the world pose of
// every joint pivot. Rotating a proximal joint re-orients everything distal
// to it purely through this composition.
func (c *Chain) WorldPoses() []NodePose {
	rotations := c.rotationSnapshot()

	q := quat.Number{Real: 1}
	p := r3.Vector{}
	poses := make([]NodePose, 0, len(c.joints))
	for i, j := range c.joints {
		p = p.Add(spatialmath.QuatRotate(q, j.Offset))
		local := spatialmath.R4AA{Theta: rotations[i], RX: j.Axis.X, RY: j.Axis.Y, RZ: j.Axis.Z}.ToQuat()
		q = quat.Mul(q, local)
		poses = append(poses, NodePose{Name: j.Name, Point: p, Orientation: q})
	}
	return poses
}

// TipDirection returns the world-frame direction of the terminal link's
// forward axis.
func (c *Chain) TipDirection() r3.Vector {
	poses := c.WorldPoses()
	tip := poses[len(poses)-1]
	return spatialmath.QuatRotate(tip.Orientation, r3.Vector{X: 1})
}

// TipPosition returns the world-frame position of the very end of the
// terminal link.
func (c *Chain) TipPosition() r3.Vector {
	poses := c.WorldPoses()
	tip := poses[len(poses)-1]
	end := c.links[len(c.links)-1].Length
	return tip.Point.Add(spatialmath.QuatRotate(tip.Orientation, r3.Vector{X: end}))
}
