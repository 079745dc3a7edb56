package arm

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/armviz/armviz/spatialmath"
	"github.com/armviz/armviz/utils"
)

func TestChainShape(t *testing.T) {
	c := NewFiveJointChain()
	test.That(t, c.DoF(), test.ShouldEqual, 5)
	test.That(t, c.JointNames(), test.ShouldResemble,
		[]string{BaseYaw, ShoulderPitch, ElbowPitch, WristPitch, TipTilt})
	test.That(t, c.Links(), test.ShouldHaveLength, 5)
}

func TestSetRotations(t *testing.T) {
	c := NewFiveJointChain()

	err := c.SetRotations([]float64{0, 0, 0})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "does not match chain DoF")

	err = c.SetRotations([]float64{0.1, 0.2, 0.3, 0.4, 0.5})
	test.That(t, err, test.ShouldBeNil)
	rot := c.Rotations()
	test.That(t, rot[BaseYaw], test.ShouldAlmostEqual, 0.1)
	test.That(t, rot[TipTilt], test.ShouldAlmostEqual, 0.5)
}

func TestWorldPosesZero(t *testing.T) {
	c := NewFiveJointChain()
	poses := c.WorldPoses()
	test.That(t, poses, test.ShouldHaveLength, 5)
	test.That(t, spatialmath.R3VectorAlmostEqual(poses[0].Point, r3.Vector{Z: 120}, 1e-9), test.ShouldBeTrue)
	test.That(t, spatialmath.R3VectorAlmostEqual(poses[1].Point, r3.Vector{Z: 180}, 1e-9), test.ShouldBeTrue)
	test.That(t, spatialmath.R3VectorAlmostEqual(poses[2].Point, r3.Vector{X: 100, Z: 180}, 1e-9), test.ShouldBeTrue)
	test.That(t, spatialmath.R3VectorAlmostEqual(poses[3].Point, r3.Vector{X: 180, Z: 180}, 1e-9), test.ShouldBeTrue)
	test.That(t, spatialmath.R3VectorAlmostEqual(poses[4].Point, r3.Vector{X: 230, Z: 180}, 1e-9), test.ShouldBeTrue)

	test.That(t, spatialmath.R3VectorAlmostEqual(c.TipDirection(), r3.Vector{X: 1}, 1e-9), test.ShouldBeTrue)
	test.That(t, spatialmath.R3VectorAlmostEqual(c.TipPosition(), r3.Vector{X: 270, Z: 180}, 1e-9), test.ShouldBeTrue)
}

func TestProximalRotationMovesDistalNodes(t *testing.T) {
	c := NewFiveJointChain()

	// pitch the shoulder down 90 degrees; everything distal folds with it
	err := c.SetRotations([]float64{0, math.Pi / 2, 0, 0, 0})
	test.That(t, err, test.ShouldBeNil)
	poses := c.WorldPoses()
	test.That(t, spatialmath.R3VectorAlmostEqual(poses[2].Point, r3.Vector{Z: 80}, 1e-9), test.ShouldBeTrue)
	test.That(t, spatialmath.R3VectorAlmostEqual(poses[4].Point, r3.Vector{Z: -50}, 1e-9), test.ShouldBeTrue)
	test.That(t, spatialmath.R3VectorAlmostEqual(c.TipDirection(), r3.Vector{Z: -1}, 1e-9), test.ShouldBeTrue)

	// yaw the base 90 degrees; the folded arm swings as a unit
	err = c.SetRotations([]float64{math.Pi / 2, 0, 0, 0, 0})
	test.That(t, err, test.ShouldBeNil)
	poses = c.WorldPoses()
	test.That(t, spatialmath.R3VectorAlmostEqual(poses[4].Point, r3.Vector{Y: 230, Z: 180}, 1e-9), test.ShouldBeTrue)
	test.That(t, spatialmath.R3VectorAlmostEqual(c.TipDirection(), r3.Vector{Y: 1}, 1e-9), test.ShouldBeTrue)
}

func TestPitchSumsAcrossJoints(t *testing.T) {
	c := NewFiveJointChain()

	// three 30 degree pitches compose to 90: the tip points straight down
	third := utils.DegToRad(30)
	err := c.SetRotations([]float64{0, third, third, third, 0})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.R3VectorAlmostEqual(c.TipDirection(), r3.Vector{Z: -1}, 1e-9), test.ShouldBeTrue)
}

func TestHomePose(t *testing.T) {
	home := HomePose()
	test.That(t, home.J0, test.ShouldEqual, 0)
	test.That(t, home.J1, test.ShouldEqual, -60)
	test.That(t, home.J2, test.ShouldEqual, 20)
	test.That(t, home.J3, test.ShouldEqual, 30)
}
