package utils

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestDegRadConversions(t *testing.T) {
	test.That(t, DegToRad(0), test.ShouldEqual, 0)
	test.That(t, DegToRad(180), test.ShouldAlmostEqual, math.Pi)
	test.That(t, DegToRad(-90), test.ShouldAlmostEqual, -math.Pi/2)
	test.That(t, RadToDeg(math.Pi), test.ShouldAlmostEqual, 180)
	test.That(t, RadToDeg(DegToRad(73.5)), test.ShouldAlmostEqual, 73.5)
}

func TestModAngDeg(t *testing.T) {
	test.That(t, ModAngDeg(0), test.ShouldEqual, 0)
	test.That(t, ModAngDeg(360), test.ShouldEqual, 0)
	test.That(t, ModAngDeg(370), test.ShouldAlmostEqual, 10)
	test.That(t, ModAngDeg(-10), test.ShouldAlmostEqual, 350)
	test.That(t, ModAngDeg(-370), test.ShouldAlmostEqual, 350)
	test.That(t, ModAngDeg(725), test.ShouldAlmostEqual, 5)
}

func TestClamp(t *testing.T) {
	test.That(t, Clamp(5, -90, 90), test.ShouldEqual, 5)
	test.That(t, Clamp(95, -90, 90), test.ShouldEqual, 90)
	test.That(t, Clamp(-100, -90, 90), test.ShouldEqual, -90)
	test.That(t, Clamp(-90, -90, 90), test.ShouldEqual, -90)
}

func TestFloat64AlmostEqual(t *testing.T) {
	test.That(t, Float64AlmostEqual(1, 1+1e-10, 1e-9), test.ShouldBeTrue)
	test.That(t, Float64AlmostEqual(1, 1.1, 1e-9), test.ShouldBeFalse)
}
