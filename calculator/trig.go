package calculator

import (
	"math"

	calcerr "gocalc/internal/errors"
)

// AngleMode selects how trig inputs and inverse-trig outputs are
// interpreted.
type AngleMode int

const (
	Degrees AngleMode = iota
	Radians
)

func (m AngleMode) String() string {
	if m == Radians {
		return "Radians"
	}
	return "Degrees"
}

// AngleConverter holds the angle-mode flag and implements the six trig
// operations against it.  Use NewAngleConverter; the zero value is in
// radian mode.
type AngleConverter struct {
	degrees bool
}

// NewAngleConverter returns a converter in degree mode.
func NewAngleConverter() AngleConverter {
	return AngleConverter{degrees: true}
}

// SetDegrees switches between degree (true) and radian (false) mode.
func (c *AngleConverter) SetDegrees(on bool) { c.degrees = on }

// Degrees reports whether the converter is in degree mode.
func (c *AngleConverter) Degrees() bool { return c.degrees }

// Mode returns the active AngleMode.
func (c *AngleConverter) Mode() AngleMode {
	if c.degrees {
		return Degrees
	}
	return Radians
}

func (c *AngleConverter) in(angle float64) float64 {
	if c.degrees {
		return angle * math.Pi / 180
	}
	return angle
}

func (c *AngleConverter) out(rad float64) float64 {
	if c.degrees {
		return rad * 180 / math.Pi
	}
	return rad
}

// Sin returns the sine of angle in the active mode.
func (c *AngleConverter) Sin(angle float64) float64 { return math.Sin(c.in(angle)) }

// Cos returns the cosine of angle in the active mode.
func (c *AngleConverter) Cos(angle float64) float64 { return math.Cos(c.in(angle)) }

// Tan returns the tangent of angle in the active mode.
func (c *AngleConverter) Tan(angle float64) float64 { return math.Tan(c.in(angle)) }

// Asin returns the arcsine of v in the active mode.  v must lie in
// [-1, 1]; otherwise it returns 0 and a *DomainError.
func (c *AngleConverter) Asin(v float64) (float64, error) {
	if !inUnitRange(v) {
		return 0, &calcerr.DomainError{Func: "asin", Value: v}
	}
	return c.out(math.Asin(v)), nil
}

// Acos returns the arccosine of v in the active mode.  v must lie in
// [-1, 1]; otherwise it returns 0 and a *DomainError.
func (c *AngleConverter) Acos(v float64) (float64, error) {
	if !inUnitRange(v) {
		return 0, &calcerr.DomainError{Func: "acos", Value: v}
	}
	return c.out(math.Acos(v)), nil
}

// Atan returns the arctangent of v in the active mode.
func (c *AngleConverter) Atan(v float64) float64 { return c.out(math.Atan(v)) }

// inUnitRange is false for NaN.
func inUnitRange(v float64) bool {
	return v >= -1 && v <= 1
}
