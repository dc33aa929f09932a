package geometry

import "math"

/*
Coordinate conventions for cylindrical grids: x is the axial coordinate,
y the radial coordinate and z the azimuthal angle. Shape containment tests
are expressed in Cartesian space, so cell centers on cylindrical grids are
mapped through CylindricalToCartesian before testing.
*/

func CylindricalToCartesian(cylY, cylZ float64) (cartY, cartZ float64) {
	cartY = cylY * math.Sin(cylZ)
	cartZ = cylY * math.Cos(cylZ)
	return
}

// CylindricalToCartesianVec3 maps a full cell-center position, passing the
// axial coordinate through unchanged.
func CylindricalToCartesianVec3(pos [3]float64) (posOut [3]float64) {
	posOut[0] = pos[0]
	posOut[1], posOut[2] = CylindricalToCartesian(pos[1], pos[2])
	return
}

func CartesianToCylindrical(cartY, cartZ float64) (cylY, cylZ float64) {
	cylY = math.Hypot(cartY, cartZ)
	cylZ = math.Atan2(cartY, cartZ)
	return
}

// SphericalPolar is the polar angle used by the spherical harmonic patch.
// The legacy form keeps the principal-branch arctangent, which folds
// quadrants II and III onto IV and I. Strict mode resolves the quadrant.
func SphericalPolar(cylX, cylY float64, strict bool) (phi float64) {
	if strict {
		phi = math.Atan2(cylY, cylX)
		return
	}
	phi = math.Atan(cylY / cylX)
	return
}
