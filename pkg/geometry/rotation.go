package geometry

import (
	"math"
)

// Mat3 is a 3x3 row-major matrix, used for rotations.
type Mat3 [3][3]float64

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// MulVec applies the matrix to a vector.
func (m Mat3) MulVec(v Point3D) Point3D {
	return Point3D{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Mul returns the matrix product m * other.
func (m Mat3) Mul(other Mat3) Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				out[i][j] += m[i][k] * other[k][j]
			}
		}
	}
	return out
}

// Transpose returns the transposed matrix. For a rotation this is the inverse.
func (m Mat3) Transpose() Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[j][i]
		}
	}
	return out
}

// Rodrigues converts an axis-angle rotation vector to a rotation matrix.
// The vector's direction is the rotation axis and its length the angle in
// radians. A zero vector yields the identity.
func Rodrigues(rvec Point3D) Mat3 {
	theta := rvec.Norm()
	if theta < 1e-12 {
		return Identity3()
	}

	axis := rvec.Scale(1 / theta)
	c := math.Cos(theta)
	s := math.Sin(theta)
	t := 1 - c
	x, y, z := axis.X, axis.Y, axis.Z

	return Mat3{
		{t*x*x + c, t*x*y - s*z, t*x*z + s*y},
		{t*x*y + s*z, t*y*y + c, t*y*z - s*x},
		{t*x*z - s*y, t*y*z + s*x, t*z*z + c},
	}
}

// AxisAngle converts a rotation matrix back to an axis-angle vector,
// inverting Rodrigues.
func (m Mat3) AxisAngle() Point3D {
	trace := m[0][0] + m[1][1] + m[2][2]
	cosTheta := (trace - 1) / 2
	if cosTheta > 1 {
		cosTheta = 1
	} else if cosTheta < -1 {
		cosTheta = -1
	}
	theta := math.Acos(cosTheta)

	if theta < 1e-12 {
		return Point3D{}
	}

	if math.Pi-theta < 1e-6 {
		// Near 180 degrees the antisymmetric part vanishes; recover the
		// axis from the diagonal instead.
		x := math.Sqrt(math.Max(0, (m[0][0]+1)/2))
		y := math.Sqrt(math.Max(0, (m[1][1]+1)/2))
		z := math.Sqrt(math.Max(0, (m[2][2]+1)/2))
		if m[0][1] < 0 {
			y = -y
		}
		if m[0][2] < 0 {
			z = -z
		}
		return Point3D{X: x, Y: y, Z: z}.Scale(theta)
	}

	k := theta / (2 * math.Sin(theta))
	return Point3D{
		X: (m[2][1] - m[1][2]) * k,
		Y: (m[0][2] - m[2][0]) * k,
		Z: (m[1][0] - m[0][1]) * k,
	}
}

// EulerDegrees extracts roll, pitch and yaw angles in degrees from a
// rotation matrix (X-Y-Z convention, camera frame).
func (m Mat3) EulerDegrees() (roll, pitch, yaw float64) {
	sy := math.Sqrt(m[0][0]*m[0][0] + m[1][0]*m[1][0])

	if sy > 1e-6 {
		roll = math.Atan2(m[2][1], m[2][2])
		pitch = math.Atan2(-m[2][0], sy)
		yaw = math.Atan2(m[1][0], m[0][0])
	} else {
		// Gimbal lock: yaw is unobservable, report it as zero.
		roll = math.Atan2(-m[1][2], m[1][1])
		pitch = math.Atan2(-m[2][0], sy)
		yaw = 0
	}

	deg := 180 / math.Pi
	return roll * deg, pitch * deg, yaw * deg
}
