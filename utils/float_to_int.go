// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 clamps x to [-1,1] and scales it to 16-bit PCM. Positive
// full scale maps to 32767 so it cannot overflow.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	return int16(x * 32767.0)
}
