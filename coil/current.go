// current.go
package coil

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Currents は各セグメントの電流（時刻 0 のスナップショット）
//
// 先頭セグメントは 1。以降は cos(2π f1・0 − l/λ), λ = c/f1,
// l はそれまでのセグメント長の累積。
func Currents(g Geometry, f1 float64) []float64 {
	lambda := C0 / f1
	const t = 0.0

	out := make([]float64, len(g.Segments))
	var l float64
	for i, seg := range g.Segments {
		if i == 0 {
			out[i] = 1
		} else {
			out[i] = math.Cos(2*math.Pi*f1*t - l/lambda)
		}
		l += r3.Norm(seg)
	}
	return out
}
