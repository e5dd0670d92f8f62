// arclength.go
package coil

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/spatial/r3"
)

// 1 区間あたりの Gauss-Legendre 点数
const arcQuadPoints = 64

// Integrator は 1 変数関数の定積分
type Integrator func(f func(float64) float64, a, b float64) float64

// GaussLegendre は gonum の固定点求積
func GaussLegendre(f func(float64) float64, a, b float64) float64 {
	return quad.Fixed(f, a, b, arcQuadPoints, nil, 0)
}

// tangent は曲線の接ベクトル（解析微分）
func tangent(R, n1, t float64) r3.Vec {
	sa, ca := math.Sincos(t / n1)
	st, ct := math.Sincos(t)
	return r3.Vec{
		X: R * (-sa/n1*ct - ca*st),
		Y: R * (-sa/n1*st + ca*ct),
		Z: R / n1 * ca,
	}
}

// ArcLength は t ∈ [a, b] のテーパ付き球面らせんの長さ
func ArcLength(integrate Integrator, R, n1, a, b float64) float64 {
	if integrate == nil {
		integrate = GaussLegendre
	}
	speed := func(t float64) float64 {
		return r3.Norm(tangent(R, n1, t))
	}
	return integrate(speed, a, b)
}

// TurnLengths は各巻（幅 2π）の線長
func TurnLengths(integrate Integrator, p Params) []float64 {
	out := make([]float64, p.Turns)
	for k := range out {
		a := turnStart(p, k)
		out[k] = ArcLength(integrate, p.Radius, p.Taper, a, a+2*math.Pi)
	}
	return out
}
