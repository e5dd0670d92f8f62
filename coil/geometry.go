// geometry.go
package coil

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Geometry はコイル曲線のサンプル点とセグメント
type Geometry struct {
	Points   []r3.Vec // s+1 点
	Segments []r3.Vec // 隣接点の差 (s 本)
	Mids     []r3.Vec // セグメント中点
}

// curvePoint は t における曲線上の点
//
//	x = R cos(t/N1) cos t, y = R cos(t/N1) sin t, z = R sin(t/N1)
func curvePoint(R, n1, t float64) r3.Vec {
	sa, ca := math.Sincos(t / n1)
	st, ct := math.Sincos(t)
	return r3.Vec{X: R * ca * ct, Y: R * ca * st, Z: R * sa}
}

// 巻 k (0 始まり) の開始パラメータ
func turnStart(p Params, k int) float64 {
	return -float64(p.Turns)*math.Pi + 2*math.Pi*float64(k)
}

// 巻 k の中央パラメータ
func turnMid(p Params, k int) float64 {
	return turnStart(p, k) + math.Pi
}

// paramStep 2Nπ/s
func paramStep(p Params) float64 {
	return 2 * float64(p.Turns) * math.Pi / float64(p.Segments)
}

// Generate は [-Nπ, Nπ] を s 等分した曲線を作る
func Generate(p Params) (Geometry, error) {
	dt := paramStep(p)
	t0 := -float64(p.Turns) * math.Pi

	g := Geometry{
		Points:   make([]r3.Vec, p.Segments+1),
		Segments: make([]r3.Vec, p.Segments),
		Mids:     make([]r3.Vec, p.Segments),
	}
	for i := range g.Points {
		g.Points[i] = curvePoint(p.Radius, p.Taper, t0+float64(i)*dt)
	}

	// 長さ 0 のセグメントは設定ミス
	tol := 1e-12 * p.Radius
	for i := range g.Segments {
		seg := r3.Sub(g.Points[i+1], g.Points[i])
		if r3.Norm(seg) <= tol {
			return Geometry{}, fmt.Errorf("%w: segment %d has zero length (increase segments or check taper)", ErrInvalidGeometry, i)
		}
		g.Segments[i] = seg
		g.Mids[i] = r3.Scale(0.5, r3.Add(g.Points[i+1], g.Points[i]))
	}
	return g, nil
}
