// flux.go
package coil

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// TurnSurface は巻ごとの傾いた面（格子の xy 断面上のマスク付き）
type TurnSurface struct {
	Turn   int
	ZO     float64   // 中央パラメータでの z
	Radius float64   // 中央パラメータでの局所半径 |R cos(t/N1)|
	Mask   []bool    // 列 (i, j) が巻の内側か（i*n + j）
	Z1     []float64 // 列ごとの面の高さ（Mask が true の列のみ有効）
}

// TurnResult は巻ごとのインダクタンス
type TurnResult struct {
	Flux       float64 // 巻を貫く磁束 [Wb]
	Current    float64 // 巻中央セグメントの電流
	Inductance float64 // Flux / Current [H]
	Internal   float64 // 内部インダクタンス μ0 l/(8π) [H]
	Clamped    int     // z 方向に括れず最上層を使った列数
}

func mod2Pi(x float64) float64 {
	m := math.Mod(x, 2*math.Pi)
	if m < 0 {
		m += 2 * math.Pi
	}
	return m
}

// turnParamAt は巻 k の中で方位角 phi に来る曲線パラメータ t。
// cos(t/N1) < 0 の区間では点は t+π の方位に来る。
func turnParamAt(p Params, k int, phi float64) float64 {
	ts := turnStart(p, k)
	t1 := ts + mod2Pi(phi-ts)
	t2 := ts + mod2Pi(phi+math.Pi-ts)
	c1 := math.Cos(t1 / p.Taper)
	c2 := math.Cos(t2 / p.Taper)

	ok1, ok2 := c1 >= 0, c2 < 0
	if ok1 != ok2 {
		if ok1 {
			return t1
		}
		return t2
	}
	if math.Abs(c1) >= math.Abs(c2) {
		return t1
	}
	return t2
}

// NewTurnSurface は巻 k の面とマスクを作る
func NewTurnSurface(p Params, grid Grid, k int) TurnSurface {
	n := grid.Len()
	tm := turnMid(p, k)
	ts := TurnSurface{
		Turn:   k,
		ZO:     p.Radius * math.Sin(tm/p.Taper),
		Radius: math.Abs(p.Radius * math.Cos(tm/p.Taper)),
		Mask:   make([]bool, n*n),
		Z1:     make([]float64, n*n),
	}
	for i, x := range grid.Coords {
		for j, y := range grid.Coords {
			rho := math.Hypot(x, y)
			t := turnParamAt(p, k, math.Atan2(y, x))
			sa, ca := math.Sincos(t / p.Taper)
			rc := math.Abs(p.Radius * ca)
			if rc <= p.WireRadius {
				continue
			}
			lim := rc - p.WireRadius
			if x*x+y*y > lim*lim {
				continue
			}
			zb := p.Radius * sa
			ts.Mask[i*n+j] = true
			ts.Z1[i*n+j] = ts.ZO + (zb-ts.ZO)*rho/rc
		}
	}
	return ts
}

// Flux は面上の Bz を列ごとに拾って面積 step^2 を掛けて足す。
// z1 以上の最初の z サンプルを使う。無ければ最上層（Clamped に計上）。
func (ts TurnSurface) Flux(f *Field) (flux float64, clamped int) {
	grid := f.Grid
	n := grid.Len()
	area := grid.Step * grid.Step
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if !ts.Mask[i*n+j] {
				continue
			}
			kz := sort.SearchFloat64s(grid.Coords, ts.Z1[i*n+j])
			if kz >= n {
				kz = n - 1
				clamped++
			}
			flux += f.At(i, j, kz) * area
		}
	}
	return flux, clamped
}

// InternalInductance は線長 l の内部インダクタンス
func InternalInductance(l float64) float64 {
	return Mu0 * l / (8 * math.Pi)
}

// IntegrateFlux は全巻の磁束と巻ごとのインダクタンス
func IntegrateFlux(ctx context.Context, p Params, f *Field, cur, lengths []float64, workers int) ([]TurnResult, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	m := p.SegmentsPerTurn()
	out := make([]TurnResult, p.Turns)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for k := 0; k < p.Turns; k++ {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ts := NewTurnSurface(p, f.Grid, k)
			flux, clamped := ts.Flux(f)

			i := cur[k*m+m/2]
			if math.Abs(i) < 1e-12 {
				return fmt.Errorf("%w: turn %d mid current is zero", ErrNonPhysical, k)
			}
			out[k] = TurnResult{
				Flux:       flux,
				Current:    i,
				Inductance: flux / i,
				Internal:   InternalInductance(lengths[k]),
				Clamped:    clamped,
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
