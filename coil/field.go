// field.go
package coil

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"
)

// Grid は立方体格子 [-ext, ext]^3（x, y, z 共通の座標列）
type Grid struct {
	Coords []float64
	Step   float64
}

// NewGrid は半径 + 余白を覆う格子
func NewGrid(p Params) Grid {
	ext := p.Radius + p.margin()
	n := int(p.gridLen())
	c := make([]float64, n)
	for i := range c {
		c[i] = -ext + float64(i)*p.Step
	}
	return Grid{Coords: c, Step: p.Step}
}

// Len 1 軸あたりの点数
func (g Grid) Len() int { return len(g.Coords) }

// Index は (i, j, k) を平坦化したインデックス（z が最内）
func (g Grid) Index(i, j, k int) int {
	n := len(g.Coords)
	return (i*n+j)*n + k
}

// Field は格子点ごとの |B| と Bz
type Field struct {
	Grid Grid
	Mag  []float64
	Bz   []float64
}

// At は格子点 (i, j, k) の Bz
func (f *Field) At(i, j, k int) float64 { return f.Bz[f.Grid.Index(i, j, k)] }

// singularTol は評価点とセグメント中点の最小距離
func singularTol(R float64) float64 { return 1e-9 * R }

// fieldAt は点 q における B（全セグメントの重ね合わせ）
//
//	B = μ0/4π Σ I_k dl_k × r_k / |r_k|^3, r_k = q − mid_k
//
// 距離が tol 未満ならセグメント番号を返してエラー
func fieldAt(q r3.Vec, g Geometry, cur []float64, tol float64) (r3.Vec, int, bool) {
	var b r3.Vec
	tol2 := tol * tol
	for k, dl := range g.Segments {
		r := r3.Sub(q, g.Mids[k])
		d2 := r3.Norm2(r)
		if d2 < tol2 {
			return r3.Vec{}, k, false
		}
		d3 := d2 * math.Sqrt(d2)
		b = r3.Add(b, r3.Scale(cur[k]/d3, r3.Cross(dl, r)))
	}
	return r3.Scale(Mu0/(4*math.Pi), b), -1, true
}

// SampleField は格子全点で Biot-Savart を評価する。
// x スライス単位で並列化（各点の和は 1 goroutine 内で固定順なので結果は決定的）。
func SampleField(ctx context.Context, grid Grid, g Geometry, cur []float64, R float64, workers int) (*Field, error) {
	n := grid.Len()
	f := &Field{
		Grid: grid,
		Mag:  make([]float64, n*n*n),
		Bz:   make([]float64, n*n*n),
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	tol := singularTol(R)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i := 0; i < n; i++ {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			x := grid.Coords[i]
			for j, y := range grid.Coords {
				for k, z := range grid.Coords {
					b, seg, ok := fieldAt(r3.Vec{X: x, Y: y, Z: z}, g, cur, tol)
					if !ok {
						return fmt.Errorf("%w: grid point (%d,%d,%d) = (%g, %g, %g) coincides with segment %d",
							ErrNumericalSingularity, i, j, k, x, y, z, seg)
					}
					idx := grid.Index(i, j, k)
					f.Mag[idx] = r3.Norm(b)
					f.Bz[idx] = b.Z
				}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return f, nil
}
