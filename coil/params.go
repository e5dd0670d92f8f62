// params.go
package coil

import (
	"fmt"
	"math"
)

// 物理定数
const (
	Mu0  = 4 * math.Pi * 1e-7 // 真空の透磁率 [H/m]
	Eps0 = 8.854187817e-12    // 真空の誘電率 [F/m]

	// 光速はモデル上 3e8 に固定（厳密値は使わない）
	C0 = 3e8

	// 格子点数の上限（|B| と Bz で約 3.2 GB）
	maxGridPoints = 2e8
)

// Params はコイル形状と計算条件
type Params struct {
	Turns      int     // N : 巻数
	Taper      float64 // N1 : テーパ係数（緯度方向の圧縮）
	Radius     float64 // R : 球の半径 [m]
	WireRadius float64 // r_w : 線の半径 [m]
	Freq       float64 // f1 : 電流の位相遅れを決める低周波 [Hz]
	Segments   int     // s : 全巻の分割数
	Step       float64 // Biot-Savart のグリッド間隔 [m]

	// グリッドの余白 [m]。0 なら 2*Step
	Margin float64
}

// DefaultParams は動作確認用の形状
func DefaultParams() Params {
	return Params{
		Turns:      5,
		Taper:      2,
		Radius:     0.05,
		WireRadius: 5e-4,
		Freq:       1e6,
		Segments:   200,
		Step:       0.002,
	}
}

// WireDiameter d = 2 r_w
func (p Params) WireDiameter() float64 { return 2 * p.WireRadius }

// SegmentsPerTurn s/N
func (p Params) SegmentsPerTurn() int { return p.Segments / p.Turns }

func (p Params) margin() float64 {
	if p.Margin > 0 {
		return p.Margin
	}
	return 2 * p.Step
}

// gridLen は 1 軸あたりの格子点数（int 変換前に大きさを見るため float で返す）
func (p Params) gridLen() float64 {
	ext := p.Radius + p.margin()
	return math.Floor(2*ext/p.Step+1e-9) + 1
}

// Validate は計算前に形状パラメータを検査する
func (p Params) Validate() error {
	if p.Turns < 2 {
		return fmt.Errorf("%w: turns must be >= 2 (got %d)", ErrInvalidGeometry, p.Turns)
	}
	if p.Segments <= 0 || p.Segments%p.Turns != 0 || p.Segments%(2*p.Turns) != 0 {
		return fmt.Errorf("%w: segments %d must be a positive multiple of 2*turns (%d)", ErrInvalidGeometry, p.Segments, 2*p.Turns)
	}
	pos := []struct {
		name string
		v    float64
	}{
		{"taper", p.Taper},
		{"radius", p.Radius},
		{"wire radius", p.WireRadius},
		{"freq", p.Freq},
		{"step", p.Step},
	}
	for _, x := range pos {
		if !(x.v > 0) || math.IsInf(x.v, 0) {
			return fmt.Errorf("%w: %s must be > 0 (got %g)", ErrInvalidGeometry, x.name, x.v)
		}
	}
	if p.Margin < 0 || math.IsInf(p.Margin, 0) || math.IsNaN(p.Margin) {
		return fmt.Errorf("%w: margin must be >= 0 (got %g)", ErrInvalidGeometry, p.Margin)
	}
	if p.WireRadius >= p.Radius {
		return fmt.Errorf("%w: wire radius %g must be smaller than coil radius %g", ErrInvalidGeometry, p.WireRadius, p.Radius)
	}
	if n := p.gridLen(); n*n*n > maxGridPoints {
		return fmt.Errorf("%w: grid of %.0f^3 = %.3g points exceeds %.3g (increase step)", ErrInvalidGeometry, n, n*n*n, float64(maxGridPoints))
	}
	return nil
}
