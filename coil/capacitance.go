// capacitance.go
package coil

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Pair は巻 A と巻 B の間の容量
type Pair struct {
	A, B        int
	Radius      float64 // 2 巻の半径の平均
	Pitch       float64 // 2 巻の中央緯度間の球面上距離
	Capacitance float64
}

// Chain は NN（隣接）または 2nd-NN（1 つ飛ばし）の直列チェーン
type Chain struct {
	Skip  int // 1: NN, 2: 2nd-NN
	Pitch float64
	Pairs []Pair
	Total float64 // 直列合成
}

// Network は NN と 2nd-NN の並列
type Network struct {
	NN     Chain
	NextNN Chain
	Total  float64
}

// PairCapacitance は同軸リング対の容量 C = 2π² ε0 Rc / acosh(p/d)
func PairCapacitance(radius, pitch, d float64) (float64, error) {
	ratio := pitch / d
	if !(ratio > 1) {
		return 0, fmt.Errorf("%w: pitch/diameter = %g <= 1", ErrGeometricOverlap, ratio)
	}
	return 2 * math.Pi * math.Pi * Eps0 * radius / math.Acosh(ratio), nil
}

// TurnRadii は各巻中央での局所半径
func TurnRadii(p Params) []float64 {
	out := make([]float64, p.Turns)
	for k := range out {
		out[k] = math.Abs(p.Radius * math.Cos(turnMid(p, k)/p.Taper))
	}
	return out
}

// turnPitch は巻 a, b の中央緯度の差を球面上の距離にしたもの
func turnPitch(p Params, a, b int) float64 {
	return p.Radius * math.Abs(turnMid(p, b)-turnMid(p, a)) / p.Taper
}

// series は直列合成。空なら 0、0 の容量を含めば 0。
func series(cs []float64) float64 {
	if len(cs) == 0 {
		return 0
	}
	inv := make([]float64, len(cs))
	for i, c := range cs {
		if c <= 0 {
			return 0
		}
		inv[i] = 1 / c
	}
	return 1 / floats.Sum(inv)
}

func newChain(p Params, radii []float64, skip int) (Chain, error) {
	ch := Chain{Skip: skip}
	d := p.WireDiameter()

	var pitches []float64
	for k := 0; k+skip < p.Turns; k++ {
		pitch := turnPitch(p, k, k+skip)
		if !(pitch/d > 1) {
			return Chain{}, fmt.Errorf("%w: turns %d-%d pitch %g vs wire diameter %g", ErrGeometricOverlap, k, k+skip, pitch, d)
		}
		pitches = append(pitches, pitch)
		ch.Pairs = append(ch.Pairs, Pair{A: k, B: k + skip, Radius: (radii[k] + radii[k+skip]) / 2})
	}
	if len(ch.Pairs) == 0 {
		return ch, nil
	}
	ch.Pitch = floats.Sum(pitches) / float64(len(pitches))

	cs := make([]float64, len(ch.Pairs))
	for i := range ch.Pairs {
		c, err := PairCapacitance(ch.Pairs[i].Radius, ch.Pitch, d)
		if err != nil {
			return Chain{}, fmt.Errorf("turns %d-%d: %w", ch.Pairs[i].A, ch.Pairs[i].B, err)
		}
		ch.Pairs[i].Pitch = ch.Pitch
		ch.Pairs[i].Capacitance = c
		cs[i] = c
	}
	ch.Total = series(cs)
	return ch, nil
}

// Capacitance は NN チェーンと 2nd-NN チェーンを並列に合成する
func Capacitance(p Params) (Network, error) {
	radii := TurnRadii(p)
	nn, err := newChain(p, radii, 1)
	if err != nil {
		return Network{}, err
	}
	nnn, err := newChain(p, radii, 2)
	if err != nil {
		return Network{}, err
	}
	return Network{NN: nn, NextNN: nnn, Total: nn.Total + nnn.Total}, nil
}
