// compute.go
package coil

import (
	"context"
	"io"
	"log/slog"

	"gonum.org/v1/gonum/floats"
)

// Options は計算の実行条件（結果には影響しない）
type Options struct {
	Workers    int          // 0 なら GOMAXPROCS
	Logger     *slog.Logger // nil なら出力しない
	Integrator Integrator   // nil なら GaussLegendre
}

// Result は 1 回の計算結果
type Result struct {
	L   float64 // [H]
	C   float64 // [F]
	SRF float64 // [Hz]

	Mutual   float64 // Σ 巻ごとの Φ/I
	Internal float64 // Σ 内部インダクタンス

	Lengths []float64 // 巻ごとの線長 [m]
	Turns   []TurnResult
	Network Network

	GridPoints     int // 1 軸あたり
	ClampedColumns int
}

// Compute はコイル形状から L, C, 自己共振周波数を求める
func Compute(ctx context.Context, p Params, opt Options) (Result, error) {
	log := opt.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	geo, err := Generate(p)
	if err != nil {
		return Result{}, err
	}
	lengths := TurnLengths(opt.Integrator, p)
	cur := Currents(geo, p.Freq)
	log.Debug("geometry ready", "segments", len(geo.Segments), "wire_length", floats.Sum(lengths))

	grid := NewGrid(p)
	log.Debug("sampling field", "grid", grid.Len(), "points", grid.Len()*grid.Len()*grid.Len())
	field, err := SampleField(ctx, grid, geo, cur, p.Radius, opt.Workers)
	if err != nil {
		return Result{}, err
	}

	turns, err := IntegrateFlux(ctx, p, field, cur, lengths, opt.Workers)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Lengths:    lengths,
		Turns:      turns,
		GridPoints: grid.Len(),
	}
	// 巻順に足す（並列でも結果は同じ）
	for _, t := range turns {
		res.Mutual += t.Inductance
		res.Internal += t.Internal
		res.ClampedColumns += t.Clamped
	}
	res.L = res.Mutual + res.Internal
	if res.ClampedColumns > 0 {
		log.Warn("flux surface above grid, top layer used", "columns", res.ClampedColumns)
	}

	res.Network, err = Capacitance(p)
	if err != nil {
		return Result{}, err
	}
	res.C = res.Network.Total

	res.SRF, err = ResonantFrequency(res.L, res.C)
	if err != nil {
		return Result{}, err
	}
	log.Debug("done", "L", res.L, "C", res.C, "srf", res.SRF)
	return res, nil
}
