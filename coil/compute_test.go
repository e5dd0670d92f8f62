package coil

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Params)
	}{
		{"one turn", func(p *Params) { p.Turns = 1 }},
		{"segments not multiple of N", func(p *Params) { p.Segments = 201 }},
		{"segments not multiple of 2N", func(p *Params) { p.Segments = 205 }},
		{"zero taper", func(p *Params) { p.Taper = 0 }},
		{"negative radius", func(p *Params) { p.Radius = -0.05 }},
		{"zero wire radius", func(p *Params) { p.WireRadius = 0 }},
		{"NaN freq", func(p *Params) { p.Freq = math.NaN() }},
		{"zero step", func(p *Params) { p.Step = 0 }},
		{"negative margin", func(p *Params) { p.Margin = -1 }},
		{"wire thicker than coil", func(p *Params) { p.WireRadius = 0.06 }},
		{"grid too fine", func(p *Params) { p.Step = 1e-6 }},
		{"grid too wide", func(p *Params) { p.Margin = 1e3 }},
		{"infinite margin", func(p *Params) { p.Margin = math.Inf(1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.modify(&p)
			if err := p.Validate(); !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("expected ErrInvalidGeometry, got %v", err)
			}
			if _, err := Compute(context.Background(), p, Options{}); !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("Compute: expected ErrInvalidGeometry, got %v", err)
			}
		})
	}

	if err := DefaultParams().Validate(); err != nil {
		t.Errorf("default params rejected: %s", err)
	}
}

func TestComputeDefault(t *testing.T) {
	if testing.Short() {
		t.Skip("full grid")
	}
	p := DefaultParams() // N=5, N1=2, f1=1e6, r_w=5e-4, R=0.05, s=200, step=0.002
	res, err := Compute(context.Background(), p, Options{})
	if err != nil {
		t.Fatalf("compute: %s", err)
	}
	if !(res.L > 0) || !(res.C > 0) || !(res.SRF > 0) {
		t.Fatalf("expected positive results, got L=%v C=%v f=%v", res.L, res.C, res.SRF)
	}
	if got := res.SRF * 2 * math.Pi * math.Sqrt(res.L*res.C); math.Abs(got-1) > 1e-12 {
		t.Errorf("f·2π√(LC) = %v", got)
	}
	if len(res.Turns) != p.Turns || len(res.Lengths) != p.Turns {
		t.Errorf("expected %d turns, got %d / %d", p.Turns, len(res.Turns), len(res.Lengths))
	}
	if res.ClampedColumns != 0 {
		t.Errorf("expected no clamped columns, got %d", res.ClampedColumns)
	}
	if math.Abs(res.L-(res.Mutual+res.Internal)) > 1e-18 {
		t.Errorf("L is not mutual + internal")
	}
}

// ワーカ数や繰り返しによらず同じ結果
func TestComputeDeterministic(t *testing.T) {
	p := Params{Turns: 2, Taper: 8, Radius: 0.02, WireRadius: 2e-4, Freq: 1e6, Segments: 80, Step: 0.002}

	a, err := Compute(context.Background(), p, Options{Workers: 1})
	if err != nil {
		t.Fatalf("compute: %s", err)
	}
	for _, w := range []int{1, 4} {
		b, err := Compute(context.Background(), p, Options{Workers: w})
		if err != nil {
			t.Fatalf("compute: %s", err)
		}
		if a.L != b.L || a.C != b.C || a.SRF != b.SRF {
			t.Errorf("workers=%d: got (%v, %v, %v), expected (%v, %v, %v)", w, b.L, b.C, b.SRF, a.L, a.C, a.SRF)
		}
	}
}

// 細長いらせんは Wheeler の式 L = μ0 π R² N² / (l + 0.9R) に ±15% で一致する
// （step 2.5mm で比は約 1.03）
func TestComputeSolenoidLimit(t *testing.T) {
	if testing.Short() {
		t.Skip("full grid")
	}
	p := Params{Turns: 4, Taper: 40, Radius: 0.05, WireRadius: 5e-4, Freq: 1e6, Segments: 400, Step: 0.0025}
	res, err := Compute(context.Background(), p, Options{})
	if err != nil {
		t.Fatalf("compute: %s", err)
	}

	n := float64(p.Turns)
	length := n * 2 * math.Pi * p.Radius / p.Taper
	want := Mu0 * math.Pi * p.Radius * p.Radius * n * n / (length + 0.9*p.Radius)
	if ratio := res.L / want; ratio < 0.85 || ratio > 1.15 {
		t.Errorf("L = %v, Wheeler %v (ratio %.3f)", res.L, want, ratio)
	}
}

func TestComputeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Compute(ctx, DefaultParams(), Options{}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
