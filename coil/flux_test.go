package coil

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestTurnParamAt(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{"solenoid", Params{Turns: 4, Taper: 40, Radius: 0.05, Segments: 80}},
		{"over the poles", Params{Turns: 5, Taper: 2, Radius: 0.05, Segments: 200}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k := 0; k < tt.p.Turns; k++ {
				for _, phi := range []float64{-2.9, -1.3, 0.2, 1.0, 2.5} {
					par := turnParamAt(tt.p, k, phi)
					if par < turnStart(tt.p, k) || par >= turnStart(tt.p, k)+2*math.Pi {
						t.Fatalf("turn %d phi %v: parameter %v outside the turn", k, phi, par)
					}
					q := curvePoint(tt.p.Radius, tt.p.Taper, par)
					if math.Hypot(q.X, q.Y) < 1e-9 {
						continue
					}
					got := math.Atan2(q.Y, q.X)
					if d := math.Abs(mod2Pi(got-phi+math.Pi) - math.Pi); d > 1e-9 {
						t.Errorf("turn %d: expected azimuth %v, got %v", k, phi, got)
					}
				}
			}
		})
	}
}

func TestTurnSurface(t *testing.T) {
	p := Params{Turns: 4, Taper: 40, Radius: 0.05, WireRadius: 5e-4, Freq: 1e6, Segments: 80, Step: 0.001}
	grid := NewGrid(p)
	n := grid.Len()
	c := n / 2 // x = y = 0

	for k := 0; k < p.Turns; k++ {
		ts := NewTurnSurface(p, grid, k)
		if !ts.Mask[c*n+c] {
			t.Fatalf("turn %d: center column not inside", k)
		}
		if math.Abs(ts.Z1[c*n+c]-ts.ZO) > 1e-15 {
			t.Errorf("turn %d: surface at center %v, expected z_O %v", k, ts.Z1[c*n+c], ts.ZO)
		}
		if ts.Mask[0] || ts.Mask[n*n-1] {
			t.Errorf("turn %d: grid corner marked inside", k)
		}

		// マスク面積は π (Rc - r_w)^2 に近い
		var cols int
		for _, in := range ts.Mask {
			if in {
				cols++
			}
		}
		area := float64(cols) * p.Step * p.Step
		want := math.Pi * math.Pow(ts.Radius-p.WireRadius, 2)
		if math.Abs(area-want)/want > 0.1 {
			t.Errorf("turn %d: masked area %v, expected about %v", k, area, want)
		}
	}
}

func uniformField(grid Grid, bz float64) *Field {
	n := grid.Len()
	f := &Field{Grid: grid, Mag: make([]float64, n*n*n), Bz: make([]float64, n*n*n)}
	for i := range f.Bz {
		f.Bz[i] = bz
		f.Mag[i] = math.Abs(bz)
	}
	return f
}

func TestTurnSurfaceFluxUniform(t *testing.T) {
	p := Params{Turns: 2, Taper: 8, Radius: 0.02, WireRadius: 2e-4, Freq: 1e6, Segments: 40, Step: 0.001}
	grid := NewGrid(p)
	const b0 = 1e-3
	f := uniformField(grid, b0)

	ts := NewTurnSurface(p, grid, 0)
	var cols int
	for _, in := range ts.Mask {
		if in {
			cols++
		}
	}
	flux, clamped := ts.Flux(f)
	if clamped != 0 {
		t.Errorf("expected no clamped columns, got %d", clamped)
	}
	want := b0 * float64(cols) * p.Step * p.Step
	if math.Abs(flux-want)/want > 1e-9 {
		t.Errorf("expected flux %v, got %v", want, flux)
	}
}

func TestTurnSurfaceFluxClamped(t *testing.T) {
	grid := Grid{Coords: []float64{-1, 0, 1}, Step: 1}
	f := uniformField(grid, 0)
	f.Bz[grid.Index(1, 1, 2)] = 7

	ts := TurnSurface{Mask: make([]bool, 9), Z1: make([]float64, 9)}
	ts.Mask[1*3+1] = true
	ts.Z1[1*3+1] = 5 // 格子より上

	flux, clamped := ts.Flux(f)
	if clamped != 1 {
		t.Errorf("expected 1 clamped column, got %d", clamped)
	}
	if flux != 7 {
		t.Errorf("expected top layer value 7, got %v", flux)
	}

	// z1 がちょうど格子点なら、その層を使う
	ts.Z1[1*3+1] = 0
	f.Bz[grid.Index(1, 1, 1)] = 3
	if flux, _ := ts.Flux(f); flux != 3 {
		t.Errorf("expected layer at z1, got %v", flux)
	}
}

func TestIntegrateFlux(t *testing.T) {
	p := Params{Turns: 2, Taper: 8, Radius: 0.02, WireRadius: 2e-4, Freq: 1e6, Segments: 40, Step: 0.002}
	grid := NewGrid(p)
	f := uniformField(grid, 2e-3)
	cur := make([]float64, p.Segments)
	for i := range cur {
		cur[i] = 0.5
	}
	lengths := []float64{0.1, 0.2}

	turns, err := IntegrateFlux(context.Background(), p, f, cur, lengths, 2)
	if err != nil {
		t.Fatalf("integrate: %s", err)
	}
	for k, tr := range turns {
		if tr.Current != 0.5 {
			t.Errorf("turn %d: expected mid current 0.5, got %v", k, tr.Current)
		}
		if tr.Inductance != tr.Flux/0.5 {
			t.Errorf("turn %d: inductance %v is not flux/current", k, tr.Inductance)
		}
		if want := Mu0 * lengths[k] / (8 * math.Pi); tr.Internal != want {
			t.Errorf("turn %d: expected internal %v, got %v", k, want, tr.Internal)
		}
	}
}

func TestIntegrateFluxZeroCurrent(t *testing.T) {
	p := Params{Turns: 2, Taper: 8, Radius: 0.02, WireRadius: 2e-4, Freq: 1e6, Segments: 40, Step: 0.002}
	f := uniformField(NewGrid(p), 1e-3)
	cur := make([]float64, p.Segments)
	for i := range cur {
		cur[i] = 1
	}
	m := p.SegmentsPerTurn()
	cur[1*m+m/2] = 0 // 巻 1 の中央

	_, err := IntegrateFlux(context.Background(), p, f, cur, []float64{0.1, 0.1}, 2)
	if !errors.Is(err, ErrNonPhysical) {
		t.Fatalf("expected ErrNonPhysical, got %v", err)
	}
}
