package oven

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/qplex/atombeam/internal/atoms"
)

func TestBuildCDFUniform(t *testing.T) {
	table, err := BuildCDF(Uniform(1, 2), 10000)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if table.CDF[0] != 0 {
		t.Errorf("expected CDF[0] = 0, got %g", table.CDF[0])
	}
	if table.CDF[len(table.CDF)-1] != 1 {
		t.Errorf("expected CDF[last] = 1, got %g", table.CDF[len(table.CDF)-1])
	}

	// Uniform density on [1, 2]: CDF(v) = v - 1.
	mid := table.Invert(0.5)
	if math.Abs(mid-1.5) > 1e-3 {
		t.Errorf("expected median ~1.5, got %g", mid)
	}
	q := table.Invert(0.25)
	if math.Abs(q-1.25) > 1e-3 {
		t.Errorf("expected first quartile ~1.25, got %g", q)
	}
}

func TestBuildCDFMonotone(t *testing.T) {
	sr := atoms.Strontium()
	dists := []SpeedDistribution{
		Axial(sr, 823, 0.0004, 0.01, 5, 1500),
		Transverse(sr, 823, 0.0004, 0.01, 1e-5, 50),
	}

	for _, dist := range dists {
		t.Run(dist.Name, func(t *testing.T) {
			table, err := BuildCDF(dist, 20000)
			if err != nil {
				t.Fatalf("build failed: %v", err)
			}
			for i := 1; i < len(table.CDF); i++ {
				if table.CDF[i] < table.CDF[i-1] {
					t.Fatalf("CDF decreases at %d: %g -> %g", i, table.CDF[i-1], table.CDF[i])
				}
				if table.Grid[i] <= table.Grid[i-1] {
					t.Fatalf("grid not strictly increasing at %d", i)
				}
			}
			if table.CDF[0] != 0 || table.CDF[len(table.CDF)-1] != 1 {
				t.Errorf("CDF endpoints: %g, %g", table.CDF[0], table.CDF[len(table.CDF)-1])
			}
		})
	}
}

func TestBuildCDFDeterministic(t *testing.T) {
	dist := Axial(atoms.Strontium(), 823, 0.0004, 0.01, 5, 1500)

	a, err := BuildCDF(dist, 5000)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	b, err := BuildCDF(dist, 5000)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if !reflect.DeepEqual(a.Grid, b.Grid) || !reflect.DeepEqual(a.CDF, b.CDF) {
		t.Error("identical inputs produced different tables")
	}
}

func TestBuildCDFInvalidDomain(t *testing.T) {
	sr := atoms.Strontium()
	tests := []struct {
		name string
		dist SpeedDistribution
		n    int
	}{
		{"zero vmin", Transverse(sr, 823, 0.0004, 0.01, 0, 50), 100},
		{"negative vmin", Uniform(-1, 2), 100},
		{"inverted bounds", Uniform(2, 1), 100},
		{"tiny grid", Uniform(1, 2), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildCDF(tt.dist, tt.n)
			if !errors.Is(err, ErrInvalidDomain) {
				t.Errorf("expected ErrInvalidDomain, got %v", err)
			}
		})
	}
}

func TestInvertTotal(t *testing.T) {
	table, err := BuildCDF(Uniform(1, 2), 1000)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	for _, u := range []float64{0, 1e-12, 0.1, 0.5, 0.999999, 1} {
		v := table.Invert(u)
		if v < 1 || v > 2 {
			t.Errorf("Invert(%g) = %g outside [1, 2]", u, v)
		}
	}
}
