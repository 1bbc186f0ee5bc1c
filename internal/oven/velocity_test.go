package oven

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/qplex/atombeam/internal/atoms"
)

func testSampler(t *testing.T, seed uint64) *VelocitySampler {
	t.Helper()
	sr := atoms.Strontium()
	axial := Axial(sr, 823, 0.0004, 0.01, 5, 1500)
	transverse := Transverse(sr, 823, 0.0004, 0.01, 1e-5, 50)

	vs, err := NewVelocitySampler(axial, transverse, 20000, rand.New(rand.NewPCG(seed, seed)))
	if err != nil {
		t.Fatalf("sampler construction failed: %v", err)
	}
	return vs
}

func TestVelocitySampleBounds(t *testing.T) {
	vs := testSampler(t, 42)
	samples := vs.Sample(2000)

	if len(samples) != 2000 {
		t.Fatalf("expected 2000 samples, got %d", len(samples))
	}

	for i, v := range samples {
		vz := v[2]
		if vz < 5 || vz > 1500 {
			t.Fatalf("sample %d: axial speed %g outside [5, 1500]", i, vz)
		}
		vr := math.Hypot(v[0], v[1])
		if vr < 0 || vr > 50+1e-9 {
			t.Fatalf("sample %d: radial speed %g outside [0, 50]", i, vr)
		}
	}
}

func TestVelocitySampleReproducible(t *testing.T) {
	a := testSampler(t, 7).Sample(100)
	b := testSampler(t, 7).Sample(100)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed diverged at sample %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestVelocityAzimuthCoverage(t *testing.T) {
	vs := testSampler(t, 3)
	samples := vs.Sample(4000)

	var quadrants [4]int
	for _, v := range samples {
		switch {
		case v[0] >= 0 && v[1] >= 0:
			quadrants[0]++
		case v[0] < 0 && v[1] >= 0:
			quadrants[1]++
		case v[0] < 0 && v[1] < 0:
			quadrants[2]++
		default:
			quadrants[3]++
		}
	}
	for q, n := range quadrants {
		if n < 500 {
			t.Errorf("quadrant %d underpopulated: %d of 4000", q, n)
		}
	}
}

func TestVelocitySamplerBadDomain(t *testing.T) {
	sr := atoms.Strontium()
	axial := Axial(sr, 823, 0.0004, 0.01, 5, 1500)
	bad := Transverse(sr, 823, 0.0004, 0.01, 0, 50)

	_, err := NewVelocitySampler(axial, bad, 1000, rand.New(rand.NewPCG(1, 1)))
	if err == nil {
		t.Fatal("expected error for singular transverse domain")
	}
}
