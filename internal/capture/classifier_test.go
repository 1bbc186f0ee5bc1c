package capture

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/onsi/gomega"

	"github.com/qplex/atombeam/internal/beam"
)

// histFromZ builds a single-axis history: one particle per z series,
// all other components zero.
func histFromZ(series ...[]float64) *beam.History {
	steps := len(series[0])
	times := make([]float64, steps)
	for k := range times {
		times[k] = float64(k)
	}

	hist := &beam.History{Times: times, States: make([][]beam.State, len(series))}
	for p, zs := range series {
		row := make([]beam.State, steps)
		for k, z := range zs {
			row[k] = beam.State{0, 0, z, 0, 0, 0}
		}
		hist.States[p] = row
	}
	return hist
}

func ramp(from, to float64, steps int) []float64 {
	out := make([]float64, steps)
	for k := range out {
		out[k] = from + (to-from)*float64(k)/float64(steps-1)
	}
	return out
}

func TestClassifyEscapedByCrossing(t *testing.T) {
	// Monotonic climb from -0.15 to 0.40: crosses the 0.35 cutoff
	// before the final step.
	hist := histFromZ(ramp(-0.15, 0.40, 500))

	part, err := Classify(hist, DefaultCriteria())
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	if part.Labels[0] != Escaped {
		t.Errorf("expected escaped, got %v", part.Labels[0])
	}
	if part.Rate() != 0 {
		t.Errorf("expected rate 0, got %g", part.Rate())
	}
}

func TestClassifyEscapedByFinalPosition(t *testing.T) {
	// Ends at z = -0.08, outside the trap but never past the cutoff.
	hist := histFromZ(ramp(-0.15, -0.08, 200))

	part, err := Classify(hist, DefaultCriteria())
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	if part.Labels[0] != Escaped {
		t.Errorf("expected escaped, got %v", part.Labels[0])
	}
}

func TestClassifyEscapedDespiteReturn(t *testing.T) {
	// Crosses the cutoff mid-flight and swings back into the trap:
	// the early crossing wins.
	zs := append(ramp(-0.15, 0.40, 100), ramp(0.40, 0.0, 100)...)
	hist := histFromZ(zs)

	part, err := Classify(hist, DefaultCriteria())
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	if part.Labels[0] != Escaped {
		t.Errorf("expected escaped, got %v", part.Labels[0])
	}
}

func TestClassifyTrapped(t *testing.T) {
	// Oscillates within +/-0.005, ends at 0.002: inside the trap,
	// never past the inner threshold.
	zs := make([]float64, 400)
	for k := range zs {
		zs[k] = 0.005 * math.Sin(float64(k)/20)
	}
	zs[len(zs)-1] = 0.002
	hist := histFromZ(zs)

	part, err := Classify(hist, DefaultCriteria())
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	if part.Labels[0] != Trapped {
		t.Errorf("expected trapped, got %v", part.Labels[0])
	}
	if part.Rate() != 1 {
		t.Errorf("expected rate 1, got %g", part.Rate())
	}
}

func TestClassifyLost(t *testing.T) {
	// Reaches z = 0.03 (past the 0.01 inner threshold) but ends back
	// at 0.004, inside the trap.
	zs := append(ramp(0, 0.03, 100), ramp(0.03, 0.004, 100)...)
	hist := histFromZ(zs)

	part, err := Classify(hist, DefaultCriteria())
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	if part.Labels[0] != Lost {
		t.Errorf("expected lost, got %v", part.Labels[0])
	}
}

func TestClassifyPartitionExhaustive(t *testing.T) {
	g := gomega.NewWithT(t)
	rng := rand.New(rand.NewPCG(17, 17))

	const particles, steps = 400, 120
	series := make([][]float64, particles)
	for p := range series {
		zs := make([]float64, steps)
		z := -0.15
		drift := rng.Float64() * 0.006
		for k := range zs {
			z += drift + 0.004*(rng.Float64()-0.5)
			zs[k] = z
		}
		series[p] = zs
	}

	part, err := Classify(histFromZ(series...), DefaultCriteria())
	g.Expect(err).NotTo(gomega.HaveOccurred())

	g.Expect(len(part.Escaped) + len(part.Lost) + len(part.Trapped)).To(gomega.Equal(particles))
	g.Expect(part.Rate()).To(gomega.BeNumerically(">=", 0.0))
	g.Expect(part.Rate()).To(gomega.BeNumerically("<=", 1.0))

	seen := make(map[int]bool, particles)
	for _, set := range [][]int{part.Escaped, part.Lost, part.Trapped} {
		for _, idx := range set {
			g.Expect(seen[idx]).To(gomega.BeFalse(), "particle %d in two sets", idx)
			seen[idx] = true
		}
	}
	g.Expect(seen).To(gomega.HaveLen(particles))

	for i, l := range part.Labels {
		switch l {
		case Escaped, Lost, Trapped:
		default:
			t.Fatalf("particle %d has unknown label %v", i, l)
		}
	}
}

func TestClassifyIdempotent(t *testing.T) {
	zs := append(ramp(-0.15, 0.02, 150), ramp(0.02, -0.01, 150)...)
	hist := histFromZ(zs, ramp(-0.15, 0.5, 300))

	a, err := Classify(hist, DefaultCriteria())
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	b, err := Classify(hist, DefaultCriteria())
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}

	for i := range a.Labels {
		if a.Labels[i] != b.Labels[i] {
			t.Fatalf("labels differ at particle %d", i)
		}
	}
}

func TestCriteriaValidation(t *testing.T) {
	hist := histFromZ([]float64{0, 0, 0})

	tests := []struct {
		name string
		c    Criteria
	}{
		{"inverted", Criteria{Cutoff: 0.01, TrapHalfWidth: 0.05, Innermost: 0.35, Axis: beam.Z}},
		{"zero innermost", Criteria{Cutoff: 0.35, TrapHalfWidth: 0.05, Innermost: 0, Axis: beam.Z}},
		{"equal trap and cutoff", Criteria{Cutoff: 0.05, TrapHalfWidth: 0.05, Innermost: 0.01, Axis: beam.Z}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify(hist, tt.c)
			if !errors.Is(err, ErrBadCriteria) {
				t.Errorf("expected ErrBadCriteria, got %v", err)
			}
		})
	}
}

func TestOutcomeString(t *testing.T) {
	if Escaped.String() != "escaped" || Lost.String() != "lost" || Trapped.String() != "trapped" {
		t.Error("outcome labels mismatched")
	}
}
