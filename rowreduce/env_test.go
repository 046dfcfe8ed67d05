package rowreduce

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/iliailmer/deepgroebner/rl"
)

func TestResetNotReduced(t *testing.T) {
	env := NewRowChoiceEnv(4, 6, 0.5, 3)
	obs, err := env.Reset()
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if obs.NumActions() != 4 {
		t.Errorf("NumActions = %d, want 4", obs.NumActions())
	}
	if env.isReduced() {
		t.Errorf("initial matrix should not be reduced")
	}
}

func TestPivotStep(t *testing.T) {
	env := NewRowChoiceEnv(2, 2, 0.5, 1)
	env.matrix = mat.NewDense(2, 2, []float64{
		1, 1,
		1, 0,
	})
	_, reward, done, info, err := env.Step(1)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	// pivot on row 1 clears column 0 of row 0 with one move
	if reward != -1 || info["moves"] != 1 {
		t.Errorf("reward = %v, moves = %d", reward, info["moves"])
	}
	if !done {
		t.Errorf("matrix should be reduced: %v", mat.Formatted(env.matrix))
	}
	if env.matrix.At(0, 0) != 0 || env.matrix.At(0, 1) != 1 {
		t.Errorf("row 0 not cleared: %v", mat.Formatted(env.matrix))
	}
}

func TestZeroRowPenalty(t *testing.T) {
	env := NewRowChoiceEnv(2, 2, 0.5, 1)
	env.matrix = mat.NewDense(2, 2, []float64{
		1, 1,
		0, 0,
	})
	_, reward, _, _, err := env.Step(1)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if reward != UselessActionPenalty {
		t.Errorf("reward = %v, want %v", reward, UselessActionPenalty)
	}
}

func TestNoMovePenalty(t *testing.T) {
	env := NewRowChoiceEnv(2, 2, 0.5, 1)
	env.matrix = mat.NewDense(2, 2, []float64{
		1, 0,
		0, 1,
	})
	_, reward, done, _, err := env.Step(0)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if reward != UselessActionPenalty {
		t.Errorf("reward = %v, want %v", reward, UselessActionPenalty)
	}
	if !done {
		t.Errorf("identity-like matrix is reduced")
	}
}

func TestOutOfRangeActionIsError(t *testing.T) {
	env := NewRowChoiceEnv(2, 2, 0.5, 1)
	if _, err := env.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if _, _, _, _, err := env.Step(5); !errors.Is(err, rl.ErrInvalidAction) {
		t.Errorf("Step(5) error = %v, want ErrInvalidAction", err)
	}
}

func TestCopyIndependence(t *testing.T) {
	env := NewRowChoiceEnv(3, 4, 0.6, 9)
	obs, err := env.Reset()
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	clone := env.Copy()
	if _, _, _, _, err := clone.Step(0); err != nil {
		t.Fatalf("clone Step: %v", err)
	}
	if env.observe().Hash() != obs.Hash() {
		t.Errorf("stepping the clone changed the original")
	}
}

func TestEpisodeTerminates(t *testing.T) {
	env := NewRowChoiceEnv(3, 4, 0.5, 21)
	env.matrix = mat.NewDense(3, 4, []float64{
		1, 1, 0, 1,
		0, 1, 1, 0,
		1, 0, 1, 0,
	})
	done := false
	steps := 0
	for step := 0; !done && step < 50; step++ {
		var err error
		_, _, done, _, err = env.Step(step % 3)
		if err != nil {
			t.Fatalf("Step: %v", err)
		}
		steps++
	}
	if !done {
		t.Fatalf("round-robin pivoting should reduce the matrix")
	}
	if steps != 3 {
		t.Errorf("took %d steps, want 3", steps)
	}
}
