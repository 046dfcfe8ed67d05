// Package rowreduce is a toy environment for matrix row reduction
// over F2. The agent picks a row, which is then used as a pivot to
// clear its lead column from every other row. Unlike the Buchberger
// core, a useless action here is a penalty rather than an error,
// which keeps the fixed-size action space intact.
package rowreduce

import (
	"strconv"
	"strings"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/iliailmer/deepgroebner/rl"
)

// UselessActionPenalty is the reward for picking a row that cannot
// act as a pivot or pivots nothing
const UselessActionPenalty = -100.0

// RowChoiceEnv is the row-choice reduction environment
type RowChoiceEnv struct {
	rows    int
	cols    int
	density float64
	rng     *rand.Rand
	matrix  *mat.Dense
}

var _ rl.Environment = &RowChoiceEnv{}

func NewRowChoiceEnv(rows, cols int, density float64, seed uint64) *RowChoiceEnv {
	return &RowChoiceEnv{
		rows:    rows,
		cols:    cols,
		density: density,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Reset samples random matrices until one is not already reduced
func (e *RowChoiceEnv) Reset() (rl.Observation, error) {
	e.matrix = e.randomMatrix()
	for e.isReduced() {
		e.matrix = e.randomMatrix()
	}
	return e.observe(), nil
}

func (e *RowChoiceEnv) Step(action int) (rl.Observation, float64, bool, rl.Info, error) {
	if action < 0 || action >= e.rows {
		return nil, 0, e.isReduced(), nil, rl.ErrInvalidAction
	}
	lead := e.leadCol(action)
	if lead < 0 {
		return e.observe(), UselessActionPenalty, e.isReduced(), rl.Info{"moves": 0}, nil
	}
	moves := 0
	for i := 0; i < e.rows; i++ {
		if i != action && e.matrix.At(i, lead) != 0 {
			for j := 0; j < e.cols; j++ {
				v := e.matrix.At(i, j) + e.matrix.At(action, j)
				if v >= 2 {
					v -= 2
				}
				e.matrix.Set(i, j, v)
			}
			moves++
		}
	}
	reward := -float64(moves)
	if moves == 0 {
		reward = UselessActionPenalty
	}
	return e.observe(), reward, e.isReduced(), rl.Info{"moves": moves}, nil
}

func (e *RowChoiceEnv) Copy() rl.Environment {
	clone := &RowChoiceEnv{
		rows:    e.rows,
		cols:    e.cols,
		density: e.density,
		rng:     rand.New(rand.NewSource(e.rng.Uint64())),
	}
	if e.matrix != nil {
		clone.matrix = mat.DenseCopyOf(e.matrix)
	}
	return clone
}

func (e *RowChoiceEnv) randomMatrix() *mat.Dense {
	m := mat.NewDense(e.rows, e.cols, nil)
	for i := 0; i < e.rows; i++ {
		for j := 0; j < e.cols; j++ {
			if e.rng.Float64() < e.density {
				m.Set(i, j, 1)
			}
		}
	}
	return m
}

// leadCol returns the column of the first nonzero entry of the row,
// or -1 for a zero row
func (e *RowChoiceEnv) leadCol(row int) int {
	for j := 0; j < e.cols; j++ {
		if e.matrix.At(row, j) != 0 {
			return j
		}
	}
	return -1
}

// isReduced reports whether every lead entry is the only nonzero
// entry in its column
func (e *RowChoiceEnv) isReduced() bool {
	for i := 0; i < e.rows; i++ {
		lead := e.leadCol(i)
		if lead < 0 {
			continue
		}
		for j := 0; j < e.rows; j++ {
			if j != i && e.matrix.At(j, lead) != 0 {
				return false
			}
		}
	}
	return true
}

func (e *RowChoiceEnv) observe() *MatrixObservation {
	return &MatrixObservation{matrix: mat.DenseCopyOf(e.matrix), actions: e.rows}
}

// MatrixObservation is a snapshot of the matrix with a fixed action
// space of one action per row
type MatrixObservation struct {
	matrix  *mat.Dense
	actions int
}

var _ rl.Observation = &MatrixObservation{}

func (o *MatrixObservation) NumActions() int {
	return o.actions
}

func (o *MatrixObservation) Hash() string {
	rows, cols := o.matrix.Dims()
	var sb strings.Builder
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			sb.WriteString(strconv.Itoa(int(o.matrix.At(i, j))))
		}
		sb.WriteByte(';')
	}
	return sb.String()
}

func (o *MatrixObservation) Mat() *mat.Dense {
	return o.matrix
}
