package buchberger

import (
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/iliailmer/deepgroebner/rl"
)

// LeadMonomialsEnv projects the raw (G, P) state into a numeric
// matrix with one row per critical pair: the concatenated exponent
// vectors of the first k lead monomials of the pair's two
// generators. Row order always equals the pair queue order, so the
// agent's action index selects exactly the pair it saw.
type LeadMonomialsEnv struct {
	env  *Env
	k    int
	cols int
	// cached feature vector per basis element; the basis only
	// grows within an episode so entries are appended, never edited
	features [][]float64
}

var _ rl.Environment = &LeadMonomialsEnv{}

// NewLeadMonomialsEnv wraps env, taking the k largest monomials of
// each generator (k=1 gives the classic lead-exponent features)
func NewLeadMonomialsEnv(env *Env, k int) *LeadMonomialsEnv {
	if k < 1 {
		k = 1
	}
	return &LeadMonomialsEnv{
		env:  env,
		k:    k,
		cols: 2 * k * env.Ring().NumVars(),
	}
}

func (l *LeadMonomialsEnv) Reset() (rl.Observation, error) {
	if err := l.env.Reset(); err != nil {
		return nil, err
	}
	l.features = l.features[:0]
	l.syncFeatures()
	return l.observe(), nil
}

func (l *LeadMonomialsEnv) Step(action int) (rl.Observation, float64, bool, rl.Info, error) {
	reward, done, info, err := l.env.Step(action)
	if err != nil {
		return nil, 0, done, info, err
	}
	l.syncFeatures()
	return l.observe(), reward, done, info, nil
}

func (l *LeadMonomialsEnv) Copy() rl.Environment {
	features := make([][]float64, len(l.features))
	copy(features, l.features)
	return &LeadMonomialsEnv{
		env:      l.env.Copy(),
		k:        l.k,
		cols:     l.cols,
		features: features,
	}
}

// Env exposes the wrapped raw environment for inspection
func (l *LeadMonomialsEnv) Env() *Env {
	return l.env
}

func (l *LeadMonomialsEnv) syncFeatures() {
	half := l.cols / 2
	for i := len(l.features); i < len(l.env.G); i++ {
		feat := make([]float64, half)
		terms := l.env.G[i].Terms()
		for t := 0; t < l.k && t < len(terms); t++ {
			for v, e := range terms[t].Mon {
				feat[t*l.env.ring.NumVars()+v] = float64(e)
			}
		}
		l.features = append(l.features, feat)
	}
}

func (l *LeadMonomialsEnv) observe() *PairsObservation {
	rows := make([][]float64, len(l.env.P))
	degrees := make([]int, len(l.env.P))
	half := l.cols / 2
	for i, p := range l.env.P {
		row := make([]float64, l.cols)
		copy(row[:half], l.features[p.I])
		copy(row[half:], l.features[p.J])
		rows[i] = row
		lcm := l.env.G[p.I].LeadTerm().Mon.LCM(l.env.G[p.J].LeadTerm().Mon)
		degrees[i] = lcm.Degree()
	}
	return &PairsObservation{rows: rows, cols: l.cols, degrees: degrees}
}

// PairsObservation is a variable-row-count feature matrix, one row
// per critical pair in queue order
type PairsObservation struct {
	rows    [][]float64
	cols    int
	degrees []int
}

var _ rl.Observation = &PairsObservation{}

func (o *PairsObservation) NumActions() int {
	return len(o.rows)
}

func (o *PairsObservation) Hash() string {
	var sb strings.Builder
	for _, row := range o.rows {
		sb.WriteString(rowKey(row))
		sb.WriteByte(';')
	}
	return sb.String()
}

// RowKey identifies a single pair by its features, independent of
// its queue position
func (o *PairsObservation) RowKey(i int) string {
	return rowKey(o.rows[i])
}

// RowDegree is the total degree of the pair's lcm, the ranking key
// of normal selection
func (o *PairsObservation) RowDegree(i int) int {
	return o.degrees[i]
}

// Mat returns the observation as a dense matrix, nil when terminal
func (o *PairsObservation) Mat() *mat.Dense {
	if len(o.rows) == 0 {
		return nil
	}
	data := make([]float64, 0, len(o.rows)*o.cols)
	for _, row := range o.rows {
		data = append(data, row...)
	}
	return mat.NewDense(len(o.rows), o.cols, data)
}

func rowKey(row []float64) string {
	parts := make([]string, len(row))
	for i, v := range row {
		parts[i] = strconv.Itoa(int(v))
	}
	return strings.Join(parts, ",")
}
