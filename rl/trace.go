package rl

// Transition is one step of an episode
type Transition struct {
	Obs    Observation
	Action int
	Reward float64
	Next   Observation
	Done   bool
}

// Trace of an episode as a sequence of transitions
type Trace struct {
	transitions []Transition
}

func NewTrace() *Trace {
	return &Trace{transitions: make([]Transition, 0)}
}

func (t *Trace) Append(obs Observation, action int, reward float64, next Observation, done bool) {
	t.transitions = append(t.transitions, Transition{
		Obs:    obs,
		Action: action,
		Reward: reward,
		Next:   next,
		Done:   done,
	})
}

func (t *Trace) Len() int {
	return len(t.transitions)
}

func (t *Trace) Get(i int) (Transition, bool) {
	if i < 0 || i >= len(t.transitions) {
		return Transition{}, false
	}
	return t.transitions[i], true
}

func (t *Trace) Last() (Transition, bool) {
	if len(t.transitions) == 0 {
		return Transition{}, false
	}
	return t.transitions[len(t.transitions)-1], true
}

// TotalReward is the undiscounted return of the episode
func (t *Trace) TotalReward() float64 {
	total := 0.0
	for _, tr := range t.transitions {
		total += tr.Reward
	}
	return total
}

// RewardsToGo returns, for each step, the sum of rewards from that
// step to the end of the episode discounted by gamma
func (t *Trace) RewardsToGo(gamma float64) []float64 {
	out := make([]float64, len(t.transitions))
	acc := 0.0
	for i := len(t.transitions) - 1; i >= 0; i-- {
		acc = t.transitions[i].Reward + gamma*acc
		out[i] = acc
	}
	return out
}
