// Package rl defines the agent/environment protocol shared by the
// Buchberger environment and the toy environments, together with the
// experiment harness that runs and compares policies.
package rl

import "errors"

var (
	// ErrInvalidAction is returned by environments for an action
	// index outside [0, NumActions)
	ErrInvalidAction = errors.New("invalid action index")
	// ErrNoActions is returned when an action is requested in a
	// terminal state
	ErrNoActions = errors.New("no actions available")
)

// Observation is what a policy sees. Actions are indices into the
// observation's rows, so NumActions is the size of the action space
// at this state.
type Observation interface {
	// Deterministic key for tabular policies
	Hash() string
	// Number of valid actions from this state
	NumActions() int
}

// Info carries per-step diagnostic counters, not used for control flow
type Info map[string]int

// Environment is a sequential decision process with a variable-size,
// index-based action space
type Environment interface {
	// Reset starts a new episode and returns the initial observation
	Reset() (Observation, error)
	// Step applies the action and returns the next observation,
	// the reward, whether the episode is done, and diagnostics
	Step(action int) (Observation, float64, bool, Info, error)
	// Copy returns an independent clone of the environment, safe to
	// step without affecting the original
	Copy() Environment
}
