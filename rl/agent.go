package rl

import "fmt"

// Policy chooses an action index given an observation and learns
// from completed episode traces
type Policy interface {
	SelectAction(Observation) (int, error)
	// Update is called once per completed episode
	Update(*Trace)
	// Reset clears any learned state
	Reset()
}

type AgentConfig struct {
	Episodes    int
	Horizon     int
	Policy      Policy
	Environment Environment
}

// Agent runs a policy against an environment for the configured
// number of episodes and horizon
type Agent struct {
	config *AgentConfig
	traces []*Trace
}

func NewAgent(config *AgentConfig) *Agent {
	return &Agent{
		config: config,
		traces: make([]*Trace, 0, config.Episodes),
	}
}

// Run executes all episodes, updating the policy after each one
func (a *Agent) Run() error {
	for i := 0; i < a.config.Episodes; i++ {
		trace, err := a.RunEpisode()
		if err != nil {
			return fmt.Errorf("episode %d: %w", i, err)
		}
		a.traces = append(a.traces, trace)
		a.config.Policy.Update(trace)
	}
	return nil
}

// RunEpisode plays a single episode to a terminal state or until the
// horizon is reached and returns its trace
func (a *Agent) RunEpisode() (*Trace, error) {
	env := a.config.Environment
	obs, err := env.Reset()
	if err != nil {
		return nil, err
	}
	trace := NewTrace()
	for step := 0; step < a.config.Horizon; step++ {
		if obs.NumActions() == 0 {
			break
		}
		action, err := a.config.Policy.SelectAction(obs)
		if err != nil {
			return nil, err
		}
		next, reward, done, _, err := env.Step(action)
		if err != nil {
			return nil, err
		}
		trace.Append(obs, action, reward, next, done)
		obs = next
		if done {
			break
		}
	}
	return trace, nil
}

// Traces returns the traces collected by Run
func (a *Agent) Traces() []*Trace {
	return a.traces
}
