package benchmarks

import (
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/iliailmer/deepgroebner/policies"
	"github.com/iliailmer/deepgroebner/rl"
)

var (
	learningRate float64
	gamma        float64
	weightsFile  string
)

func TrainCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a linear softmax policy and save its weights",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newBuchbergerEnv(experimentSeed())
			if err != nil {
				return err
			}
			model := policies.NewLinearSoftmax(2*leadK*numVars, learningRate, gamma).
				WithBaseline(policies.NewPairsLeftBaseline(gamma))
			if weightsFile != "" {
				switch err := model.LoadWeights(weightsFile); {
				case err == nil:
					fmt.Printf("Resuming from %s\n", weightsFile)
				case errors.Is(err, os.ErrNotExist):
					fmt.Printf("No weights at %s, starting fresh\n", weightsFile)
				default:
					return fmt.Errorf("loading weights from %s: %w", weightsFile, err)
				}
			}
			agent := rl.NewAgent(&rl.AgentConfig{
				Episodes:    episodes,
				Horizon:     horizon,
				Policy:      policies.NewModelPolicy(model),
				Environment: env,
			})
			if err := agent.Run(); err != nil {
				return err
			}

			returns := rl.ReturnsAnalyzer()(agent.Traces()).([]float64)
			fmt.Printf("Trained %d episodes, mean return %.3f\n", len(returns), stat.Mean(returns, nil))

			out := weightsFile
			if out == "" {
				out = path.Join(saveFile, "weights.json")
			}
			if err := model.SaveWeights(out); err != nil {
				return err
			}
			fmt.Printf("Weights saved to %s\n", out)
			return nil
		},
	}
	addIdealFlags(cmd)
	cmd.Flags().Float64Var(&learningRate, "lr", 0.0001, "Learning rate")
	cmd.Flags().Float64Var(&gamma, "gamma", 0.99, "Discount factor")
	cmd.Flags().StringVar(&weightsFile, "weights", "", "Weights file to resume from and save to")
	return cmd
}
