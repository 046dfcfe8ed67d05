package benchmarks

import (
	"fmt"
	"path"
	"time"

	"github.com/spf13/cobra"

	"github.com/iliailmer/deepgroebner/buchberger"
	"github.com/iliailmer/deepgroebner/ideals"
	"github.com/iliailmer/deepgroebner/policies"
	"github.com/iliailmer/deepgroebner/poly"
	"github.com/iliailmer/deepgroebner/rl"
)

var (
	numVars       int
	modulus       uint32
	order         string
	elimination   string
	rewardMode    string
	numGenerators int
	maxDegree     int
	maxTerms      int
	homogeneous   bool
	binomial      bool
	leadK         int
)

func addIdealFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&numVars, "vars", 3, "Number of ring variables")
	cmd.Flags().Uint32Var(&modulus, "modulus", 32003, "Prime coefficient modulus")
	cmd.Flags().StringVar(&order, "order", "grevlex", "Monomial order: lex, grlex or grevlex")
	cmd.Flags().StringVar(&elimination, "elimination", "gebauermoeller", "Pair elimination: none, lcm or gebauermoeller")
	cmd.Flags().StringVar(&rewardMode, "reward", "step", "Reward mode: step or additions")
	cmd.Flags().IntVar(&numGenerators, "num-generators", 5, "Generators per sampled ideal")
	cmd.Flags().IntVar(&maxDegree, "max-degree", 5, "Maximum total degree of sampled generators")
	cmd.Flags().IntVar(&maxTerms, "max-terms", 4, "Maximum terms per sampled generator")
	cmd.Flags().BoolVar(&homogeneous, "homogeneous", false, "Sample homogeneous generators")
	cmd.Flags().BoolVar(&binomial, "binomial", false, "Sample binomial generators")
	cmd.Flags().IntVar(&leadK, "lead-monomials", 1, "Lead monomials per generator in the observation")
}

func experimentSeed() uint64 {
	if seed != 0 {
		return seed
	}
	return uint64(time.Now().UnixNano())
}

// newBuchbergerEnv builds a fresh wrapped environment so that
// experiments never share mutable state
func newBuchbergerEnv(seed uint64) (*buchberger.LeadMonomialsEnv, error) {
	ring, err := poly.NewRing(poly.DefaultVars(numVars), modulus, order)
	if err != nil {
		return nil, err
	}
	var gen ideals.Generator
	if binomial {
		gen, err = ideals.NewBinomialGenerator(ring, numGenerators, maxDegree, homogeneous, seed)
	} else {
		gen, err = ideals.NewPolynomialGenerator(ring, numGenerators, maxDegree, maxTerms, homogeneous, seed)
	}
	if err != nil {
		return nil, err
	}
	env, err := buchberger.NewEnv(buchberger.Config{
		Ring:        ring,
		Generator:   gen,
		Elimination: elimination,
		RewardMode:  rewardMode,
	})
	if err != nil {
		return nil, err
	}
	return buchberger.NewLeadMonomialsEnv(env, leadK), nil
}

func BuchbergerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buchberger",
		Short: "Compare pair-selection policies on random ideals",
		RunE: func(cmd *cobra.Command, args []string) error {
			for run := 0; run < runs; run++ {
				savePath := saveFile
				if runs > 1 {
					savePath = path.Join(saveFile, fmt.Sprintf("run%d", run))
				}
				if err := runBuchbergerComparison(savePath, experimentSeed()+uint64(run)); err != nil {
					return err
				}
			}
			return nil
		},
	}
	addIdealFlags(cmd)
	return cmd
}

func runBuchbergerComparison(savePath string, seed uint64) error {
	c := rl.NewComparison(rl.ReturnsAnalyzer(), rl.ReturnsPlotComparator(savePath, 100))

	featureDim := 2 * leadK * numVars
	configs := []struct {
		name   string
		policy rl.Policy
	}{
		{"First", policies.NewFirstPolicy()},
		{"Degree", policies.NewDegreePolicy()},
		{"Random", policies.NewRandomPolicyWithSeed(seed)},
		{"SoftMaxQ", policies.NewSoftMaxQPolicy(0.3, 0.99)},
		{"LinearSoftmax", policies.NewModelPolicy(
			policies.NewLinearSoftmax(featureDim, 0.0001, 0.99).
				WithBaseline(policies.NewPairsLeftBaseline(0.99)))},
	}
	for _, cfg := range configs {
		env, err := newBuchbergerEnv(seed)
		if err != nil {
			return err
		}
		c.AddExperiment(rl.NewExperiment(cfg.name, &rl.AgentConfig{
			Episodes:    episodes,
			Horizon:     horizon,
			Policy:      cfg.policy,
			Environment: env,
		}))
	}
	return c.Run()
}
