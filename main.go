package main

import (
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/samuelfneumann/gopoint/agent"
	"github.com/samuelfneumann/gopoint/agent/heuristic"
	"github.com/samuelfneumann/gopoint/environment/envconfig"
	"github.com/samuelfneumann/gopoint/environment/pointmass"
	"github.com/samuelfneumann/gopoint/experiment"
	"github.com/samuelfneumann/gopoint/experiment/tracker"
)

var (
	configFile string
	taskName   string
	encoding   string
	policyName string
	direction  float64
	seed       uint64
	steps      uint
	episodes   uint
	outDir     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gopoint",
		Short: "Gopoint runs scripted policies on a 2D point mass " +
			"environment where an agent must walk to a target point.",
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"path to a YAML environment configuration, overriding the "+
			"task and encoding flags")
	rootCmd.PersistentFlags().StringVar(&taskName, "task",
		string(envconfig.Reach), "task to run: Reach or DistancePenalty")
	rootCmd.PersistentFlags().StringVar(&encoding, "encoding",
		string(pointmass.Relative),
		"observation encoding: Relative or Absolute")
	rootCmd.PersistentFlags().StringVar(&policyName, "policy", "homing",
		"policy to run: homing, random, or constant")
	rootCmd.PersistentFlags().Float64Var(&direction, "direction",
		math.Pi/2, "heading for the constant policy, in radians")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 1923, "random seed")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run an online experiment, saving episodic data",
		RunE:  runExperiment,
	}
	runCmd.Flags().UintVar(&steps, "steps", 10_000,
		"total environment steps to run")
	runCmd.Flags().StringVar(&outDir, "out", ".",
		"directory to save tracked data in")

	evalCmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate a policy, reporting each episode",
		RunE:  evalExperiment,
	}
	evalCmd.Flags().UintVar(&episodes, "episodes", 10,
		"number of evaluation episodes")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.Execute()
}

// loadConfig builds the environment configuration from the config file
// if one was given, and from the command-line flags otherwise
func loadConfig() (envconfig.Config, error) {
	if configFile != "" {
		return envconfig.Load(configFile)
	}

	return envconfig.NewConfig(
		envconfig.PointMass,
		envconfig.TaskName(taskName),
		pointmass.Encoding(encoding),
		uint(pointmass.MaxSteps),
		1.0,
	), nil
}

// newPolicy builds the policy named by the policy flag
func newPolicy() (agent.Agent, error) {
	switch policyName {
	case "random":
		return heuristic.NewRandom(seed), nil

	case "constant":
		return heuristic.NewConstant(direction), nil

	case "homing":
		return heuristic.NewHoming(), nil
	}

	return nil, fmt.Errorf("no such policy %v", policyName)
}

func runExperiment(cmd *cobra.Command, args []string) error {
	conf, err := loadConfig()
	if err != nil {
		return fmt.Errorf("could not load configuration: %v", err)
	}

	e, _, err := conf.Create(seed)
	if err != nil {
		return fmt.Errorf("could not create environment: %v", err)
	}

	a, err := newPolicy()
	if err != nil {
		return err
	}

	// Each run gets its own data files
	run := uuid.New().String()
	returnsFile := filepath.Join(outDir, fmt.Sprintf("returns-%v.bin", run))
	lengthsFile := filepath.Join(outDir, fmt.Sprintf("lengths-%v.bin", run))

	exp := experiment.NewOnline(e, a, steps,
		tracker.NewReturn(returnsFile),
		tracker.NewEpisodeLength(lengthsFile))
	if err := exp.Run(); err != nil {
		return fmt.Errorf("experiment failed: %v", err)
	}
	exp.Save()

	returns := tracker.LoadData(returnsFile)
	lengths := tracker.LoadData(lengthsFile)

	log.Printf("Ran %v episodes over %v steps", len(returns), steps)
	if len(returns) > 0 {
		log.Printf("Mean return: %v", stat.Mean(returns, nil))
		log.Printf("Mean episode length: %v", stat.Mean(lengths, nil))
	}
	log.Printf("Saved data to %v and %v", returnsFile, lengthsFile)

	return nil
}

func evalExperiment(cmd *cobra.Command, args []string) error {
	conf, err := loadConfig()
	if err != nil {
		return fmt.Errorf("could not load configuration: %v", err)
	}

	e, _, err := conf.Create(seed)
	if err != nil {
		return fmt.Errorf("could not create environment: %v", err)
	}

	a, err := newPolicy()
	if err != nil {
		return err
	}

	exp := experiment.NewEvaluation(e, a, episodes, os.Stdout)
	if err := exp.Run(); err != nil {
		return fmt.Errorf("evaluation failed: %v", err)
	}

	return nil
}
