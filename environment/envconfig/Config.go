// Package envconfig provides configuration structs for configuring
// environments with default start state distributions and tasks.
// Environment configurations in this package are YAML serializable.
package envconfig

import (
	"errors"
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r1"
	"gopkg.in/yaml.v3"

	env "github.com/samuelfneumann/gopoint/environment"
	"github.com/samuelfneumann/gopoint/environment/pointmass"
	ts "github.com/samuelfneumann/gopoint/timestep"
)

// EnvName stores the name of environments that can be configured with
// this package
type EnvName string

// Environments available for configuration
const (
	PointMass EnvName = "PointMass"
)

// TaskName stores the tasks that can be configured with this package.
// The tasks that can be used with each environment are as follows:
//
//	Environment			Task
//	PointMass			Reach
//						DistancePenalty
type TaskName string

// Tasks available for configuration
const (
	Reach           TaskName = "Reach"
	DistancePenalty TaskName = "DistancePenalty"
)

// ConfigError implements errors raised when a Config names an unknown
// environment, task, or observation encoding.
type ConfigError struct {
	Op  string
	Err error
}

// Error satisfies the error interface
func (e *ConfigError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

var errUnknownEnvironment = errors.New("no such environment")
var errUnknownTask = errors.New("no such task")
var errUnknownEncoding = errors.New("no such observation encoding")

// IsUnknownConfig returns whether or not an error reports that a
// Config named an environment, task, or observation encoding that this
// package cannot create. Such configurations are never silently
// replaced with defaults.
func IsUnknownConfig(err error) bool {
	if confErr, ok := err.(*ConfigError); ok {
		err = confErr.Err
	}
	return errors.Is(err, errUnknownEnvironment) ||
		errors.Is(err, errUnknownTask) ||
		errors.Is(err, errUnknownEncoding)
}

// Config implements a specific configuration of a specific environment
// and specific task. Not all environments can have all tasks.
type Config struct {
	Environment   EnvName            `yaml:"environment"`
	Task          TaskName           `yaml:"task"`
	Encoding      pointmass.Encoding `yaml:"encoding"`
	EpisodeCutoff uint               `yaml:"episode_cutoff"`
	Discount      float64            `yaml:"discount"`
}

// NewConfig returns a new environment Config
func NewConfig(envName EnvName, taskName TaskName,
	encoding pointmass.Encoding, episodeCutoff uint,
	discount float64) Config {

	return Config{
		Environment:   envName,
		Task:          taskName,
		Encoding:      encoding,
		EpisodeCutoff: episodeCutoff,
		Discount:      discount,
	}
}

// Load reads a Config from the YAML file at path. Fields omitted from
// the file fall back to defaults: the PointMass environment, the Reach
// task, the Relative observation encoding, an episode cutoff of
// pointmass.MaxSteps, and no discounting.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Config{}, fmt.Errorf("load: %w", err)
	}

	if c.Environment == "" {
		c.Environment = PointMass
	}
	if c.Task == "" {
		c.Task = Reach
	}
	if c.Encoding == "" {
		c.Encoding = pointmass.Relative
	}
	if c.EpisodeCutoff == 0 {
		c.EpisodeCutoff = uint(pointmass.MaxSteps)
	}
	if c.Discount == 0 {
		c.Discount = 1.0
	}

	return c, nil
}

// Create returns the environment described by the Config as well as
// the first timestep of the environment.
func (c Config) Create(seed uint64) (env.Environment, ts.TimeStep, error) {
	switch c.Environment {
	case PointMass:
		return CreatePointMass(c.Task, c.Encoding, int(c.EpisodeCutoff),
			seed, c.Discount)
	}

	return nil, ts.TimeStep{}, &ConfigError{
		Op:  "create",
		Err: fmt.Errorf("%w %v", errUnknownEnvironment, c.Environment),
	}
}

// CreatePointMass is a factory for creating the PointMass environment
// with its default start state distribution: both the agent's and the
// target's positions are drawn uniformly from the unit square.
func CreatePointMass(taskName TaskName, encoding pointmass.Encoding,
	cutoff int, seed uint64, discount float64) (env.Environment,
	ts.TimeStep, error) {

	unit := r1.Interval{Min: 0.0, Max: 1.0}
	starter := env.NewUniformStarter([]r1.Interval{unit, unit, unit, unit},
		seed)

	var task env.Task
	switch taskName {
	case Reach:
		task = pointmass.NewReach(cutoff)

	case DistancePenalty:
		task = pointmass.NewDistancePenalty(cutoff)

	default:
		return nil, ts.TimeStep{}, &ConfigError{
			Op:  "createPointMass",
			Err: fmt.Errorf("%w %v", errUnknownTask, taskName),
		}
	}

	switch encoding {
	case pointmass.Relative, pointmass.Absolute:

	default:
		return nil, ts.TimeStep{}, &ConfigError{
			Op:  "createPointMass",
			Err: fmt.Errorf("%w %v", errUnknownEncoding, encoding),
		}
	}

	return pointmass.New(task, starter, encoding, discount)
}
