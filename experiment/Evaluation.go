package experiment

import (
	"fmt"
	"io"

	"github.com/samuelfneumann/gopoint/agent"
	env "github.com/samuelfneumann/gopoint/environment"
	"github.com/samuelfneumann/gopoint/experiment/tracker"
	ts "github.com/samuelfneumann/gopoint/timestep"
)

// initialDistancer is implemented by environments that measure the
// distance between the agent and its goal at the start of each episode
type initialDistancer interface {
	InitialDistance() float64
}

// Evaluation is an Experiment that runs a fixed number of episodes
// with the agent placed in evaluation mode, writing a one-line report
// on each episode as it finishes. The agent never observes timesteps
// and never updates, so no learning is performed.
type Evaluation struct {
	env.Environment
	agent.Agent
	episodes        uint
	currentEpisodes uint
	out             io.Writer
	trackers        []tracker.Tracker
}

// NewEvaluation creates and returns a new evaluation experiment on a
// given environment with a given agent. The experiment runs episodes
// episodes, reporting each to out. The agent is placed in evaluation
// mode for the lifetime of the experiment.
func NewEvaluation(e env.Environment, a agent.Agent, episodes uint,
	out io.Writer, t ...tracker.Tracker) *Evaluation {
	a.Eval()
	return &Evaluation{e, a, episodes, 0, out, t}
}

// Register registers a tracker.Tracker with an Experiment so that data
// generated during the experiment can be tracked and saved
func (e *Evaluation) Register(t tracker.Tracker) {
	e.trackers = append(e.trackers, t)
}

// RunEpisode runs a single episode of the experiment
func (e *Evaluation) RunEpisode() (bool, error) {
	step, err := e.Environment.Reset()
	if err != nil {
		return false, fmt.Errorf("runEpisode: could not reset "+
			"environment: %v", err)
	}
	e.track(step)

	for !step.Last() {
		action := e.Agent.SelectAction(step)
		step, _, err = e.Environment.Step(action)
		if err != nil {
			return false, fmt.Errorf("runEpisode: could not step "+
				"environment: %v", err)
		}
		e.track(step)
	}

	e.currentEpisodes++
	e.report(step)

	// Return whether or not the episode budget has been used up
	return e.currentEpisodes >= e.episodes, nil
}

// Run runs the entire experiment for all episodes
func (e *Evaluation) Run() error {
	ended := false

	for !ended {
		var err error
		ended, err = e.RunEpisode()
		if err != nil {
			return err
		}
	}

	return nil
}

// Save saves all the data cached by the Trackers to disk
func (e *Evaluation) Save() {
	for _, tracker := range e.trackers {
		tracker.Save()
	}
}

// report writes a one-line summary of a finished episode to the
// experiment's output
func (e *Evaluation) report(last ts.TimeStep) {
	if d, ok := e.Environment.(initialDistancer); ok {
		fmt.Fprintf(e.out, "Initial distance: %.3f. Took %v steps.\n",
			d.InitialDistance(), last.Number)
		return
	}

	fmt.Fprintf(e.out, "Took %v steps.\n", last.Number)
}

// track tracks the current timestep by caching its data in each Tracker
func (e *Evaluation) track(t ts.TimeStep) {
	for _, tracker := range e.trackers {
		tracker.Track(t)
	}
}
