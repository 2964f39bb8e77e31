package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/osse101/CoopTokenSim_Go/internal/config"
	"github.com/osse101/CoopTokenSim_Go/internal/domain"
	"github.com/osse101/CoopTokenSim_Go/internal/projection"
	"github.com/osse101/CoopTokenSim_Go/internal/scenario"
	"github.com/osse101/CoopTokenSim_Go/internal/validation"
)

// PresetsCommand lists the built-in run presets
type PresetsCommand struct {
	presets *scenario.Registry
	out     io.Writer
}

func (c *PresetsCommand) Name() string        { return "presets" }
func (c *PresetsCommand) Description() string { return "List built-in simulation presets" }

func (c *PresetsCommand) Run(_ context.Context, _ []string) error {
	for _, p := range c.presets.List() {
		fmt.Fprintf(c.out, "%-18s %s\n", p.Name, p.Description)
	}
	return nil
}

// CompareCommand runs the traditional and cooperative scenarios side by side
type CompareCommand struct {
	engine  *scenario.Engine
	presets *scenario.Registry
	out     io.Writer
}

func (c *CompareCommand) Name() string        { return "compare" }
func (c *CompareCommand) Description() string { return "Run a traditional vs cooperative comparison" }

func (c *CompareCommand) Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	fs.SetOutput(c.out)
	preset := fs.String("preset", scenario.PresetBaseline, "preset name")
	weeks := fs.Int("weeks", 0, "override the number of weeks")
	participants := fs.Int("participants", 0, "override the participant count")
	seed := fs.Int64("seed", config.DefaultSeed, "random seed")
	summaryOnly := fs.Bool("summary", false, "print only the narrative summary")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, ok := c.presets.Get(*preset)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrPresetNotFound, *preset)
	}
	cfg := p.Config
	cfg.Seed = *seed
	if *weeks > 0 {
		cfg.Weeks = *weeks
	}
	if *participants > 0 {
		cfg.ParticipantCount = *participants
	}

	cmp, err := c.engine.Compare(ctx, cfg)
	if err != nil {
		return err
	}
	if *summaryOnly {
		return writeJSON(c.out, cmp.Summary)
	}
	return writeJSON(c.out, cmp)
}

// ValidateCommand validates projection scenario files against simulated runs
type ValidateCommand struct {
	engine *scenario.Engine
	out    io.Writer
}

func (c *ValidateCommand) Name() string        { return "validate" }
func (c *ValidateCommand) Description() string { return "Validate and rank projection scenarios" }

func (c *ValidateCommand) Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	fs.SetOutput(c.out)
	dir := fs.String("dir", config.ConfigPathProjections, "directory of projection scenario files")
	horizon := fs.Int("weeks", projection.DefaultHorizonWeeks, "validation horizon in weeks")
	seed := fs.Int64("seed", projection.DefaultSeed, "random seed")
	if err := fs.Parse(args); err != nil {
		return err
	}

	opts := projection.DefaultOptions()
	opts.HorizonWeeks = *horizon
	opts.Seed = *seed
	v, err := projection.NewValidator(c.engine, opts, nil)
	if err != nil {
		return err
	}

	scenarios, err := projection.LoadScenarios(ctx, *dir, validation.NewSchemaValidator())
	if err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		if scenarios, err = selectScenarios(scenarios, fs.Args()); err != nil {
			return err
		}
	}

	cmp, err := v.CompareScenarios(ctx, scenarios)
	if err != nil {
		return err
	}
	return writeJSON(c.out, cmp)
}

// selectScenarios keeps the named scenarios in the order given
func selectScenarios(all []domain.ProjectionScenario, names []string) ([]domain.ProjectionScenario, error) {
	byName := make(map[string]domain.ProjectionScenario, len(all))
	for _, ps := range all {
		byName[ps.Name] = ps
	}
	out := make([]domain.ProjectionScenario, 0, len(names))
	for _, name := range names {
		ps, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrScenarioNotFound, name)
		}
		out = append(out, ps)
	}
	return out, nil
}
