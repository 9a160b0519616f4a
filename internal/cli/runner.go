package cli

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/seitarof/defunc/internal/generator"
	"github.com/seitarof/defunc/internal/scanner"
	"github.com/seitarof/defunc/internal/signature"
	"github.com/seitarof/defunc/internal/synth"
	"github.com/seitarof/defunc/internal/validate"
)

// Runner orchestrates the scanner/validator/synth/generator layers.
type Runner interface {
	Run(cfg *Config) error
	RunAll(fc *FileConfig, dryRun bool) error
}

type runnerImpl struct {
	scanner   scanner.Scanner
	validator validate.Validator
	generator generator.Generator
}

// NewRunner creates a default runner implementation.
func NewRunner(s scanner.Scanner, v validate.Validator, g generator.Generator) Runner {
	return &runnerImpl{
		scanner:   s,
		validator: v,
		generator: g,
	}
}

// Run executes a single generation cycle for one group. The pipeline is
// fail-fast: the first diagnostic aborts with zero output for the group.
func (r *runnerImpl) Run(cfg *Config) error {
	group, err := r.scanner.Scan(cfg.Group)
	if err != nil {
		return errors.Wrap(err, "scan group")
	}

	attr := cfg.Signature
	if attr == "" {
		attr = group.Signature()
	}
	if attr == "" {
		return errors.Errorf(
			"group %q declares no //defunc:signature directive and no --signature was given",
			group.PkgPath)
	}

	sig, err := signature.Parse(attr)
	if err != nil {
		return err
	}

	part := scanner.Split(group)
	log.Debug().
		Str("group", group.PkgPath).
		Int("candidates", len(part.Candidates)).
		Int("passthrough", len(part.Passthrough)).
		Msg("scanned group")
	if len(part.Candidates) == 0 {
		return errors.Errorf("group %q has no exported functions to defunctionalize", group.PkgPath)
	}

	cands, err := r.validator.Validate(group, part.Candidates, sig)
	if err != nil {
		return err
	}

	res := synth.Build(group, sig, cands, part, cfg.Name)
	if err := r.generator.Generate(cfg, res); err != nil {
		return errors.Wrapf(err, "generate %s", cfg.Out)
	}

	log.Debug().
		Str("union", res.Union.Name).
		Int("variants", len(res.Union.Variants)).
		Str("out", cfg.Out).
		Msg("generated union")
	return nil
}

// RunAll processes a batch config in order. Groups are independent: a failing
// group is reported and skipped, later groups still generate, and the combined
// error names every failed entry.
func (r *runnerImpl) RunAll(fc *FileConfig, dryRun bool) error {
	var failures []string
	for i, gc := range fc.Groups {
		cfg := gc.toConfig(dryRun)
		if err := cfg.normalize(); err != nil {
			log.Error().Err(err).Int("entry", i).Msg("skipping group")
			failures = append(failures, fmt.Sprintf("groups[%d]: %v", i, err))
			continue
		}
		if err := r.Run(cfg); err != nil {
			log.Error().Err(err).Int("entry", i).Str("group", cfg.Group).Msg("group failed")
			failures = append(failures, fmt.Sprintf("groups[%d] (%s): %v", i, cfg.Group, err))
		}
	}
	if len(failures) > 0 {
		return errors.Errorf("%d of %d groups failed:\n\t%s",
			len(failures), len(fc.Groups), strings.Join(failures, "\n\t"))
	}
	return nil
}
