package main

import (
	"github.com/spf13/cobra"

	"multicam/internal/config"
	"multicam/internal/services"
)

// detectionOverrides are per-run flags layered over the loaded configuration.
type detectionOverrides struct {
	sensitivity1 float64
	sensitivity2 float64
	iterations   int
}

func (o *detectionOverrides) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&o.sensitivity1, "sensitivity1", 0, "Override detection.sensitivity1 for speaker 1")
	cmd.Flags().Float64Var(&o.sensitivity2, "sensitivity2", 0, "Override detection.sensitivity2 for speaker 2")
	cmd.Flags().IntVar(&o.iterations, "iterations", 0, "Override dilution.iterations")
}

// apply returns a copy of base with every explicitly set flag applied.
func (o *detectionOverrides) apply(cmd *cobra.Command, base *config.Config) (config.Config, error) {
	cfg := *base
	flags := cmd.Flags()
	if flags.Changed("sensitivity1") {
		cfg.Detection.Sensitivity1 = o.sensitivity1
	}
	if flags.Changed("sensitivity2") {
		cfg.Detection.Sensitivity2 = o.sensitivity2
	}
	if flags.Changed("iterations") {
		cfg.Dilution.Iterations = o.iterations
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, services.Wrap(services.ErrInvalidInput, "run", "flags", "", err)
	}
	return cfg, nil
}
