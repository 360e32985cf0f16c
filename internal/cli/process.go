package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/mediakit/internal/config"
	"codeberg.org/snonux/mediakit/internal/engine"
	"codeberg.org/snonux/mediakit/internal/logging"
	"codeberg.org/snonux/mediakit/internal/processor"
	"codeberg.org/snonux/mediakit/internal/registry"
	"codeberg.org/snonux/mediakit/internal/report"
)

func newDomainCommand(flags *Flags, kind processor.Kind, name, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name,
		Short: short,
	}
	cmd.AddCommand(
		newProcessCommand(flags, kind),
		newListCommand(kind),
	)
	return cmd
}

func newProcessCommand(flags *Flags, kind processor.Kind) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process [input] method",
		Short: "Process a file, a directory, or a list of inputs",
		Long: `Process a single file or every supported file under a directory.

With --from-file, the positional input is omitted and input paths are read
from the given list file instead.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if flags.FromFile != "" {
				return cobra.ExactArgs(1)(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, args, flags, kind)
		},
	}
	registerProcessFlags(cmd.Flags(), flags)
	return cmd
}

func newListCommand(kind processor.Kind) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List available %s processing methods", kind),
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			names := registry.NamesByKind(kind)
			if len(names) == 0 {
				cmd.Printf("No %s methods are registered\n", kind)
				return
			}
			cmd.Printf("Available %s processing methods:\n", kind)
			for _, name := range names {
				cmd.Printf("  %s\n", name)
			}
		},
	}
}

func runProcess(cmd *cobra.Command, args []string, flags *Flags, kind processor.Kind) error {
	cfg, err := ResolveConfig(cmd, flags)
	if err != nil {
		return err
	}
	if err := logging.Setup(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile}); err != nil {
		return err
	}

	method := args[len(args)-1]
	proc, err := registry.New(method, cfg)
	if err != nil {
		return err
	}
	if proc.Kind() != kind {
		return fmt.Errorf("%w: %q is not a %s processor", registry.ErrNotFound, method, kind)
	}

	params, err := ParseParams(flags.Params)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	inputs, single, err := gatherInputs(args, flags, kind, cfg)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		cmd.Printf("No supported %s files to process\n", kind)
		return nil
	}

	// A single explicit file skips the pool and reports its own failure
	// directly; a batch records per-item failures and succeeds as a run.
	if single {
		return processSingle(ctx, cmd, proc, inputs[0], params, cfg, flags)
	}
	return processBatch(ctx, cmd, proc, method, inputs, params, cfg, flags)
}

func processSingle(ctx context.Context, cmd *cobra.Command, proc processor.Processor, input string, params processor.Params, cfg *config.Config, flags *Flags) error {
	if err := proc.ValidateInput(input); err != nil {
		return err
	}
	req := processor.Request{OutputPath: flags.OutputDir, Params: params, Config: cfg}
	if flags.OutputDir != "" {
		if info, err := os.Stat(flags.OutputDir); err == nil && info.IsDir() {
			req.OutputPath = filepath.Join(flags.OutputDir, filepath.Base(input))
		}
	}
	out, err := proc.Process(ctx, input, req)
	if err != nil {
		return err
	}
	if out.Path != "" {
		cmd.Printf("Processing completed: %s\n", out.Path)
	} else {
		cmd.Printf("Processing completed: %v\n", out.Meta)
	}
	return nil
}

func processBatch(ctx context.Context, cmd *cobra.Command, proc processor.Processor, method string, inputs []string, params processor.Params, cfg *config.Config, flags *Flags) error {
	if flags.OutputDir != "" {
		if info, err := os.Stat(flags.OutputDir); err == nil && !info.IsDir() {
			return processor.Configf("--output must be a directory for batch mode")
		}
		if err := os.MkdirAll(flags.OutputDir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	started := time.Now()
	results, err := engine.Run(ctx, proc, inputs, cfg, engine.Options{
		OutputDir:   flags.OutputDir,
		Params:      params,
		Description: fmt.Sprintf("Processing with %s", method),
	})
	if err != nil {
		return err
	}

	s := engine.Summarize(results)
	cmd.Printf("Processed %d files: %d succeeded, %d failed\n", s.Total, s.Succeeded, s.Failed)
	for _, r := range results {
		if r.Failed() {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %v\n", r.Input, r.Err)
		}
	}

	if flags.Report != "" {
		run := report.Run{
			ID:         report.NewRunID(),
			Processor:  method,
			StartedAt:  started,
			FinishedAt: time.Now(),
		}
		if err := report.Write(flags.Report, run, results); err != nil {
			return err
		}
		cmd.Printf("Report written to %s (run %s)\n", flags.Report, run.ID)
	}
	return nil
}
