package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/odo/internal/trace"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Steps  int
	Digest bool

	// Token fixes the run token; tests and reproducible runs use it
	// instead of the default UUIDv7Generator.
	Token string
}

// RunResult is the run command's success payload.
type RunResult struct {
	Name   string `json:"name"`
	Token  string `json:"token"`
	Steps  int    `json:"steps"`
	Final  []int  `json:"final"`
	Resets int    `json:"resets"`
	Digest string `json:"digest,omitempty"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <defn.cue>",
		Short: "Advance a defined chain and print its trace",
		Long: `Advance the chain described by a CUE definition, printing the snapshot
after every step. Carries and chain resets appear with --verbose; --digest
prints the canonical trace digest for comparing runs.

Example:
  odo run ./clock.cue --steps 3600
  odo run ./pair.cue --steps 10 --token run-1 --digest`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChain(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Steps, "steps", 0, "number of advances to execute (required)")
	cmd.Flags().BoolVar(&opts.Digest, "digest", false, "print the canonical trace digest")
	cmd.Flags().StringVar(&opts.Token, "token", "", "fixed run token (defaults to a generated UUIDv7)")
	_ = cmd.MarkFlagRequired("steps")

	return cmd
}

func runChain(opts *RunOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if opts.Steps <= 0 {
		return outputError(formatter, ExitCommandError, ErrCodeBadRequest,
			fmt.Sprintf("steps must be positive, got %d", opts.Steps), nil)
	}

	d, err := loadDefinition(formatter, path)
	if err != nil {
		return err
	}
	ch, err := d.Build()
	if err != nil {
		return outputError(formatter, ExitFailure, ErrCodeBounds, err.Error(), nil)
	}

	var tokens trace.TokenGenerator = trace.UUIDv7Generator{}
	if opts.Token != "" {
		tokens = trace.NewFixedGenerator(opts.Token)
	}

	rec := trace.NewRecorder(ch, tokens)
	rec.Run(opts.Steps)
	rec.Detach()
	tr := rec.Trace()

	result := RunResult{
		Name:   d.Name,
		Token:  tr.Token,
		Steps:  opts.Steps,
		Final:  ch.Current(),
		Resets: tr.Cycles(),
	}
	if opts.Digest {
		digest, err := tr.Digest()
		if err != nil {
			return outputError(formatter, ExitCommandError, ErrCodeGeneric, err.Error(), nil)
		}
		result.Digest = digest
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return printRunText(formatter, cmd, result, tr)
}

func printRunText(formatter *OutputFormatter, cmd *cobra.Command, result RunResult, tr trace.Trace) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run %s: %s, %d step(s)\n", result.Token, result.Name, result.Steps)

	for _, e := range tr.Events {
		switch e.Kind {
		case trace.EventAdvance:
			fmt.Fprintf(out, "step %d: %v\n", e.Step, e.Snapshot)
		case trace.EventCarry:
			formatter.VerboseLog("  carry digit %d -> %d", e.Digit, e.Value)
		case trace.EventCycle:
			fmt.Fprintf(out, "cycle at step %d: %v\n", e.Step, e.Snapshot)
		}
	}

	fmt.Fprintf(out, "final: %v, resets: %d\n", result.Final, result.Resets)
	if result.Digest != "" {
		fmt.Fprintf(out, "digest: %s\n", result.Digest)
	}
	return nil
}
