package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/odo/internal/counter"
	"github.com/roach88/odo/internal/event"
)

// ClockOptions holds flags for the clock command.
type ClockOptions struct {
	*RootOptions
	Ticks int
	From  string
}

// ClockResult is the clock command's success payload.
type ClockResult struct {
	From  string `json:"from"`
	Ticks int    `json:"ticks"`
	Time  string `json:"time"`
	Days  int    `json:"days"`
}

// NewClockCommand creates the clock command, a 24-hour clock simulation
// on a 60/60/24 chain.
func NewClockCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ClockOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "clock",
		Short: "Simulate a 24-hour clock",
		Long: `Advance a 24-hour clock built from a seconds/minutes/hours chain.

Each tick is one second; carries roll seconds into minutes and minutes
into hours, and the chain's own reset marks a day boundary.

Example:
  odo clock --ticks 3661 --from 23:59:30`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClock(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Ticks, "ticks", 0, "seconds to advance (required)")
	cmd.Flags().StringVar(&opts.From, "from", "00:00:00", "starting time (HH:MM:SS)")
	_ = cmd.MarkFlagRequired("ticks")

	return cmd
}

func runClock(opts *ClockOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if opts.Ticks < 0 {
		return outputError(formatter, ExitCommandError, ErrCodeBadRequest,
			fmt.Sprintf("ticks must not be negative, got %d", opts.Ticks), nil)
	}

	var h, m, s int
	if n, err := fmt.Sscanf(opts.From, "%d:%d:%d", &h, &m, &s); err != nil || n != 3 {
		return outputError(formatter, ExitCommandError, ErrCodeBadRequest,
			fmt.Sprintf("invalid --from %q: want HH:MM:SS", opts.From), nil)
	}

	ch, err := clockChain(h, m, s)
	if err != nil {
		return outputError(formatter, ExitCommandError, ErrCodeBadRequest,
			fmt.Sprintf("invalid --from %q: %v", opts.From, err), nil)
	}

	days := 0
	// Day boundaries are chain resets: every digit wrapped at once.
	_ = ch.OnReset(event.Func(func([]int) { days++ }))

	for i := 0; i < opts.Ticks; i++ {
		ch.Advance()
	}

	final := ch.Current() // [seconds, minutes, hours]
	result := ClockResult{
		From:  fmt.Sprintf("%02d:%02d:%02d", h, m, s),
		Ticks: opts.Ticks,
		Time:  fmt.Sprintf("%02d:%02d:%02d", final[2], final[1], final[0]),
		Days:  days,
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return formatter.Success(fmt.Sprintf("%s + %d tick(s) = %s (%d day boundary(ies))",
		result.From, result.Ticks, result.Time, result.Days))
}

// clockChain builds the seconds/minutes/hours chain, least-significant
// digit first.
func clockChain(h, m, s int) (*counter.Chain, error) {
	seconds, err := counter.New(60, counter.WithStart(s))
	if err != nil {
		return nil, fmt.Errorf("seconds: %w", err)
	}
	minutes, err := counter.New(60, counter.WithStart(m))
	if err != nil {
		return nil, fmt.Errorf("minutes: %w", err)
	}
	hours, err := counter.New(24, counter.WithStart(h))
	if err != nil {
		return nil, fmt.Errorf("hours: %w", err)
	}
	return counter.NewChain(seconds, minutes, hours)
}
