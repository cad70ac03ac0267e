package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/odo/internal/counter"
)

// maxPowersetItems caps enumeration at 2^16 subsets.
const maxPowersetItems = 16

// PowersetOptions holds flags for the powerset command.
type PowersetOptions struct {
	*RootOptions
}

// PowersetResult is the powerset command's success payload.
type PowersetResult struct {
	Items   []string   `json:"items"`
	Count   int        `json:"count"`
	Subsets [][]string `json:"subsets"`
}

// NewPowersetCommand creates the powerset command, a fixed-width
// combinatorial enumeration over a binary digit chain.
func NewPowersetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PowersetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "powerset <item>...",
		Short: "Enumerate all subsets of the given items",
		Long: `Enumerate the powerset of the arguments by driving one binary digit
per item through a full chain traversal: each snapshot is a membership
vector, so the chain's reset marks enumeration complete.

Example:
  odo powerset a b c`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPowerset(opts, args, cmd)
		},
	}

	return cmd
}

func runPowerset(opts *PowersetOptions, items []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if len(items) > maxPowersetItems {
		return outputError(formatter, ExitCommandError, ErrCodeBadRequest,
			fmt.Sprintf("at most %d items supported, got %d", maxPowersetItems, len(items)), nil)
	}

	subsets, err := enumerateSubsets(items)
	if err != nil {
		return outputError(formatter, ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	result := PowersetResult{
		Items:   items,
		Count:   len(subsets),
		Subsets: subsets,
	}
	if opts.Format == "json" {
		return formatter.Success(result)
	}

	out := cmd.OutOrStdout()
	for _, subset := range subsets {
		fmt.Fprintf(out, "{%s}\n", strings.Join(subset, " "))
	}
	fmt.Fprintf(out, "%d subset(s)\n", result.Count)
	return nil
}

// enumerateSubsets walks one full traversal of an all-binary chain,
// one digit per item. Each snapshot is a membership vector.
func enumerateSubsets(items []string) ([][]string, error) {
	digits := make([]*counter.Counter, len(items))
	for i := range items {
		c, err := counter.New(2)
		if err != nil {
			return nil, err
		}
		digits[i] = c
	}
	ch, err := counter.NewChain(digits...)
	if err != nil {
		return nil, err
	}

	subsets := make([][]string, 0, ch.Radix())
	for snapshot := range ch.UntilReset() {
		subset := []string{}
		for i, bit := range snapshot {
			if bit == 1 {
				subset = append(subset, items[i])
			}
		}
		subsets = append(subsets, subset)
	}
	return subsets, nil
}
