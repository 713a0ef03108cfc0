package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"theorycheck/internal/diag"
)

func newExplainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain <code>",
		Short: "Describe a diagnostic code",
		Long: `Print the description of a diagnostic code such as xUnit1010 or SYN3005.
With --list, print every known code.`,
		Args: func(cmd *cobra.Command, args []string) error {
			list, _ := cmd.Flags().GetBool("list")
			if list {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: runExplain,
	}
	cmd.Flags().Bool("list", false, "list all diagnostic codes")
	return cmd
}

func runExplain(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	list, err := cmd.Flags().GetBool("list")
	if err != nil {
		return fmt.Errorf("failed to get list flag: %w", err)
	}
	if list {
		for _, c := range diag.KnownCodes() {
			fmt.Fprintf(out, "%-10s %s\n", c.ID(), c.Title())
		}
		return nil
	}

	code, ok := diag.ParseCode(strings.TrimSpace(args[0]))
	if !ok {
		return fmt.Errorf("unknown diagnostic code %q (see `explain --list`)", args[0])
	}
	writeExplanation(out, code)
	return nil
}

func writeExplanation(w io.Writer, c diag.Code) {
	fmt.Fprintf(w, "%s: %s\n", c.ID(), c.Title())
	if long := c.Explain(); long != c.Title() {
		fmt.Fprintf(w, "\n%s\n", wrapText(long, 72))
	}
}

// wrapText breaks s on spaces so lines stay within width where possible.
func wrapText(s string, width int) string {
	var b strings.Builder
	lineLen := 0
	for i, word := range strings.Fields(s) {
		if i > 0 {
			if lineLen+1+len(word) > width {
				b.WriteByte('\n')
				lineLen = 0
			} else {
				b.WriteByte(' ')
				lineLen++
			}
		}
		b.WriteString(word)
		lineLen += len(word)
	}
	return b.String()
}
