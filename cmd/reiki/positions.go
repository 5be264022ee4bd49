package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/bensonlsp/reiki-timer/internal/markdown"
	"github.com/bensonlsp/reiki-timer/internal/ui"
	"github.com/bensonlsp/reiki-timer/position"
	"github.com/spf13/cobra"
)

var positionsCmd = &cobra.Command{
	Use:   "positions [sequence]",
	Short: "List position sequences, or the positions in one",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPositions,
}

func init() {
	rootCmd.AddCommand(positionsCmd)
}

func runPositions(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		builder := ui.NewTableBuilder([]string{"SEQUENCE", "POSITIONS", "FIRST", "LAST"}, len(position.Names()))
		for _, name := range position.Names() {
			seq, err := position.Lookup(string(name))
			if err != nil {
				return err
			}
			first, _ := seq.At(0)
			last, _ := seq.At(seq.Len() - 1)
			builder.AddRow([]string{
				string(seq.Name()),
				strconv.Itoa(seq.Len()),
				ui.TruncateTableCell(first.Label),
				ui.TruncateTableCell(last.Label),
			})
		}
		_, err := fmt.Fprint(out, builder.String())
		return err
	}

	seq, err := position.Lookup(args[0])
	if err != nil {
		return err
	}
	rendered := markdown.Render(ui.TerminalWidth(os.Stdout, 80), 0, []byte(seq.Markdown()))
	_, err = fmt.Fprintln(out, string(rendered))
	return err
}
