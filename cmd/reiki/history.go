package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bensonlsp/reiki-timer/history"
	"github.com/bensonlsp/reiki-timer/internal/ids"
	"github.com/bensonlsp/reiki-timer/internal/ui"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past sessions",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one past session",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyOpen = history.Open

var historyNow = time.Now

var historyJSON bool

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd)

	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output as JSON")
	historyShowCmd.Flags().BoolVar(&historyJSON, "json", false, "Output as JSON")
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := historyOpen()
	if err != nil {
		return err
	}

	records, err := store.List()
	if err != nil {
		return err
	}

	if historyJSON {
		return encodeJSON(cmd.OutOrStdout(), records)
	}

	if len(records) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "No sessions recorded yet.")
		return err
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), formatHistoryTable(records, historyNow()))
	return err
}

func formatHistoryTable(records []history.Record, now time.Time) string {
	recordIDs := make([]string, 0, len(records))
	for _, record := range records {
		recordIDs = append(recordIDs, record.ID)
	}
	prefixLengths := ids.UniquePrefixLengths(recordIDs)

	builder := ui.NewTableBuilder([]string{"ID", "SEQUENCE", "HOLD", "DONE", "DURATION", "OUTCOME", "AGE"}, len(records))
	for _, record := range records {
		builder.AddRow([]string{
			ui.HighlightID(record.ID, ui.PrefixLength(prefixLengths, record.ID)),
			record.Sequence,
			ui.FormatDurationShort(time.Duration(record.PositionSeconds) * time.Second),
			fmt.Sprintf("%d/%d", record.Completed, record.Positions),
			ui.FormatDurationShort(history.Duration(record)),
			string(record.Outcome),
			ui.FormatTimeAgo(record.EndedAt, now),
		})
	}
	return builder.String()
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	store, err := historyOpen()
	if err != nil {
		return err
	}

	record, err := store.Find(args[0])
	if err != nil {
		return err
	}

	if historyJSON {
		return encodeJSON(cmd.OutOrStdout(), record)
	}

	rows := [][]string{
		{"ID:", record.ID},
		{"Sequence:", record.Sequence},
		{"Hold:", ui.FormatDurationShort(time.Duration(record.PositionSeconds) * time.Second)},
		{"Positions:", strconv.Itoa(record.Completed) + " of " + strconv.Itoa(record.Positions)},
		{"Outcome:", string(record.Outcome)},
		{"Started:", record.StartedAt.Local().Format(time.DateTime)},
		{"Duration:", ui.FormatDurationShort(history.Duration(record))},
	}
	out := cmd.OutOrStdout()
	for _, row := range rows {
		if _, err := fmt.Fprintf(out, "%-11s%s\n", row[0], row[1]); err != nil {
			return err
		}
	}
	return nil
}
