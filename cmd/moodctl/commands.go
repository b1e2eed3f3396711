package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yungbote/moodtracker-backend/internal/domain/mood"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := openSession(true)
		if err != nil {
			return err
		}
		defer s.Close()
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "schema migrated (%s)\n", s.db.Driver())
		return err
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export one month of a user's entries as CSV",
	Example: `  moodctl export --user ada@example.com --month 2024-01
  moodctl export --user ada@example.com --month 2024-01 --out january.csv`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		email, _ := cmd.Flags().GetString("user")
		month, _ := cmd.Flags().GetString("month")
		out, _ := cmd.Flags().GetString("out")

		s, err := openSession(false)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx, err := s.actAs(cmd.Context(), email)
		if err != nil {
			return err
		}
		csv, err := s.analysis.ExportMonth(ctx, month)
		if err != nil {
			return err
		}
		if out == "" {
			_, err = fmt.Fprint(cmd.OutOrStdout(), csv)
			return err
		}
		if err := os.WriteFile(out, []byte(csv), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
		return err
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print mood statistics for a date range",
	RunE: func(cmd *cobra.Command, _ []string) error {
		email, _ := cmd.Flags().GetString("user")
		startRaw, _ := cmd.Flags().GetString("start")
		endRaw, _ := cmd.Flags().GetString("end")

		start, err := mood.ParseDay(startRaw)
		if err != nil {
			return fmt.Errorf("--start: %w", err)
		}
		end, err := mood.ParseDay(endRaw)
		if err != nil {
			return fmt.Errorf("--end: %w", err)
		}

		s, err := openSession(false)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx, err := s.actAs(cmd.Context(), email)
		if err != nil {
			return err
		}
		snap, err := s.entries.StatisticsBetween(ctx, start, end)
		if err != nil {
			return err
		}
		return writeStatsTable(cmd.OutOrStdout(), snap)
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the summary report comparing two months",
	RunE: func(cmd *cobra.Command, _ []string) error {
		email, _ := cmd.Flags().GetString("user")
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")

		s, err := openSession(false)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx, err := s.actAs(cmd.Context(), email)
		if err != nil {
			return err
		}
		report, err := s.analysis.SummaryReport(ctx, from, to)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), report)
		return err
	},
}

func init() {
	for _, c := range []*cobra.Command{exportCmd, statsCmd, reportCmd} {
		c.Flags().String("user", "", "Email of the user to act as")
		_ = c.MarkFlagRequired("user")
	}

	exportCmd.Flags().String("month", "", "Month as YYYY-MM")
	exportCmd.Flags().String("out", "", "Write CSV to this file instead of stdout")
	_ = exportCmd.MarkFlagRequired("month")

	statsCmd.Flags().String("start", "", "First day (YYYY-MM-DD)")
	statsCmd.Flags().String("end", "", "Last day (YYYY-MM-DD)")
	_ = statsCmd.MarkFlagRequired("start")
	_ = statsCmd.MarkFlagRequired("end")

	reportCmd.Flags().String("from", "", "First month (YYYY-MM)")
	reportCmd.Flags().String("to", "", "Second month (YYYY-MM)")
	_ = reportCmd.MarkFlagRequired("from")
	_ = reportCmd.MarkFlagRequired("to")
}
