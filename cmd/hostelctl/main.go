package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hostelctl",
	Short: "hostelctl - HostelHub administration tool",
	Long: `hostelctl manages a HostelHub deployment: database migrations, the meal plan
catalog, admin accounts and monthly mess reports.

It reads the same environment (or .env file) as the API server.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedPlansCmd)
	rootCmd.AddCommand(createAdminCmd)
	rootCmd.AddCommand(exportSummaryCmd)
	rootCmd.AddCommand(versionCmd)

	createAdminCmd.Flags().String("email", "", "Admin email address (required)")
	createAdminCmd.Flags().String("name", "", "Display name (defaults to the email's local part)")
	createAdminCmd.Flags().String("password", "", "Password (a random one is generated and printed when empty)")
	_ = createAdminCmd.MarkFlagRequired("email")

	exportSummaryCmd.Flags().String("period", "", `Billing period, e.g. "October 2025" (defaults to the current month)`)
	exportSummaryCmd.Flags().StringP("out", "o", "", "Output file (defaults to mess_summary_YYYY_MM.xlsx)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
