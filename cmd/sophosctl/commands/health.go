package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/fivetwenty-io/sophos-partner-client/pkg/sophos"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewHealthCommand creates the health command group.
func NewHealthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Manage tenant health scores",
		Long:  "Summarize account health check scores across all tenant accounts",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List health scores across all tenants",
		Long:  "Fetch the account health check of every tenant, render summary scores as a table, and export them to CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			return runHealthList(client)
		},
	})

	return cmd
}

func runHealthList(client sophos.Client) error {
	ctx := context.Background()

	rows, err := client.Health().ListAll(ctx)
	if err != nil {
		return fmt.Errorf("fetching health scores: %w", err)
	}

	if len(rows) == 0 {
		fmt.Println("No health data found.")

		return nil
	}

	err = outputHealth(rows)
	if err != nil {
		return err
	}

	if exportEnabled() {
		reportExport(exportHealthCSV(csvDir(), rows))
	}

	return nil
}

func outputHealth(rows []sophos.HealthRow) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(rows)
	case OutputFormatYAML:
		return StandardYAMLRenderer(rows)
	default:
		return renderHealthTable(rows)
	}
}

func renderHealthTable(rows []sophos.HealthRow) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Tenant Name", "Overall Score", "Protection", "Policy", "Exclusions", "Tamper Protection", "Firewall")

	for _, row := range rows {
		_ = table.Append(row.TenantName, row.Overall, row.Protection, row.Policy, row.Exclusions, row.TamperProtection, row.Firewall)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	fmt.Printf("\nTotal tenants checked: %d\n", len(rows))

	return nil
}

// healthCSVHeader matches the column order of healthCSVRow.
func healthCSVHeader() []string {
	return []string{
		"tenant_name", "tenant_id", "overall_score", "protection_score",
		"policy_score", "exclusions_score", "tamper_protection_score", "firewall_score",
	}
}

func healthCSVRow(row sophos.HealthRow) []string {
	return []string{
		row.TenantName, row.TenantID, row.Overall, row.Protection,
		row.Policy, row.Exclusions, row.TamperProtection, row.Firewall,
	}
}

func exportHealthCSV(dir string, rows []sophos.HealthRow) (string, error) {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, healthCSVRow(row))
	}

	return ExportCSV(dir, "health", healthCSVHeader(), records)
}
