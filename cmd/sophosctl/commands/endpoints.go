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

// NewEndpointsCommand creates the endpoints command group.
func NewEndpointsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "endpoints",
		Aliases: []string{"endpoint"},
		Short:   "Manage tenant endpoints",
		Long:    "List protected endpoints across all tenant accounts",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List endpoints across all tenants",
		Long:  "List the protected endpoints of every tenant, render them as a table, and export them to CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			return runEndpointsList(client)
		},
	})

	return cmd
}

func runEndpointsList(client sophos.Client) error {
	ctx := context.Background()

	rows, err := client.Endpoints().ListAll(ctx)
	if err != nil {
		return fmt.Errorf("fetching endpoints: %w", err)
	}

	if len(rows) == 0 {
		fmt.Println("No endpoints found.")

		return nil
	}

	err = outputEndpoints(rows)
	if err != nil {
		return err
	}

	if exportEnabled() {
		reportExport(exportEndpointsCSV(csvDir(), rows))
	}

	return nil
}

func outputEndpoints(rows []sophos.EndpointRow) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(rows)
	case OutputFormatYAML:
		return StandardYAMLRenderer(rows)
	default:
		return renderEndpointsTable(rows)
	}
}

func renderEndpointsTable(rows []sophos.EndpointRow) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Tenant Name", "Hostname", "OS", "OS Version")

	for _, row := range rows {
		_ = table.Append(row.TenantName, row.Hostname, row.OS, row.OSVersion)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	fmt.Printf("\nTotal endpoints: %d\n", len(rows))

	return nil
}

// endpointCSVHeader matches the column order of endpointCSVRow.
func endpointCSVHeader() []string {
	return []string{"tenant_name", "tenant_id", "endpoint_hostname", "endpoint_os", "endpoint_os_version", "last_active"}
}

func endpointCSVRow(row sophos.EndpointRow) []string {
	return []string{row.TenantName, row.TenantID, row.Hostname, row.OS, row.OSVersion, row.LastActive}
}

func exportEndpointsCSV(dir string, rows []sophos.EndpointRow) (string, error) {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, endpointCSVRow(row))
	}

	return ExportCSV(dir, "endpoints", endpointCSVHeader(), records)
}
