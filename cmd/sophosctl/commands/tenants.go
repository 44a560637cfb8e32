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

// NewTenantsCommand creates the tenants command group.
func NewTenantsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tenants",
		Aliases: []string{"tenant"},
		Short:   "Manage tenant accounts",
		Long:    "List tenant accounts managed under the partner account",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List tenants",
		Long:  "List all tenant accounts, render them as a table, and export them to CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			return runTenantsList(client)
		},
	})

	return cmd
}

func runTenantsList(client sophos.Client) error {
	ctx := context.Background()

	tenants, err := client.Tenants().List(ctx)
	if err != nil {
		return fmt.Errorf("fetching tenants: %w", err)
	}

	if len(tenants) == 0 {
		fmt.Println("No tenants found.")

		return nil
	}

	err = outputTenants(tenants)
	if err != nil {
		return err
	}

	if exportEnabled() {
		reportExport(exportTenantsCSV(csvDir(), tenants))
	}

	return nil
}

func outputTenants(tenants []sophos.Tenant) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(tenants)
	case OutputFormatYAML:
		return StandardYAMLRenderer(tenants)
	default:
		return renderTenantsTable(tenants)
	}
}

func renderTenantsTable(tenants []sophos.Tenant) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Tenant Name", "Tenant ID", "Data Region", "Status")

	for _, tenant := range tenants {
		_ = table.Append(tenant.Name, tenant.ID, tenant.DataRegion, tenant.Status)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	fmt.Printf("\nTotal tenants: %d\n", len(tenants))

	return nil
}

// tenantCSVHeader matches the column order of tenantCSVRow.
func tenantCSVHeader() []string {
	return []string{"tenant_name", "tenant_id", "data_region", "api_host", "status"}
}

func tenantCSVRow(tenant sophos.Tenant) []string {
	return []string{tenant.Name, tenant.ID, tenant.DataRegion, tenant.APIHost, tenant.Status}
}

func exportTenantsCSV(dir string, tenants []sophos.Tenant) (string, error) {
	rows := make([][]string, 0, len(tenants))
	for _, tenant := range tenants {
		rows = append(rows, tenantCSVRow(tenant))
	}

	return ExportCSV(dir, "tenants", tenantCSVHeader(), rows)
}
