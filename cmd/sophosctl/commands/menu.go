package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fivetwenty-io/sophos-partner-client/pkg/sophos"
	"github.com/spf13/cobra"
)

// menuEntry is one selectable action in the interactive menu.
type menuEntry struct {
	Key   string
	Label string
	Run   func(client sophos.Client) error
}

func menuEntries() []menuEntry {
	return []menuEntry{
		{Key: "1", Label: "List Tenants", Run: runTenantsList},
		{Key: "2", Label: "List Endpoints (Active)", Run: runEndpointsList},
		{Key: "3", Label: "List Health Scores", Run: runHealthList},
		{Key: "4", Label: "Exit", Run: nil},
	}
}

// NewMenuCommand creates the interactive menu command. The same menu runs
// when sophosctl is invoked with no arguments.
func NewMenuCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Run the interactive menu",
		Long:  "Present a numbered menu of partner operations and run the selected one until exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunMenu(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// RunMenu authenticates, then loops reading menu selections from in until
// the user exits or input ends. Failures of individual operations are
// reported and the menu continues.
func RunMenu(in io.Reader, out io.Writer) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	partnerID, err := client.PartnerID(context.Background())
	if err != nil {
		return fmt.Errorf("verifying partner account: %w", err)
	}

	fmt.Fprintf(out, "Authenticated as partner %s\n", partnerID)

	entries := menuEntries()
	scanner := bufio.NewScanner(in)

	for {
		printMenu(out, entries)

		if !scanner.Scan() {
			return scanner.Err()
		}

		selection := strings.TrimSpace(scanner.Text())

		done, err := dispatch(entries, selection, client)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)

			continue
		}

		if done {
			return nil
		}
	}
}

func printMenu(out io.Writer, entries []menuEntry) {
	fmt.Fprintln(out, "\nSophos Central Partner Menu")
	fmt.Fprintln(out, "---------------------------")

	for _, entry := range entries {
		fmt.Fprintf(out, "  %s. %s\n", entry.Key, entry.Label)
	}

	fmt.Fprint(out, "Select an option: ")
}

// dispatch runs the entry matching selection. It reports done=true for the
// exit entry and ErrUnknownMenuSelection for anything unmatched.
func dispatch(entries []menuEntry, selection string, client sophos.Client) (bool, error) {
	for _, entry := range entries {
		if entry.Key != selection {
			continue
		}

		if entry.Run == nil {
			return true, nil
		}

		return false, entry.Run(client)
	}

	return false, fmt.Errorf("%w: %q", sophos.ErrUnknownMenuSelection, selection)
}
