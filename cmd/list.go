/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"os"

	serial "github.com/allbin/serialmon"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available serial ports",
	Long: `List all available serial ports on the system.

This command scans for communication-capable serial devices including:
- USB serial adapters (ttyUSB*)
- USB CDC/ACM devices (ttyACM*)
- Standard serial ports (ttyS*)
- ARM/Raspberry Pi ports (ttyAMA*)
- And other platform-specific serial devices

Virtual terminals and pseudo-terminals are excluded from the listing.`,
	Run: func(cmd *cobra.Command, args []string) {
		ports, err := serial.ListPorts()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing ports: %v\n", err)
			os.Exit(1)
		}

		if len(ports) == 0 {
			fmt.Println("No serial ports found")
			return
		}

		tableFormat, _ := cmd.Flags().GetBool("table")
		if tableFormat {
			renderTable(ports)
		} else {
			for _, port := range ports {
				fmt.Println(port)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolP("table", "t", false, "Display output in a styled table format")
}

// renderTable renders the port list with descriptions and USB metadata
func renderTable(ports []string) {
	fmt.Printf("Found %d serial port(s):\n\n", len(ports))

	portWidth := 16
	descWidth := 22
	manufWidth := 20
	serialWidth := 16

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("240")).
		PaddingBottom(1)

	cellStyle := lipgloss.NewStyle().
		PaddingRight(2)

	header := fmt.Sprintf("%-*s %-*s %-*s %-*s",
		portWidth, "Port",
		descWidth, "Description",
		manufWidth, "Manufacturer",
		serialWidth, "Serial")
	fmt.Println(headerStyle.Render(header))

	for _, port := range ports {
		info, err := serial.GetPortInfo(port)
		if err != nil {
			row := fmt.Sprintf("%-*s %-*s", portWidth, port, descWidth, fmt.Sprintf("Error: %v", err))
			fmt.Println(cellStyle.Render(row))
			continue
		}

		row := fmt.Sprintf("%-*s %-*s %-*s %-*s",
			portWidth, info.Name,
			descWidth, info.Description,
			manufWidth, info.Manufacturer,
			serialWidth, info.SerialNumber)
		fmt.Println(cellStyle.Render(row))
	}
}
