package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Output styles shared by the commands.
var (
	styleTitle = lipgloss.NewStyle().Bold(true)
	styleHash  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleAdded = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleMuted = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// printJSON renders a value as indented JSON on stdout.
func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
