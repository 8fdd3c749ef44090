package main

import (
	"fmt"
	"strings"

	"github.com/BengineerZ/orrery"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	cellStyle  = lipgloss.NewStyle().PaddingRight(2)
)

var bandsCmd = &cobra.Command{
	Use:   "bands",
	Short: "List the satellite bands of the globe",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderBands(cfg.Globe.Bands))
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		return enc.Close()
	},
}

func renderBands(bands []orrery.Band) string {
	header := []string{"band", "count", "radius", "speed", "color"}
	rows := [][]string{header}
	for _, b := range bands {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(b.Color)).Render("●●●")
		rows = append(rows, []string{
			b.Name,
			fmt.Sprint(b.Count),
			fmt.Sprintf("%.2f-%.2f", b.MinRadius, b.MaxRadius),
			fmt.Sprintf("×%.2f", b.SpeedFactor),
			swatch + " " + b.Color,
		})
	}
	widths := make([]int, len(header))
	for _, r := range rows {
		for i, c := range r {
			widths[i] = max(widths[i], lipgloss.Width(c))
		}
	}
	var sb strings.Builder
	for ri, r := range rows {
		cells := make([]string, len(r))
		for i, c := range r {
			st := cellStyle.Width(widths[i] + 2)
			if ri == 0 {
				st = st.Inherit(titleStyle)
			}
			cells[i] = st.Render(c)
		}
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		if ri < len(rows)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
