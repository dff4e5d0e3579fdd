package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/sweep-arcade/internal/config"
	"github.com/vovakirdan/sweep-arcade/internal/physics"
)

var flagMatrixDefault bool

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Show which layers collide",
	Long: `Print the layer collision matrix loaded from physics.yaml.

Search order: --physics, ~/.sweep/configs/physics.yaml,
./configs/physics.yaml, then the built-in default.

Examples:
  sweep matrix
  sweep matrix --physics ./physics.yaml
  sweep matrix --default > ~/.sweep/configs/physics.yaml`,
	Run: runMatrix,
}

func init() {
	matrixCmd.Flags().BoolVar(&flagMatrixDefault, "default", false, "Print the built-in physics.yaml instead")
}

func runMatrix(_ *cobra.Command, _ []string) {
	if flagMatrixDefault {
		os.Stdout.Write(config.GetDefaultYAML(config.PhysicsFile))
		return
	}

	physicsCfg, err := loadPhysics()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	m, err := physicsCfg.Matrix()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	source := config.Resolve(flagPhysics, config.PhysicsFile)
	if source == "" {
		source = "built-in default"
	}
	fmt.Printf("Layer matrix (%s)\n\n", source)
	fmt.Println(renderMatrix(m))
	fmt.Printf("\nparallel axes: %v\n", physicsCfg.ParallelAxes)
}

// renderMatrix draws the symmetric matrix as a full grid.
func renderMatrix(m *physics.LayerMatrix) string {
	layers := physics.Layers()
	headers := []string{""}
	for _, l := range layers {
		headers = append(headers, l.String())
	}

	allowed := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Padding(0, 1)
	blocked := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow || row >= len(layers) || col == 0 {
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			}
			if m.Allowed(layers[row], layers[col-1]) {
				return allowed
			}
			return blocked
		})

	for _, a := range layers {
		row := []string{a.String()}
		for _, b := range layers {
			mark := "·"
			if m.Allowed(a, b) {
				mark = "✓"
			}
			row = append(row, mark)
		}
		t.Row(row...)
	}
	return t.String()
}
