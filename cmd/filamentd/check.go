package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/filamentd/filament/internal/layout"
)

var checkOpts struct {
	template string
}

// Styles for check output.
var (
	checkHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("12"))

	checkLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	checkKindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	checkOKStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))
)

// checkCmd validates the configuration and the active layout template
// and prints the resolved block tree.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate configuration and layout template",
	Long: `Validate the configuration file and the active layout template,
then print the resolved popup block tree.

Useful after editing a template: parse and validation errors are
reported without starting the daemon.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name := checkOpts.template
		if name == "" {
			name = cfg.Layout.Template
		}

		loader := layout.NewLoader(cfg.TemplatesDir())
		tpl, err := loader.Load(name)
		if err != nil {
			return fmt.Errorf("template %q: %w", name, err)
		}

		printConfigSummary()
		fmt.Println()
		printTemplateTree(tpl)
		fmt.Println()
		fmt.Println(checkOKStyle.Render("configuration and template are valid"))
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVarP(&checkOpts.template, "template", "t", "",
		"Template to check (default: the configured one)")
	rootCmd.AddCommand(checkCmd)
}

func printConfigSummary() {
	fmt.Println(checkHeaderStyle.Render("Configuration"))
	row := func(label, value string) {
		fmt.Printf("  %s %s\n", checkLabelStyle.Render(label+":"), value)
	}

	row("config file", globalOpts.configPath)
	row("position", string(cfg.Display.Position))
	row("offset", fmt.Sprintf("%d,%d", cfg.Display.OffsetX, cfg.Display.OffsetY))
	row("gap", fmt.Sprintf("%d", cfg.Display.Gap))
	row("max visible", fmt.Sprintf("%d", cfg.Display.MaxVisible))
	row("timeout low", fmt.Sprintf("%dms", cfg.Timeouts.Low.Milliseconds()))
	row("timeout normal", fmt.Sprintf("%dms", cfg.Timeouts.Normal.Milliseconds()))
	row("timeout critical", fmt.Sprintf("%dms", cfg.Timeouts.Critical.Milliseconds()))
	row("audio", fmt.Sprintf("enabled=%v volume=%d", cfg.Audio.Enabled, cfg.Audio.Volume))
	row("templates dir", cfg.TemplatesDir())
	row("built-in templates", strings.Join(layout.ListEmbedded(), ", "))
}

func printTemplateTree(tpl *layout.Template) {
	fmt.Println(checkHeaderStyle.Render("Template " + tpl.Name))
	printBlockDef(&tpl.Root, 0)
}

func printBlockDef(d *layout.BlockDef, depth int) {
	indent := strings.Repeat("  ", depth+1)

	name := d.Name
	if name == "" {
		name = "(unnamed)"
	}
	hook := d.Hook
	if hook == "" {
		hook = "top-left"
	}
	if d.SelfHook != "" && d.SelfHook != hook {
		hook += "/" + d.SelfHook
	}

	fmt.Printf("%s%s %s %s\n",
		indent,
		checkKindStyle.Render(string(d.Kind)),
		name,
		checkLabelStyle.Render(fmt.Sprintf("hook=%s offset=%g,%g", hook, d.Offset.X, d.Offset.Y)),
	)

	for i := range d.Children {
		printBlockDef(&d.Children[i], depth+1)
	}
}
