package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harun/ghtools/internal/config"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the registered tools",
	RunE:  runTools,
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}

func runTools(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	catalog, _, err := buildDispatch(cfg)
	if err != nil {
		return err
	}

	for _, def := range catalog.List() {
		required := []string{}
		for _, param := range def.Parameters {
			if param.Required {
				required = append(required, param.Name)
			}
		}
		fmt.Printf("%-22s %s", def.Name, def.Description)
		if len(required) > 0 {
			fmt.Printf(" (requires: %v)", required)
		}
		fmt.Println()
	}
	return nil
}
