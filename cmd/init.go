package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/botdocs/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize botdocs configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure botdocs for your bot and generates a .botdocs.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
