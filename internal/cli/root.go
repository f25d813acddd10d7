package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	output  string
	cfgPath string
)

var rootCmd = &cobra.Command{
	Use:   "filehub",
	Short: "ReBAC file sharing service backed by an OpenFGA tuple store",
}

func Execute() error { return rootCmd.Execute() }

func init() {
	home, _ := os.UserHomeDir()
	defaultCfg := filepath.Join(home, ".filehub", "config.yaml")

	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "json", "output format: json|table")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultCfg, "config file path")

	// Wire top level groups
	rootCmd.AddCommand(cmdInit(), cmdServe(), cmdCheck(), cmdGrant(), cmdRevoke(), cmdLs(), cmdVersion())

	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.SetHelpCommand(&cobra.Command{
		Use:   "help",
		Short: "Show help",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Root().Help()
		},
	})
	rootCmd.Run = func(cmd *cobra.Command, args []string) {
		fmt.Println("Use -h for help, for example: filehub check alice can_view 9f2c-...")
	}
}
