package main

import (
	"fmt"
	"os"

	"github.com/easydb/easydb/pkg/config"
	"github.com/spf13/cobra"
)

var cfgFile string
var logLevel string
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "easydb",
	Short: "EasyDB serves SQLite tables as a generic CRUD REST API",
	Long:  `easydb exposes the tables of a SQLite database file as REST endpoints with no per-table code`,
	Run: func(cmd *cobra.Command, args []string) {
		versionFlag, _ := cmd.Flags().GetBool("version")
		if versionFlag {
			fmt.Println(config.Version)
			return
		}
		cmd.Help()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/easydb.yaml)")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "L", "info", "log requests at this level (debug, info, warn, error, none)")
	rootCmd.PersistentFlags().BoolP("version", "v", false, "Print the version number")
}

func initConfig() {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}
}
