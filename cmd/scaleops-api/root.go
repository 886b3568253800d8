package main

import "github.com/spf13/cobra"

var envFile string

var rootCmd = &cobra.Command{
	Use: "scaleops-api",
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(runCmd)

	rootCmd.PersistentFlags().StringVarP(&envFile, "env-file", "e", "", "Path to an env file loaded before the environment is read")
}
