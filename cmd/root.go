package cmd

import (
	"fmt"
	"os"

	"github.com/IMvampireXD/MCBE-Storage-Database/cmd/kv"
	"github.com/spf13/cobra"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "storedb",
		Short: "chunked key-value store over a flat property file",
		Long: fmt.Sprintf(`storedb (v%s)

A key-value store layered over a flat property substrate. Arbitrary-size
values are transparently split across size-limited property entries and
reassembled on read.`, Version),
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of storedb",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("storedb v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(kv.KeyValueCommands)
	RootCmd.AddCommand(versionCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
