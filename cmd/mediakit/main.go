package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/mediakit/internal/cli"

	// Importing the domain packages is what registers the built-in
	// processors; the registry does no scanning of its own.
	_ "codeberg.org/snonux/mediakit/internal/audio"
	_ "codeberg.org/snonux/mediakit/internal/text"
)

func main() {
	flags := cli.NewFlags()
	rootCmd := cli.NewRootCommand(flags)

	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
