// Command fitsetup runs the storefront API and its maintenance tasks.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "fitsetup",
		Short: "Fitness equipment storefront API",
	}

	root.AddCommand(serveCmd(), seedCmd(), indexesCmd(), routeListCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
