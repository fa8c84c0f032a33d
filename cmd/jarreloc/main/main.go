package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/jarreloc/cmd/jarreloc"
	"github.com/arthur-debert/jarreloc/pkg/style"
)

func main() {
	rootCmd := jarreloc.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.RenderError(err))
		os.Exit(1)
	}
}
