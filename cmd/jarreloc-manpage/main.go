package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/jarreloc/cmd/jarreloc"
	"github.com/arthur-debert/jarreloc/internal/version"
)

func main() {
	rootCmd := jarreloc.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "JARRELOC",
		Section: "1",
		Source:  "jarreloc " + version.Version,
		Manual:  "jarreloc manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
