package style

import (
	"fmt"
	"strings"
	"time"

	"github.com/arthur-debert/jarreloc/pkg/errors"
	"github.com/arthur-debert/jarreloc/pkg/types"
)

// RenderSummary formats a relocation result for the terminal. With
// showEntries every entry whose path changed is listed.
func RenderSummary(result *types.RelocationResult, showEntries bool) string {
	var b strings.Builder

	title := "Relocated"
	if result.DryRun {
		title = "Would relocate"
	}
	fmt.Fprintln(&b, TitleStyle.Render(title)+" "+PathStyle.Render(result.Root))

	line := func(indicator string, n int, singular, plural string) {
		if n == 0 {
			return
		}
		noun := plural
		if n == 1 {
			noun = singular
		}
		fmt.Fprintln(&b, Indent(fmt.Sprintf("%s %d %s", indicator, n, noun), 1))
	}
	line(SuccessIndicator, result.Classes, "class rewritten", "classes rewritten")
	line(SuccessIndicator, result.Manifests, "manifest rewritten", "manifests rewritten")
	line(SuccessIndicator, result.Resources, "resource copied", "resources copied")
	line(InfoIndicator, result.SignaturesDropped, "signature file dropped", "signature files dropped")
	line(InfoIndicator, result.IndexDropped, "jar index dropped", "jar indexes dropped")
	line(WarningIndicator, result.DuplicatesSkipped, "duplicate skipped", "duplicates skipped")
	line(InfoIndicator, result.SourcesPruned, "source pruned", "sources pruned")

	if showEntries {
		for _, w := range result.Written {
			if w.Source == w.Destination {
				continue
			}
			fmt.Fprintln(&b, Indent(MutedStyle.Render(fmt.Sprintf("%s -> %s", w.Source, w.Destination)), 2))
		}
	}

	if result.DryRun {
		fmt.Fprintln(&b, WarningStyle.Render("DRY RUN - no files were changed"))
	} else {
		fmt.Fprintln(&b, MutedStyle.Render(fmt.Sprintf("done in %s", result.Duration.Round(time.Millisecond))))
	}
	return b.String()
}

// RenderError formats an error for the terminal, adding the entry it
// concerns when known.
func RenderError(err error) string {
	msg := ErrorIndicator + " " + ErrorStyle.Render(fmt.Sprintf("Error: %v", err))
	if entry, ok := errors.GetErrorDetails(err)["entry"]; ok {
		msg += "\n" + Indent(MutedStyle.Render(fmt.Sprintf("while processing %v", entry)), 1)
	}
	return msg
}
