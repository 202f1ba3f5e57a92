// Package observability provides logging setup and formatted CLI output.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/pmonetwork/pmo-network/internal/db"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer writes human-readable summaries for the CLI.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		if r := []rune(line); len(r) > boxWidth-4 {
			line = string(r[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// writeList appends up to maxItemsToShow items under a heading.
func writeList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s (%d):\n", heading, len(items))
	for _, item := range items[:min(len(items), maxItemsToShow)] {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	if len(items) > maxItemsToShow {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-maxItemsToShow)
	}
	sb.WriteString("\n")
}

// PrintSeedSummary outputs what a seed file would import, grouped by role.
func (p *Printer) PrintSeedSummary(seed *db.SeedFile) {
	if seed == nil {
		return
	}

	var employers, candidates []string
	profiles := 0
	for _, u := range seed.Users {
		label := fmt.Sprintf("%s <%s>", u.Name, u.Email)
		if u.Role == db.RoleEmployer {
			employers = append(employers, label)
			continue
		}
		if u.Profile != nil {
			profiles++
			if u.Profile.JobTitle != "" {
				label += " - " + u.Profile.JobTitle
			}
		}
		candidates = append(candidates, label)
	}

	jobs := make([]string, 0, len(seed.Jobs))
	for _, j := range seed.Jobs {
		label := j.Title
		if j.Location != "" {
			label += " (" + j.Location + ")"
		}
		jobs = append(jobs, label)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Users:    %d\n", len(seed.Users))
	fmt.Fprintf(&sb, "Profiles: %d\n", profiles)
	fmt.Fprintf(&sb, "Jobs:     %d\n", len(seed.Jobs))
	sb.WriteString("\n")
	writeList(&sb, "Employers", employers)
	writeList(&sb, "Candidates", candidates)
	writeList(&sb, "Jobs", jobs)

	p.printBox("SEED FILE", sb.String())
}

// PrintSeedResult outputs the rows an import wrote.
func (p *Printer) PrintSeedResult(result *db.SeedResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Users upserted:    %d\n", result.Users)
	fmt.Fprintf(&sb, "Profiles upserted: %d\n", result.Profiles)
	fmt.Fprintf(&sb, "Jobs created:      %d\n", result.Jobs)

	p.printBox("SEED IMPORTED", sb.String())
}
