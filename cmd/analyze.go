package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gitpulse/gitpulse/internal/engine"
	"github.com/gitpulse/gitpulse/internal/stats"
)

var (
	proxyURL   string
	fullBudget int
	jsonOutput bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [owner/repo]",
	Short: "Analyze a GitHub repository and display its statistics",
	Long: `Analyze a GitHub repository and display its derived statistics.

The repository is cloned into memory, its first-parent history diffed
commit by commit, and the result reduced to contributor shares, bus
factor, file churn, file coupling, message analysis, commit sizes and
growth curves.

A GITHUB_TOKEN environment variable, when set, authenticates both the
metadata lookup and the clone. GITPULSE_PROXY supplies the transport
proxy when --proxy is not given.

Examples:
  gitpulse analyze golang/go
  gitpulse analyze user/private-repo --proxy http://proxy:8080
  gitpulse analyze user/repo --full-budget 100 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&proxyURL, "proxy", "", "HTTP proxy URL for the clone transport")
	analyzeCmd.Flags().IntVar(&fullBudget, "full-budget", 0, "Number of commits diffed line-by-line (0 uses the default)")
	analyzeCmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the full analysis bundle as JSON")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	owner, name, err := splitSlug(args[0])
	if err != nil {
		return err
	}
	ctx := context.Background()

	if proxyURL == "" {
		proxyURL = os.Getenv("GITPULSE_PROXY")
	}
	req := engine.Request{
		Owner:          owner,
		Name:           name,
		ProxyURL:       proxyURL,
		Token:          os.Getenv("GITHUB_TOKEN"),
		FullDiffBudget: fullBudget,
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "gitpulse"})
	worker := engine.NewWorker(logger)

	progressStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4")).Italic(true)

	var result *stats.AnalysisBundle
	for event := range worker.Run(ctx, req) {
		switch {
		case event.Err != "":
			return fmt.Errorf("analysis failed: %s", event.Err)
		case event.Result != nil:
			result = stats.Analyze(event.Result, time.Now().UTC())
		case event.Progress != nil && !jsonOutput:
			fmt.Fprintln(os.Stderr, progressStyle.Render(
				fmt.Sprintf("[%3d%%] %s", event.Progress.Percent, event.Progress.Message)))
		}
	}
	if result == nil {
		return fmt.Errorf("worker ended without a result")
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return outputTables(args[0], result)
}

// splitSlug parses an owner/repo argument
func splitSlug(slug string) (string, string, error) {
	parts := strings.Split(strings.TrimSuffix(slug, ".git"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository %q: expected owner/repo", slug)
	}
	return parts[0], parts[1], nil
}

func outputTables(slug string, bundle *stats.AnalysisBundle) error {
	// LipGloss signature purple/pink palette
	var (
		headerColor  = lipgloss.Color("#F780FF") // Bright pink/magenta
		nameColor    = lipgloss.Color("#BD93F9") // Purple
		numberColor  = lipgloss.Color("#FF79C6") // Pink
		borderColor  = lipgloss.Color("#6272A4") // Muted purple
		summaryColor = lipgloss.Color("#8BE9FD") // Cyan accent
	)

	// Column widths
	const (
		nameWidth    = 28
		commitWidth  = 10
		percentWidth = 10
	)

	headerStyle := lipgloss.NewStyle().
		Foreground(headerColor).
		Bold(true).
		Padding(0, 1)

	borderStyle := lipgloss.NewStyle().Foreground(borderColor)

	titleStyle := lipgloss.NewStyle().
		Foreground(headerColor).
		Bold(true)

	fmt.Println(titleStyle.Render(slug))
	fmt.Println()

	// Contributor table
	headers := []string{
		headerStyle.Width(nameWidth).Render("CONTRIBUTOR"),
		headerStyle.Width(commitWidth).Render("COMMITS"),
		headerStyle.Width(percentWidth).Render("SHARE"),
	}
	fmt.Println(strings.Join(headers, borderStyle.Render("│")))

	separatorParts := []string{
		strings.Repeat("─", nameWidth),
		strings.Repeat("─", commitWidth),
		strings.Repeat("─", percentWidth),
	}
	fmt.Println(borderStyle.Render(strings.Join(separatorParts, "┼")))

	nameStyle := lipgloss.NewStyle().
		Foreground(nameColor).
		Padding(0, 1).
		Width(nameWidth)

	numStyle := lipgloss.NewStyle().
		Foreground(numberColor).
		Padding(0, 1).
		Width(commitWidth).
		Align(lipgloss.Right)

	percentStyle := lipgloss.NewStyle().
		Foreground(numberColor).
		Padding(0, 1).
		Width(percentWidth).
		Align(lipgloss.Right)

	contributors := bundle.Contributors
	if len(contributors) > 10 {
		contributors = contributors[:10]
	}
	for _, c := range contributors {
		cells := []string{
			nameStyle.Render(c.Name),
			numStyle.Render(fmt.Sprintf("%d", c.Commits)),
			percentStyle.Render(fmt.Sprintf("%.1f%%", c.Percent)),
		}
		fmt.Println(strings.Join(cells, borderStyle.Render("│")))
	}

	// Summary
	fmt.Println()
	totalCommits := 0
	for _, c := range bundle.Contributors {
		totalCommits += c.Commits
	}

	summaryStyle := lipgloss.NewStyle().
		Foreground(summaryColor).
		Italic(true)

	summary := fmt.Sprintf("Total: %d commits, %d contributors, bus factor %d (HHI %.3f)",
		totalCommits, len(bundle.Contributors), bundle.BusFactor.Count, bundle.BusFactor.Herfindahl)
	fmt.Println(summaryStyle.Render(summary))

	if bundle.FirstCommitDate != nil {
		age := fmt.Sprintf("First commit %s, %d days of history",
			bundle.FirstCommitDate.Format("Jan 02 2006"), bundle.RepoAgeDays)
		fmt.Println(summaryStyle.Render(age))
	}

	lineStyle := lipgloss.NewStyle().Foreground(nameColor).Padding(0, 1)

	if len(bundle.FileChurn) > 0 {
		fmt.Println()
		fmt.Println(titleStyle.Render("HOTTEST FILES"))
		churn := bundle.FileChurn
		if len(churn) > 5 {
			churn = churn[:5]
		}
		for _, f := range churn {
			fmt.Println(lineStyle.Render(fmt.Sprintf("%4d× %s (+%d/-%d, %d authors)",
				f.Touches, f.Filename, f.Additions, f.Deletions, f.Authors)))
		}
	}

	if len(bundle.FileCoupling) > 0 {
		fmt.Println()
		fmt.Println(titleStyle.Render("COUPLED FILES"))
		couples := bundle.FileCoupling
		if len(couples) > 5 {
			couples = couples[:5]
		}
		for _, c := range couples {
			fmt.Println(lineStyle.Render(fmt.Sprintf("%4d× %s ↔ %s",
				c.Cochanges, c.FileA, c.FileB)))
		}
	}

	if len(bundle.Languages) > 0 {
		fmt.Println()
		fmt.Println(titleStyle.Render("LANGUAGES"))
		fmt.Println(lineStyle.Render(formatLanguages(bundle.Languages)))
	}

	fmt.Println()
	fmt.Println(titleStyle.Render("COMMIT SIZES"))
	for _, bucket := range bundle.CommitSizes {
		fmt.Println(lineStyle.Render(fmt.Sprintf("%-9s %d", bucket.Label, bucket.Count)))
	}

	return nil
}

// formatLanguages renders the language mix sorted by line count, descending
func formatLanguages(languages map[string]int) string {
	type entry struct {
		name  string
		lines int
	}
	entries := make([]entry, 0, len(languages))
	total := 0
	for name, lines := range languages {
		entries = append(entries, entry{name, lines})
		total += lines
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].lines != entries[j].lines {
			return entries[i].lines > entries[j].lines
		}
		return entries[i].name < entries[j].name
	})

	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		percent := 0.0
		if total > 0 {
			percent = float64(e.lines) / float64(total) * 100
		}
		parts = append(parts, fmt.Sprintf("%s %.1f%%", e.name, percent))
	}
	return strings.Join(parts, ", ")
}
