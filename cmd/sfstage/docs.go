package main

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/cadence-sf/sfstage/pkg/errors"
)

//go:embed docs/*.md
var docsFS embed.FS

var docsCmd = &cobra.Command{
	Use:   "docs [topic]",
	Short: "Show documentation topics",
	Long:  `Docs renders the built-in documentation. Without a topic it lists what is available.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			topics, err := listTopics()
			if err != nil {
				return err
			}
			fmt.Println("Available topics:")
			for _, topic := range topics {
				fmt.Printf("  %s\n", topic)
			}
			return nil
		}

		content, err := docsFS.ReadFile("docs/" + args[0] + ".md")
		if err != nil {
			return errors.Newf(errors.ErrNotFound, "unknown topic %q", args[0])
		}
		fmt.Print(renderMarkdown(string(content)))
		return nil
	},
}

func listTopics() ([]string, error) {
	entries, err := docsFS.ReadDir("docs")
	if err != nil {
		return nil, err
	}
	topics := make([]string, 0, len(entries))
	for _, entry := range entries {
		topics = append(topics, strings.TrimSuffix(entry.Name(), ".md"))
	}
	sort.Strings(topics)
	return topics, nil
}

// renderMarkdown falls back to the raw text when the terminal cannot be
// probed or rendering fails.
func renderMarkdown(content string) string {
	options := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
