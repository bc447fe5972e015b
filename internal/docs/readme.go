// Package docs renders the command reference of README.md.
package docs

import (
	"cmp"
	"fmt"
	"os"
	"slices"
	"strings"
	"text/template"

	"github.com/keshon/vinny/internal/command"
	"github.com/keshon/vinny/pkg/cmd"
)

// CommandSections lists every command grouped by category. Categories are
// ordered by categoryWeights (lower first), commands by name. Commands with a
// slash definition are shown as /name, the rest with the text prefix.
func CommandSections(registry *cmd.Registry, categoryWeights map[string]int, prefix string) string {
	commands := registry.GetAll()
	slices.SortStableFunc(commands, func(a, b cmd.Command) int {
		ca, cb := category(a), category(b)
		return cmp.Or(
			cmp.Compare(categoryWeights[ca], categoryWeights[cb]),
			strings.Compare(ca, cb),
			strings.Compare(a.Name(), b.Name()),
		)
	})

	var buf strings.Builder
	currentCategory := ""
	for i, c := range commands {
		cat := category(c)
		if i == 0 || cat != currentCategory {
			if i > 0 {
				buf.WriteString("\n")
			}
			currentCategory = cat
			if cat != "" {
				fmt.Fprintf(&buf, "### %s\n\n", cat)
			}
		}

		display := prefix + c.Name()
		if _, ok := cmd.Root(c).(command.SlashProvider); ok {
			display = "/" + c.Name()
		}
		fmt.Fprintf(&buf, "- **`%s`**", display)
		if a, ok := cmd.Root(c).(cmd.Aliased); ok && len(a.Aliases()) > 0 {
			fmt.Fprintf(&buf, " (`%s`)", strings.Join(a.Aliases(), "`, `"))
		}
		fmt.Fprintf(&buf, ": %s", c.Description())
		if meta, ok := cmd.Root(c).(command.DiscordMeta); ok && meta.OwnerOnly() {
			buf.WriteString(" *(owner only)*")
		}
		buf.WriteString("\n")
	}
	return buf.String()
}

func category(c cmd.Command) string {
	if meta, ok := cmd.Root(c).(command.DiscordMeta); ok {
		return meta.Category()
	}
	return ""
}

// UpdateReadme renders the template at tmplPath into outPath.
func UpdateReadme(tmplPath, outPath string, sections string) error {
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	data := struct {
		CommandSections string
	}{
		CommandSections: sections,
	}
	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", outPath, err)
	}
	return f.Close()
}
