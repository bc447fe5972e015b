// cmd/build-readme/main.go renders README.md from README.md.tmpl and the
// registered commands.
package main

import (
	"log"

	"github.com/keshon/vinny/internal/command/core"
	"github.com/keshon/vinny/internal/command/music"
	"github.com/keshon/vinny/internal/config"
	"github.com/keshon/vinny/internal/docs"
	"github.com/keshon/vinny/pkg/cmd"
)

func main() {
	prefix := config.DefaultCommandPrefix

	registry := cmd.NewRegistry()
	all := music.Commands(music.Deps{})
	all = append(all,
		&core.HelpCommand{Commands: registry, Prefix: prefix},
		&core.MaintenanceCommand{},
		&core.RebootCommand{},
	)
	for _, c := range all {
		if err := registry.Register(c); err != nil {
			log.Fatalf("failed to register %s: %v", c.Name(), err)
		}
	}

	sections := docs.CommandSections(registry, config.CategoryWeights, prefix)
	if err := docs.UpdateReadme("README.md.tmpl", "README.md", sections); err != nil {
		log.Fatalf("failed to update README: %v", err)
	}
	log.Println("README.md updated with current commands")
}
