// Package cmd provides a transport-agnostic command core: a command is something
// with a name, description, and Run(ctx, invocation). How it is registered and
// dispatched (Discord slash, prefix text, select menus) is defined by adapters
// that wrap this.
package cmd

import "context"

// Invocation carries what any command runner can pass: positional arguments
// and an opaque payload. The Discord adapter sets Data to its event context.
type Invocation struct {
	Name string // name or alias the command was invoked by
	Args []string
	Data any
}

// Command is the universal contract: identity plus execution. Permissions,
// options and transport-specific registration stay in adapters.
type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, inv *Invocation) error
}

// Aliased is implemented by commands reachable under additional names.
type Aliased interface {
	Aliases() []string
}
