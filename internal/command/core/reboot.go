package core

import (
	"context"

	"github.com/keshon/vinny/internal/command"
	"github.com/keshon/vinny/internal/config"
	"github.com/keshon/vinny/internal/resume"
	"github.com/keshon/vinny/internal/voice"
	"github.com/keshon/vinny/pkg/cmd"
)

// Rebooter stores a snapshot of every active session and tells the affected
// guilds about the restart.
type Rebooter interface {
	Reboot(ctx context.Context, actor voice.ControlEvent) (resume.SweepReport, error)
}

// RebootCommand prepares a planned restart. It has no slash definition and is
// only reachable by prefix text from an owner. When Shutdown is set it is
// called after the sweep so the process exits and a supervisor restarts it.
type RebootCommand struct {
	Sweeper  Rebooter
	Shutdown func()
}

func (c *RebootCommand) Name() string             { return "reboot" }
func (c *RebootCommand) Description() string      { return "Save every session and restart the bot" }
func (c *RebootCommand) Category() string         { return config.CategoryMaintenance }
func (c *RebootCommand) OwnerOnly() bool          { return true }
func (c *RebootCommand) UserPermissions() []int64 { return nil }

func (c *RebootCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	cc, err := command.FromInvocation(inv)
	if err != nil {
		return err
	}

	_, err = c.Sweeper.Reboot(ctx, cc.Event)
	if err != nil {
		return err
	}
	if c.Shutdown != nil {
		c.Shutdown()
	}
	return nil
}
