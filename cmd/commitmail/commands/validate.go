package commands

import (
	"log/slog"

	"git.home.luguber.info/inful/commitmail/internal/config"
)

// ValidateCmd implements the 'validate' command: load and validate the
// configuration without rendering anything.
type ValidateCmd struct{}

// Run executes the validate command.
func (vc *ValidateCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	slog.Info("Configuration is valid",
		"path", root.Config,
		"ticket_rules", len(cfg.TicketMap),
		"diff", string(cfg.Diff),
	)
	return nil
}
