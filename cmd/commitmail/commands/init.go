package commands

import (
	"log/slog"

	"git.home.luguber.info/inful/commitmail/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

// Run executes the init command.
func (ic *InitCmd) Run(_ *Global, root *CLI) error {
	if err := config.Init(root.Config, ic.Force); err != nil {
		return err
	}
	slog.Info("Wrote configuration file", "path", root.Config)
	return nil
}
