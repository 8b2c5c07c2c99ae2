package commands

import (
	"fmt"
	"os"

	"git.home.luguber.info/inful/commitmail/internal/linkcheck"
)

// VerifyCmd implements the 'verify' command: check that every file-list
// anchor in a rendered document resolves to a diff section.
type VerifyCmd struct {
	Path string `arg:"" help:"Rendered HTML document to verify" type:"existingfile"`
}

// Run executes the verify command.
func (vc *VerifyCmd) Run(_ *Global, _ *CLI) error {
	problems, err := linkcheck.VerifyFile(vc.Path)
	if err != nil {
		return err
	}
	for _, p := range problems {
		fmt.Fprintf(os.Stderr, "unresolved anchor %s (%q)\n", p.Href, p.Text)
	}
	if len(problems) > 0 {
		return fmt.Errorf("%d unresolved anchor(s) in %s", len(problems), vc.Path)
	}
	fmt.Printf("%s: all anchors resolve\n", vc.Path)
	return nil
}
