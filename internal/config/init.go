package config

import (
	"fmt"
	"os"
)

const exampleConfig = `# commitmail configuration
linkify: true
wrap_log: false
markdown_log: false

# stylesheet_url: https://example.com/notify.css
# revision_url: "https://viewvc.example.com/?rev=%s&view=rev"
# author_url: "https://people.example.com/~%s/"

ticket_map:
  - pattern: '\b(BUG-(\d+))\b'
    url: "https://bugs.example.com/show_bug.cgi?id=%s"

diff: inline
max_diff_length: 100000

# header: "Commit notification"
# footer: "Sent by commitmail"

language: en
charset: UTF-8
`

// Init writes a starter configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}
	if err := os.WriteFile(configPath, []byte(exampleConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
