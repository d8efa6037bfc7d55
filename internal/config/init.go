package config

import (
	"fmt"
	"os"
)

const defaultConfig = `# postbuilder configuration
site:
  title: "My Blog"
  base_url: "https://example.com"
  author: ""

content:
  dir: content
  # layouts_dir: layouts
  # repo: https://example.com/me/blog-content.git
  # branch: main

output:
  directory: public
  clean: false

render:
  highlight_style: github
  workers: 4
  # state_db: .postbuilder/state.db

# publish:
#   nats_url: nats://localhost:4222
#   subject_prefix: postbuilder
`

// Init writes a commented default configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	// #nosec G306 -- configuration template contains no secrets.
	if err := os.WriteFile(configPath, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}
	return nil
}
