package config

import (
	"fmt"
	"os"
)

// DefaultFileName is the file `vuelint init` writes.
const DefaultFileName = ".vuelint.yaml"

// DefaultFile is the commented config written by `vuelint init`.
const DefaultFile = `# vuelint configuration file

# Minimum severity to report: error, warning, info, hint
severity: warning

# Rules are keyed by ID or name.
rules:
  # no-extra-space-in-class
  STY001:
    enabled: true

  # first-attribute-linebreak
  STY002:
    enabled: true
    options:
      singleline: ignore  # beside | below | ignore
      multiline: below

  # no-deprecated-slot-attribute
  DEP001:
    enabled: true
    severity: error
    options:
      # Component names whose slot attributes are left alone.
      # Literals or /regex/flags.
      ignore: []
      # Parent component names whose children are left alone.
      ignoreParents: []

# Paths to skip (glob syntax, "dir/**" skips a directory)
ignore_paths:
  - "node_modules/**"
  - "dist/**"

# File extensions to lint
extensions:
  - .vue
  - .html

# Maximum fix passes before "vuelint fix" gives up
max_fix_passes: 10

# Files processed concurrently (0 = number of CPUs)
workers: 0
`

// WriteDefault writes DefaultFile to path. It refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := os.WriteFile(path, []byte(DefaultFile), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
