package config

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/skillsync/pkg/errors"
	gotoml "github.com/pelletier/go-toml/v2"
)

const fileHeader = `# skillsync configuration.
# Values here can be overridden per-run with SKILLSYNC_* environment
# variables, e.g. SKILLSYNC_ACTIVE_DIR.
#
# rules map item-name glob patterns to dispositions so untracked skills
# can be classified without prompting:
#
#   [[rules]]
#   pattern = "vault-*"
#   disposition = "external-vault"

`

// Generate writes a commented default configuration to path, refusing to
// overwrite an existing file.
func Generate(path string) error {
	if path == "" {
		path = DefaultPath()
	}

	if _, err := os.Stat(path); err == nil {
		return errors.Newf(errors.ErrConfigValid, "config file %s already exists", path)
	}

	data, err := gotoml.Marshal(defaults())
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot serialize default config")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create config directory for %s", path)
	}

	if err := os.WriteFile(path, append([]byte(fileHeader), data...), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "cannot write config file %s", path)
	}
	return nil
}
