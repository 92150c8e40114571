package config

import (
	"os"
	"path/filepath"

	"github.com/cadence-sf/sfstage/pkg/errors"
	"github.com/cadence-sf/sfstage/pkg/logging"
	"github.com/cadence-sf/sfstage/pkg/paths"
	toml "github.com/pelletier/go-toml/v2"
)

// ConfigFile is the optional per-repository configuration file name.
const ConfigFile = ".sfstage.toml"

// Config carries the user-overridable settings for one repository.
type Config struct {
	Paths PathsConfig `toml:"paths"`
	Scan  ScanConfig  `toml:"scan"`
}

// PathsConfig overrides the directory layout contract. Leave fields empty
// to keep the defaults; the downstream deployment process depends on the
// default names, so overrides are for test rigs and forks only.
type PathsConfig struct {
	MetadataRoot string `toml:"metadata_root"`
	StagingBase  string `toml:"staging_base"`
	DeployDir    string `toml:"deploy_dir"`
}

// ScanConfig overrides the Apex class trees the literal scanner walks.
type ScanConfig struct {
	SrcClassesDir       string `toml:"src_classes_dir"`
	ChangesetClassesDir string `toml:"changeset_classes_dir"`
}

// Load reads the repository config, falling back to defaults when the
// file does not exist.
func Load(repoRoot string) (Config, error) {
	cfg := Config{}

	path := filepath.Join(repoRoot, ConfigFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path)
	}

	log := logging.GetLogger("config")
	log.Debug().Str("path", path).Msg("Config loaded")
	return cfg, nil
}

// Layout resolves the effective directory layout for a repository,
// applying any overrides from the config.
func (c Config) Layout(repoRoot string) paths.Layout {
	l := paths.DefaultLayout(repoRoot)
	if c.Paths.MetadataRoot != "" {
		l.MetadataRoot = filepath.Join(repoRoot, c.Paths.MetadataRoot)
	}
	if c.Paths.StagingBase != "" {
		l.StagingBase = filepath.Join(repoRoot, c.Paths.StagingBase)
	}
	if c.Paths.DeployDir != "" {
		l.DeployDir = filepath.Join(repoRoot, c.Paths.DeployDir)
	}
	return l
}

// ScanDirs resolves the class trees for the literal scanner.
func (c Config) ScanDirs(repoRoot string) (src, changeset string) {
	src = filepath.Join(repoRoot, paths.SrcClassesDir)
	changeset = filepath.Join(repoRoot, paths.ChangesetClassesDir)
	if c.Scan.SrcClassesDir != "" {
		src = filepath.Join(repoRoot, c.Scan.SrcClassesDir)
	}
	if c.Scan.ChangesetClassesDir != "" {
		changeset = filepath.Join(repoRoot, c.Scan.ChangesetClassesDir)
	}
	return src, changeset
}
