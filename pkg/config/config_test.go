package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cadence-sf/sfstage/pkg/config"
	"github.com/cadence-sf/sfstage/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		tomlContent string
		writeFile   bool
		wantErrCode errors.ErrorCode
		validate    func(t *testing.T, cfg config.Config)
	}{
		{
			name: "full_config",
			tomlContent: `
[paths]
metadata_root = "metadata/staticresources"
staging_base = "tmp/staging"
deploy_dir = "out/staticresources"

[scan]
src_classes_dir = "metadata/classes"
`,
			writeFile: true,
			validate: func(t *testing.T, cfg config.Config) {
				assert.Equal(t, "metadata/staticresources", cfg.Paths.MetadataRoot)
				assert.Equal(t, "tmp/staging", cfg.Paths.StagingBase)
				assert.Equal(t, "out/staticresources", cfg.Paths.DeployDir)
				assert.Equal(t, "metadata/classes", cfg.Scan.SrcClassesDir)
			},
		},
		{
			name:        "empty_config",
			tomlContent: ``,
			writeFile:   true,
			validate: func(t *testing.T, cfg config.Config) {
				assert.Empty(t, cfg.Paths.MetadataRoot)
			},
		},
		{
			name:      "missing_file_uses_defaults",
			writeFile: false,
			validate: func(t *testing.T, cfg config.Config) {
				assert.Empty(t, cfg.Paths.MetadataRoot)
			},
		},
		{
			name:        "invalid_toml",
			tomlContent: `[paths`,
			writeFile:   true,
			wantErrCode: errors.ErrConfigParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			if tt.writeFile {
				err := os.WriteFile(filepath.Join(tempDir, config.ConfigFile), []byte(tt.tomlContent), 0644)
				require.NoError(t, err)
			}

			cfg, err := config.Load(tempDir)
			if tt.wantErrCode != "" {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, tt.wantErrCode))
				return
			}

			require.NoError(t, err)
			tt.validate(t, cfg)
		})
	}
}

func TestLayoutOverrides(t *testing.T) {
	cfg := config.Config{}
	cfg.Paths.MetadataRoot = "metadata/staticresources"

	l := cfg.Layout("/repo")
	assert.Equal(t, filepath.Join("/repo", "metadata", "staticresources"), l.MetadataRoot)
	// The others keep their defaults
	assert.Equal(t, filepath.Join("/repo", "changeSetStaging"), l.StagingBase)
	assert.Equal(t, filepath.Join("/repo", "changeSetDeploy", "src", "staticresources"), l.DeployDir)
}

func TestScanDirs(t *testing.T) {
	cfg := config.Config{}
	src, changeset := cfg.ScanDirs("/repo")
	assert.Equal(t, filepath.Join("/repo", "src", "classes"), src)
	assert.Equal(t, filepath.Join("/repo", "changeSetDeploy", "src", "classes"), changeset)

	cfg.Scan.ChangesetClassesDir = "validated/classes"
	_, changeset = cfg.ScanDirs("/repo")
	assert.Equal(t, filepath.Join("/repo", "validated", "classes"), changeset)
}
