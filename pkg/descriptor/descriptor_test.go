package descriptor_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cadence-sf/sfstage/pkg/descriptor"
	"github.com/cadence-sf/sfstage/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		xml       string
		wantError bool
		wantType  string
	}{
		{
			name: "valid_descriptor",
			xml: `<?xml version="1.0" encoding="UTF-8"?>
<StaticResource xmlns="http://soap.sforce.com/2006/04/metadata">
    <cacheControl>Public</cacheControl>
    <contentType>application/zip</contentType>
</StaticResource>`,
			wantType: "application/zip",
		},
		{
			name: "single_file_descriptor",
			xml: `<?xml version="1.0" encoding="UTF-8"?>
<StaticResource xmlns="http://soap.sforce.com/2006/04/metadata">
    <contentType>image/png</contentType>
</StaticResource>`,
			wantType: "image/png",
		},
		{
			name:      "wrong_root_element",
			xml:       `<ApexClass><contentType>x</contentType></ApexClass>`,
			wantError: true,
		},
		{
			name:      "missing_content_type",
			xml:       `<StaticResource><cacheControl>Public</cacheControl></StaticResource>`,
			wantError: true,
		},
		{
			name:      "malformed_xml",
			xml:       `<StaticResource><contentType>`,
			wantError: true,
		},
	}

	fsys := filesystem.NewOS()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "X.resource-meta.xml")
			require.NoError(t, os.WriteFile(path, []byte(tt.xml), 0644))

			meta, err := descriptor.Parse(fsys, path)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, meta.ContentType)
		})
	}
}

func TestParseMissingFile(t *testing.T) {
	fsys := filesystem.NewOS()
	_, err := descriptor.Parse(fsys, filepath.Join(t.TempDir(), "absent.resource-meta.xml"))
	assert.Error(t, err)
}
