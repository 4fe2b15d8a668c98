package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSettingsTOML = `
version = "v1"

[[projects]]
project_root = "/work/app"
gradle_home = "/opt/gradle-8.7"
java_home = "/usr/lib/jvm/temurin-17"
service_directory = "/home/u/.gradle"
distribution_type = "local"
daemon_vm_options = "-Xmx2g -Dfile.encoding=UTF-8"
inherit_env = true

[[projects]]
project_root = "/work/other"
gradle_home = "/opt/gradle-9.0"
distribution_type = "wrapper"
sync_in_progress = true
`

func TestFromBytes(t *testing.T) {
	t.Parallel()

	t.Run("parses a valid file", func(t *testing.T) {
		file, err := FromBytes([]byte(validSettingsTOML))
		require.NoError(t, err)
		require.Len(t, file.Projects, 2)

		s, ok := file.Project("/work/app")
		require.True(t, ok)
		assert.Equal(t, "/opt/gradle-8.7", s.GradleHome)
		assert.Equal(t, "/usr/lib/jvm/temurin-17", s.JavaHome)
		assert.Equal(t, DistributionLocal, s.DistributionType)
		assert.True(t, s.InheritEnv)
		assert.False(t, s.SyncInProgress)
	})

	t.Run("defaults missing version to v1", func(t *testing.T) {
		file, err := FromBytes([]byte(`[[projects]]
project_root = "/work/app"`))
		require.NoError(t, err)
		assert.Equal(t, "v1", file.Version)
	})

	t.Run("rejects unknown version", func(t *testing.T) {
		_, err := FromBytes([]byte(`version = "v2"`))
		assert.ErrorIs(t, err, ErrUnsupportedVersion)
	})

	t.Run("rejects malformed TOML", func(t *testing.T) {
		_, err := FromBytes([]byte(`version = `))
		assert.Error(t, err)
	})
}

func TestFromBytes_Interpolation(t *testing.T) {
	t.Run("expands env references in path fields", func(t *testing.T) {
		t.Setenv("GRADLE_DIST", "/opt/gradle-8.7")
		t.Setenv("DAEMON_HEAP", "4g")

		file, err := FromBytes([]byte(`[[projects]]
project_root = "/work/app"
gradle_home = "${GRADLE_DIST}"
service_directory = "${GRADLE_USER_HOME:/home/u/.gradle}"
daemon_vm_options = "-Xmx${DAEMON_HEAP}"`))
		require.NoError(t, err)

		s, ok := file.Project("/work/app")
		require.True(t, ok)
		assert.Equal(t, "/opt/gradle-8.7", s.GradleHome)
		assert.Equal(t, "/home/u/.gradle", s.ServiceDirectory)
		assert.Equal(t, "-Xmx4g", s.DaemonVMOptions)
	})

	t.Run("missing variable fails the load", func(t *testing.T) {
		_, err := FromBytes([]byte(`[[projects]]
project_root = "/work/app"
gradle_home = "${SCRIPTDEFS_MISSING_VAR}"`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SCRIPTDEFS_MISSING_VAR")
	})
}

func TestFromFile(t *testing.T) {
	t.Parallel()

	t.Run("loads from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.toml")
		require.NoError(t, os.WriteFile(path, []byte(validSettingsTOML), 0o644))

		file, err := FromFile(path)
		require.NoError(t, err)
		assert.Len(t, file.Projects, 2)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := FromFile(filepath.Join(t.TempDir(), "nope.toml"))
		assert.Error(t, err)
	})
}

func TestFromReader(t *testing.T) {
	t.Parallel()

	file, err := FromReader(strings.NewReader(validSettingsTOML))
	require.NoError(t, err)
	assert.Len(t, file.Projects, 2)
}

func TestFile_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid file", func(t *testing.T) {
		file, err := FromBytes([]byte(validSettingsTOML))
		require.NoError(t, err)
		assert.NoError(t, file.Validate())
	})

	t.Run("collects errors per project", func(t *testing.T) {
		file := &File{Projects: []Settings{
			{GradleHome: "/opt/gradle"},
			{ProjectRoot: "/work/app", DistributionType: "remote"},
		}}
		err := file.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNoProjectRoot)
		assert.ErrorIs(t, err, ErrInvalidDistributionType)
	})
}

func TestFileProvider(t *testing.T) {
	t.Parallel()

	writeSettings := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "settings.toml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("linked project", func(t *testing.T) {
		p := NewFileProvider(writeSettings(t, validSettingsTOML))
		assert.True(t, p.Linked("/work/app"))
		assert.False(t, p.Linked("/work/unknown"))
	})

	t.Run("execution settings returns a copy", func(t *testing.T) {
		p := NewFileProvider(writeSettings(t, validSettingsTOML))

		s1, err := p.ExecutionSettings("/work/app")
		require.NoError(t, err)
		s1.GradleHome = "/mutated"

		s2, err := p.ExecutionSettings("/work/app")
		require.NoError(t, err)
		assert.Equal(t, "/opt/gradle-8.7", s2.GradleHome)
	})

	t.Run("unlinked project", func(t *testing.T) {
		p := NewFileProvider(writeSettings(t, validSettingsTOML))
		_, err := p.ExecutionSettings("/work/unknown")
		assert.ErrorIs(t, err, ErrProjectNotLinked)
	})

	t.Run("missing file means nothing is linked", func(t *testing.T) {
		p := NewFileProvider(filepath.Join(t.TempDir(), "absent.toml"))
		assert.False(t, p.Linked("/work/app"))
		assert.False(t, p.SyncInProgress("/work/app"))
	})

	t.Run("sync in progress flag", func(t *testing.T) {
		p := NewFileProvider(writeSettings(t, validSettingsTOML))
		assert.False(t, p.SyncInProgress("/work/app"))
		assert.True(t, p.SyncInProgress("/work/other"))
	})
}
