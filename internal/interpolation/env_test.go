package interpolation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandEnvVars(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		result, err := ExpandEnvVars("")
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("no variables", func(t *testing.T) {
		result, err := ExpandEnvVars("/opt/gradle-8.7")
		require.NoError(t, err)
		assert.Equal(t, "/opt/gradle-8.7", result)
	})

	t.Run("variable set", func(t *testing.T) {
		t.Setenv("GRADLE_DIST", "/opt/gradle-8.7")
		result, err := ExpandEnvVars("${GRADLE_DIST}/lib")
		require.NoError(t, err)
		assert.Equal(t, "/opt/gradle-8.7/lib", result)
	})

	t.Run("variable missing without default", func(t *testing.T) {
		_, err := ExpandEnvVars("${SCRIPTDEFS_MISSING_VAR}")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SCRIPTDEFS_MISSING_VAR")
	})

	t.Run("variable missing with default", func(t *testing.T) {
		result, err := ExpandEnvVars("${SCRIPTDEFS_MISSING_VAR:/usr/lib/gradle}")
		require.NoError(t, err)
		assert.Equal(t, "/usr/lib/gradle", result)
	})

	t.Run("set variable wins over default", func(t *testing.T) {
		t.Setenv("GRADLE_DIST", "/opt/gradle-9.0")
		result, err := ExpandEnvVars("${GRADLE_DIST:/usr/lib/gradle}")
		require.NoError(t, err)
		assert.Equal(t, "/opt/gradle-9.0", result)
	})

	t.Run("empty default", func(t *testing.T) {
		result, err := ExpandEnvVars("prefix-${SCRIPTDEFS_MISSING_VAR:}-suffix")
		require.NoError(t, err)
		assert.Equal(t, "prefix--suffix", result)
	})

	t.Run("multiple variables", func(t *testing.T) {
		t.Setenv("GRADLE_DIST", "/opt/gradle-8.7")
		t.Setenv("JDK_HOME", "/usr/lib/jvm/21")
		result, err := ExpandEnvVars("${GRADLE_DIST}:${JDK_HOME}")
		require.NoError(t, err)
		assert.Equal(t, "/opt/gradle-8.7:/usr/lib/jvm/21", result)
	})

	t.Run("multiple missing variables joined", func(t *testing.T) {
		_, err := ExpandEnvVars("${SCRIPTDEFS_MISSING_A} ${SCRIPTDEFS_MISSING_B}")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SCRIPTDEFS_MISSING_A")
		assert.Contains(t, err.Error(), "SCRIPTDEFS_MISSING_B")
	})
}
