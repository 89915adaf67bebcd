package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears keys for the duration of the test. godotenv treats a key
// that is set to an empty string as already present.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		if old, ok := os.LookupEnv(k); ok {
			t.Cleanup(func() { os.Setenv(k, old) })
		} else {
			t.Cleanup(func() { os.Unsetenv(k) })
		}
		require.NoError(t, os.Unsetenv(k))
	}
}

func writeDotEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDotEnv_LoadsValuesAndIgnoresNoise(t *testing.T) {
	unsetEnv(t, "GPCALC_TEST_A", "GPCALC_TEST_B", "GPCALC_TEST_C")

	path := writeDotEnv(t, `
# comment

GPCALC_TEST_A=one
export GPCALC_TEST_B=two
GPCALC_TEST_C="three"
`)

	require.NoError(t, loadDotEnv(path))

	assert.Equal(t, "one", os.Getenv("GPCALC_TEST_A"))
	assert.Equal(t, "two", os.Getenv("GPCALC_TEST_B"))
	assert.Equal(t, "three", os.Getenv("GPCALC_TEST_C"))
}

func TestLoadDotEnv_DoesNotOverwriteExistingEnv(t *testing.T) {
	t.Setenv("GPCALC_TEST_KEEP", "already")

	require.NoError(t, loadDotEnv(writeDotEnv(t, "GPCALC_TEST_KEEP=fromfile\n")))

	assert.Equal(t, "already", os.Getenv("GPCALC_TEST_KEEP"))
}

func TestLoadDotEnv_StripsSingleQuotes(t *testing.T) {
	unsetEnv(t, "GPCALC_TEST_Q")

	require.NoError(t, loadDotEnv(writeDotEnv(t, "GPCALC_TEST_Q='hello world'\n")))

	assert.Equal(t, "hello world", os.Getenv("GPCALC_TEST_Q"))
}

func TestLoadDotEnv_MissingFileIsIgnored(t *testing.T) {
	assert.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), "absent.env")))
}
