package testutil

import (
	"os"
	"testing"
)

// UnsetEnv removes each key from the environment for the duration of the
// test. t.Setenv records the original value first, so it is restored on
// cleanup; the variable is then truly unset rather than set to "".
func UnsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		if err := os.Unsetenv(k); err != nil {
			t.Fatalf("testutil.UnsetEnv: %s: %v", k, err)
		}
	}
}
