// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"runtime"
	"testing"
)

func TestSetHomeDir(t *testing.T) {
	dir := t.TempDir()
	SetHomeDir(t, dir)

	key := "HOME"
	if runtime.GOOS == "windows" {
		key = "USERPROFILE"
	}
	if got := os.Getenv(key); got != dir {
		t.Errorf("%s = %q, want %q", key, got, dir)
	}
}
