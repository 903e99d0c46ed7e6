// ABOUTME: Tests for version command
// ABOUTME: Verifies version info display and SetVersion functionality
package commands

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestVersionCmd_Output(t *testing.T) {
	orig := versionInfo
	t.Cleanup(func() { versionInfo = orig })

	SetVersion("1.2.3", "abc1234", "2026-01-15")

	out, err := runCmd(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}

	for _, want := range []string{"poetsim 1.2.3", "Commit: abc1234", "Built:  2026-01-15"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestVersionCmd_JSON(t *testing.T) {
	orig := versionInfo
	t.Cleanup(func() { versionInfo = orig })

	SetVersion("2.0.0", "deadbeef", "2026-02-01")

	out, err := runCmd(t, "--format", "json", "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}

	var got VersionInfo
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got.Version != "2.0.0" || got.Commit != "deadbeef" {
		t.Errorf("version info = %+v", got)
	}
}
