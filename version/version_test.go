package version

import "testing"

func TestString(t *testing.T) {
	// Cannot run in parallel due to global variable modification.
	origVersion, origCommit := Version, Commit
	defer func() { Version, Commit = origVersion, origCommit }()

	if got := String(); got != "0.1.0 (dev)" {
		t.Errorf("String() = %q with defaults", got)
	}
	Version, Commit = "1.2.3", "abc123"
	if got := String(); got != "1.2.3 (abc123)" {
		t.Errorf("String() = %q", got)
	}
}
