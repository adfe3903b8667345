package logfields

import "testing"

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name string
		key  string
		want string
	}{
		{"RunID", RunID("abc").Key, KeyRunID},
		{"Stage", Stage("push_branch").Key, KeyStage},
		{"Repository", Repository("owner/project").Key, KeyRepo},
		{"Branch", Branch("gh-pages").Key, KeyBranch},
		{"Path", Path("/tmp/x").Key, KeyPath},
		{"URL", URL("https://example.com").Key, KeyURL},
		{"Commit", Commit("deadbeef").Key, KeyCommit},
		{"Outcome", Outcome("published").Key, KeyOutcome},
		{"Reason", Reason("pull request").Key, KeyReason},
	}
	for _, c := range cases {
		if c.key != c.want {
			t.Errorf("%s: key = %q, want %q", c.name, c.key, c.want)
		}
	}
}

func TestHelperValues(t *testing.T) {
	if got := Stage("generate_docs").Value.String(); got != "generate_docs" {
		t.Errorf("Stage value = %q", got)
	}
	if got := Outcome("published").Value.String(); got != "published" {
		t.Errorf("Outcome value = %q", got)
	}
}

func TestErrorAttr(t *testing.T) {
	if got := Error(nil).Value.String(); got != "" {
		t.Errorf("Error(nil) value = %q, want empty", got)
	}
}
