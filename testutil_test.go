package nodepath

import (
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// mustDoc parses a YAML/JSON document for test fixtures.
func mustDoc(t *testing.T, src string) *yaml.Node {
	t.Helper()
	n, err := Parse([]byte(src))
	require.NoError(t, err, "fixture %q", src)
	return n
}

func mustMarshal(t *testing.T, n *yaml.Node) string {
	t.Helper()
	out, err := Marshal(n)
	require.NoError(t, err)
	return string(out)
}

// requireTreeEqual asserts structural equality and prints a unified diff of
// the serialized trees when they differ.
func requireTreeEqual(t *testing.T, want, got *yaml.Node, msgAndArgs ...interface{}) {
	t.Helper()
	if Equal(want, got) {
		return
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(mustMarshal(t, want)),
		B:        difflib.SplitLines(mustMarshal(t, got)),
		FromFile: "want",
		ToFile:   "got",
		Context:  3,
	})
	require.NoError(t, err)
	require.Fail(t, "trees differ\n"+diff, msgAndArgs...)
}
