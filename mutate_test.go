package nodepath

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestInsert(t *testing.T) {
	tests := []struct {
		expr string
		doc  string
		want string
	}{
		{"$.a", `{}`, `{"a": "test"}`},
		{"$.a.b[1]", `{"a": {"b": [1, 2, 4]}}`, `{"a": {"b": [1, "test", 2, 4]}}`},
		{"$.a.b[#]", `{"a": {"b": [1, 2, 4]}}`, `{"a": {"b": [1, 2, 4, "test"]}}`},
		{"$.a.b[#-3]", `{"a": {"b": [1, 2, 4]}}`, `{"a": {"b": ["test", 1, 2, 4]}}`},
		{"$.a.b[3]", `{"a": {"b": [1, 2, 4]}}`, `{"a": {"b": [1, 2, 4, "test"]}}`},
		{"$[0]", `[]`, `["test"]`},
	}
	for _, tc := range tests {
		root := mustDoc(t, tc.doc)
		got, err := MustParsePath(tc.expr).Insert(root, FromValue("test"))
		require.NoError(t, err, "insert %s into %s", tc.expr, tc.doc)
		assert.Same(t, root, got)
		requireTreeEqual(t, mustDoc(t, tc.want), root, "insert %s into %s", tc.expr, tc.doc)
	}
}

// requireUnchanged runs a mutation that must fail with ErrNotApplicable and
// asserts the tree is left structurally identical.
func requireUnchanged(t *testing.T, doc string, mutate func(root *yaml.Node) error) {
	t.Helper()
	root := mustDoc(t, doc)
	before := Clone(root)
	err := mutate(root)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotApplicable)
	requireTreeEqual(t, before, root, "failed mutation must not modify the tree")
}

func TestInsertNotApplicable(t *testing.T) {
	tests := []struct {
		expr string
		doc  string
	}{
		{"$.a", `{"a": 10.0}`},      // key already present
		{"$.a[1]", `{"a": []}`},     // past the insertable range
		{"$.a[#-3]", `{"a": []}`},   // reverse offset beyond length
		{"$.a.b", `{}`},             // parent does not resolve
		{"$.a[0]", `{"a": {}}`},     // index into an object
		{"$.a", `[1, 2]`},           // field into an array
		{"$", `{}`},                 // no last element to insert at
	}
	for _, tc := range tests {
		requireUnchanged(t, tc.doc, func(root *yaml.Node) error {
			_, err := MustParsePath(tc.expr).Insert(root, FromValue("test"))
			return err
		})
	}
}

func TestInsertThenFindRoundTrip(t *testing.T) {
	// Inserting at any in-range position makes that position resolve to the
	// inserted value and grows the array by exactly one.
	for i := 0; i <= 3; i++ {
		root := mustDoc(t, `{"xs": [1, 2, 4]}`)
		path := Path{Field("xs"), FromStart(i)}
		_, err := path.Insert(root, FromValue("v"))
		require.NoError(t, err, "insert at %d", i)

		got, err := path.Find(root)
		require.NoError(t, err)
		requireTreeEqual(t, FromValue("v"), got, "find after insert at %d", i)

		xs, err := Lookup(root, "$.xs")
		require.NoError(t, err)
		assert.Len(t, xs.Content, 4, "length after insert at %d", i)
	}
}

func TestReplace(t *testing.T) {
	root := mustDoc(t, `{"a": {"b": [1, 2, 4]}}`)
	_, err := MustParsePath("$.a.b[#-1]").Replace(root, FromValue("end"))
	require.NoError(t, err)
	requireTreeEqual(t, mustDoc(t, `{"a": {"b": [1, 2, "end"]}}`), root)

	// The empty path replaces the root value itself.
	_, err = Path{}.Replace(root, FromValue(true))
	require.NoError(t, err)
	requireTreeEqual(t, FromValue(true), root)
}

func TestReplaceNeverCreates(t *testing.T) {
	tests := []struct {
		expr string
		doc  string
	}{
		{"$.a", `{}`},
		{"$.a[3]", `{"a": [1, 2]}`},
		{"$.a[#]", `{"a": [1, 2]}`},
		{"$.a.b", `{"a": 1}`},
	}
	for _, tc := range tests {
		requireUnchanged(t, tc.doc, func(root *yaml.Node) error {
			_, err := MustParsePath(tc.expr).Replace(root, FromValue("x"))
			return err
		})
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		expr string
		doc  string
		want string
	}{
		// Object fields upsert unconditionally.
		{"$.a", `{}`, `{"a": "x"}`},
		{"$.a", `{"a": 1}`, `{"a": "x"}`},
		// Array elements must pre-exist.
		{"$.xs[0]", `{"xs": [1, 2]}`, `{"xs": ["x", 2]}`},
		{"$.xs[#-1]", `{"xs": [1, 2]}`, `{"xs": [1, "x"]}`},
		{"$.xs[#-2]", `{"xs": [1, 2]}`, `{"xs": ["x", 2]}`},
	}
	for _, tc := range tests {
		root := mustDoc(t, tc.doc)
		_, err := MustParsePath(tc.expr).Set(root, FromValue("x"))
		require.NoError(t, err, "set %s on %s", tc.expr, tc.doc)
		requireTreeEqual(t, mustDoc(t, tc.want), root, "set %s on %s", tc.expr, tc.doc)
	}
}

func TestSetNotApplicable(t *testing.T) {
	tests := []struct {
		expr string
		doc  string
	}{
		{"$.xs[2]", `{"xs": [1, 2]}`},  // element must pre-exist
		{"$.xs[#]", `{"xs": [1, 2]}`},  // append marker invalid for set
		{"$.xs[#-3]", `{"xs": [1, 2]}`},
		{"$.a.b", `{}`},                // parent does not resolve
		{"$", `{}`},                    // no last element
	}
	for _, tc := range tests {
		requireUnchanged(t, tc.doc, func(root *yaml.Node) error {
			_, err := MustParsePath(tc.expr).Set(root, FromValue("x"))
			return err
		})
	}
}

func TestRemove(t *testing.T) {
	tests := []struct {
		expr string
		doc  string
		want string
	}{
		{"$.a", `{"a": 1, "b": 2}`, `{"b": 2}`},
		{"$.xs[0]", `{"xs": [1, 2, 3]}`, `{"xs": [2, 3]}`},
		{"$.xs[#-1]", `{"xs": [1, 2, 3]}`, `{"xs": [1, 2]}`},
		{"$.xs[#-3]", `{"xs": [1, 2, 3]}`, `{"xs": [2, 3]}`},
	}
	for _, tc := range tests {
		root := mustDoc(t, tc.doc)
		_, err := MustParsePath(tc.expr).Remove(root)
		require.NoError(t, err, "remove %s from %s", tc.expr, tc.doc)
		requireTreeEqual(t, mustDoc(t, tc.want), root, "remove %s from %s", tc.expr, tc.doc)
	}
}

func TestRemoveNotApplicable(t *testing.T) {
	tests := []struct {
		expr string
		doc  string
	}{
		{"$.missing", `{"a": 1}`},
		{"$.xs[3]", `{"xs": [1, 2, 3]}`},
		{"$.xs[#]", `{"xs": [1, 2, 3]}`},
		{"$.xs[#-4]", `{"xs": [1, 2, 3]}`},
		{"$", `{"a": 1}`},
	}
	for _, tc := range tests {
		requireUnchanged(t, tc.doc, func(root *yaml.Node) error {
			_, err := MustParsePath(tc.expr).Remove(root)
			return err
		})
	}
}

func TestMutationsPreserveSiblingOrder(t *testing.T) {
	root := mustDoc(t, `{"a": 1, "b": 2, "c": 3}`)
	_, err := MustParsePath("$.b").Remove(root)
	require.NoError(t, err)
	_, err = MustParsePath("$.d").Insert(root, FromValue(4))
	require.NoError(t, err)

	keys := make([]string, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		keys = append(keys, root.Content[i].Value)
	}
	assert.Equal(t, []string{"a", "c", "d"}, keys)
}

func TestDeepInsertManyPositions(t *testing.T) {
	// FromEnd(k) inserts at len-k for every k up to the length.
	for k := 0; k <= 3; k++ {
		root := mustDoc(t, `[10, 20, 30]`)
		_, err := Path{FromEnd(k)}.Insert(root, FromValue("v"))
		require.NoError(t, err, "FromEnd(%d)", k)

		got, err := Path{FromStart(3 - k)}.Find(root)
		require.NoError(t, err, "FromEnd(%d)", k)
		requireTreeEqual(t, FromValue("v"), got, fmt.Sprintf("FromEnd(%d)", k))
	}
}
