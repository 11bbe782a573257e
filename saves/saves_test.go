package saves

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Redirect XDG_DATA_HOME so tests never touch the real data dir.
func setDataHome(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	// xdg caches environment at init; Reload picks up the override.
	reload()
}

func TestWriteReadDelete(t *testing.T) {
	setDataHome(t)

	doc := []byte(`{"version":2}`)
	require.NoError(t, Write("slot1", doc))

	got, err := Read("slot1")
	require.NoError(t, err)
	require.Equal(t, doc, got)

	slots, err := List()
	require.NoError(t, err)
	require.Equal(t, []string{"slot1"}, slots)

	require.NoError(t, Delete("slot1"))
	_, err = Read("slot1")
	require.Error(t, err)

	require.NoError(t, Delete("slot1"), "deleting a missing slot is fine")
}

func TestListEmpty(t *testing.T) {
	setDataHome(t)
	slots, err := List()
	require.NoError(t, err)
	require.Empty(t, slots)
}

func TestSlotNameValidation(t *testing.T) {
	setDataHome(t)
	for _, bad := range []string{"", "../escape", "a/b", `a\b`, "dotted.name"} {
		require.Error(t, Write(bad, []byte("{}")), "slot %q must be rejected", bad)
	}
}
