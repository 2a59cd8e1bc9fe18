package storage

import (
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStoreSaveAndRemove(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	ownerID := uuid.New()
	relPath, err := store.Save("attachments", ownerID, "report.pdf", strings.NewReader("contents"))
	require.NoError(t, err)
	assert.Contains(t, relPath, "attachments/"+ownerID.String()+"/")
	assert.Contains(t, relPath, "report.pdf")

	f, err := store.Open(relPath)
	require.NoError(t, err)
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	f.Close()
	assert.Equal(t, "contents", string(data))

	require.NoError(t, store.Remove(relPath))

	_, err = store.Open(relPath)
	assert.Error(t, err, "file fetch after delete must fail")
}

func TestDiskStoreRejectsEscapingPaths(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Remove("../outside"))
	_, err = store.Open("/etc/passwd")
	assert.Error(t, err)
}

func TestDiskStoreStripsClientDirectories(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	relPath, err := store.Save("attachments", uuid.New(), "../../evil.txt", strings.NewReader("x"))
	require.NoError(t, err)
	assert.NotContains(t, relPath, "..")
}
