package filesystem_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/jarreloc/pkg/errors"
	"github.com/arthur-debert/jarreloc/pkg/filesystem"
	"github.com/arthur-debert/jarreloc/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAtomic_CreatesDestination(t *testing.T) {
	fsys := testutil.NewTestFS()
	require.NoError(t, fsys.MkdirAll("/out", 0755))

	err := filesystem.WriteBytesAtomic(fsys, "/out/file.txt", []byte("content"), filesystem.AtomicOptions{})
	require.NoError(t, err)

	data, err := fsys.ReadFile("/out/file.txt")
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	_, err = fsys.Stat("/out/file.txt" + filesystem.TempSuffix)
	assert.True(t, os.IsNotExist(err), "temp file should not survive a successful write")
}

func TestWriteAtomic_ReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	fsys := filesystem.NewOS()
	dest := filepath.Join(dir, "file.txt")
	require.NoError(t, fsys.WriteFile(dest, []byte("old content that is longer"), 0644))

	err := filesystem.WriteAtomic(fsys, dest, bytes.NewReader([]byte("new")), filesystem.AtomicOptions{})
	require.NoError(t, err)

	data, err := fsys.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestWriteAtomic_StagesThroughTempSibling(t *testing.T) {
	rec := testutil.NewRecordingFS(testutil.NewTestFS())
	require.NoError(t, rec.MkdirAll("/out", 0755))
	rec.Reset()

	require.NoError(t, filesystem.WriteBytesAtomic(rec, "/out/a.bin", []byte("x"), filesystem.AtomicOptions{}))

	ops := rec.Ops()
	require.Len(t, ops, 2)
	assert.Equal(t, testutil.Op{Name: "create", Path: "/out/a.bin.tmp"}, ops[0])
	assert.Equal(t, testutil.Op{Name: "rename", Path: "/out/a.bin"}, ops[1])
}

func TestWriteAtomic_InterruptedWriteKeepsPriorContent(t *testing.T) {
	rec := testutil.NewRecordingFS(testutil.NewTestFS())
	require.NoError(t, rec.MkdirAll("/out", 0755))
	require.NoError(t, rec.WriteFile("/out/file.txt", []byte("prior"), 0644))
	rec.FailWriteAfter("/out/file.txt.tmp", 3)

	err := filesystem.WriteBytesAtomic(rec, "/out/file.txt", []byte("replacement"), filesystem.AtomicOptions{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileWrite))

	data, readErr := rec.ReadFile("/out/file.txt")
	require.NoError(t, readErr)
	assert.Equal(t, "prior", string(data))

	_, statErr := rec.Stat("/out/file.txt.tmp")
	assert.True(t, os.IsNotExist(statErr), "failed temp file is removed by default")
	assert.Equal(t, -1, rec.IndexOf("rename", "/out/file.txt"))
}

func TestWriteAtomic_InterruptedWriteLeavesNothingWhenNew(t *testing.T) {
	rec := testutil.NewRecordingFS(testutil.NewTestFS())
	require.NoError(t, rec.MkdirAll("/out", 0755))
	rec.FailWriteAfter("/out/new.txt.tmp", 0)

	err := filesystem.WriteBytesAtomic(rec, "/out/new.txt", []byte("data"), filesystem.AtomicOptions{})
	require.Error(t, err)

	_, statErr := rec.Stat("/out/new.txt")
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriteAtomic_KeepFailedTemp(t *testing.T) {
	rec := testutil.NewRecordingFS(testutil.NewTestFS())
	require.NoError(t, rec.MkdirAll("/out", 0755))
	rec.FailOn("rename", "/out/file.txt", assert.AnError)

	err := filesystem.WriteBytesAtomic(rec, "/out/file.txt", []byte("data"), filesystem.AtomicOptions{KeepFailedTemp: true})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileRename))

	data, readErr := rec.ReadFile("/out/file.txt.tmp")
	require.NoError(t, readErr)
	assert.Equal(t, "data", string(data))
}

func TestWriteAtomic_CreateFailure(t *testing.T) {
	rec := testutil.NewRecordingFS(testutil.NewTestFS())
	rec.FailOn("create", "/out/file.txt.tmp", assert.AnError)

	err := filesystem.WriteBytesAtomic(rec, "/out/file.txt", []byte("data"), filesystem.AtomicOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, "/out/file.txt", errors.GetErrorDetails(err)["path"])
}
