package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPIDFile_WriteReadRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "mockerize.pid")
	info := &PIDFile{PID: os.Getpid(), StartTime: time.Now().UTC().Truncate(time.Second), Source: "server.json"}

	require.NoError(t, WritePIDFile(path, info))
	assert.NoFileExists(t, path+".tmp")

	read, err := ReadPIDFile(path)
	require.NoError(t, err)
	assert.Equal(t, info.PID, read.PID)
	assert.True(t, info.StartTime.Equal(read.StartTime))
	assert.True(t, read.IsRunning())

	require.NoError(t, RemovePIDFile(path))
	assert.NoFileExists(t, path)
	assert.NoError(t, RemovePIDFile(path))
}

func TestPIDFile_RefusesLiveInstance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mockerize.pid")
	require.NoError(t, WritePIDFile(path, &PIDFile{PID: os.Getpid()}))

	err := WritePIDFile(path, &PIDFile{PID: os.Getpid() + 100000})
	assert.ErrorContains(t, err, "já em execução")
}

func TestPIDFile_ReplacesStaleEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mockerize.pid")
	require.NoError(t, os.WriteFile(path, []byte(`{"pid": -1}`), 0o644))

	require.NoError(t, WritePIDFile(path, &PIDFile{PID: os.Getpid()}))

	read, err := ReadPIDFile(path)
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), read.PID)
}

func TestPIDFile_IsRunning(t *testing.T) {
	assert.False(t, (&PIDFile{PID: 0}).IsRunning())
	assert.True(t, (&PIDFile{PID: os.Getpid()}).IsRunning())
}
