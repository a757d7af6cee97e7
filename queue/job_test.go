package queue

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJob_Lifecycle(t *testing.T) {
	job := NewJob(map[string]string{"text": "NEWS"})
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, StatusProcessing, job.Status)

	job.Complete("neon_blue_1.mp4")
	assert.Equal(t, StatusCompleted, job.Status)
	assert.Equal(t, 1.0, job.Progress)
	assert.False(t, job.Finished.IsZero())

	failed := NewJob(nil)
	failed.Fail(errors.New("ffmpeg exited with status 1"))
	assert.Equal(t, StatusFailed, failed.Status)
	assert.Equal(t, "ffmpeg exited with status 1", failed.Error)
}

func TestInMemoryJobStore_AddGetUpdate(t *testing.T) {
	store := NewInMemoryJobStore()

	job := NewJob("req")
	require.NoError(t, store.Add(job))

	got, err := store.Get(job.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusProcessing, got.Status)

	// 返回副本，修改不影响存储
	got.Status = "mutated"
	again, _ := store.Get(job.ID)
	assert.Equal(t, StatusProcessing, again.Status)

	job.Complete("out.mp4")
	require.NoError(t, store.Update(job))
	again, _ = store.Get(job.ID)
	assert.Equal(t, StatusCompleted, again.Status)

	_, err = store.Get("missing")
	assert.ErrorIs(t, err, ErrJobNotFound)
	assert.ErrorIs(t, store.Update(NewJob(nil)), ErrJobNotFound)
}

func TestInMemoryJobStore_ListNewestFirst(t *testing.T) {
	store := NewInMemoryJobStore()

	older := NewJob("a")
	older.Created = time.Now().Add(-time.Minute)
	newer := NewJob("b")
	require.NoError(t, store.Add(older))
	require.NoError(t, store.Add(newer))

	jobs, err := store.List()
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, newer.ID, jobs[0].ID)
	assert.Equal(t, older.ID, jobs[1].ID)
}

func TestJournalJobStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs", "jobs.json")

	store, err := NewJournalJobStore(path)
	require.NoError(t, err)

	job := NewJob(map[string]interface{}{"text": "GOAL!"})
	require.NoError(t, store.Add(job))
	job.Fail(errors.New("render failed"))
	require.NoError(t, store.Update(job))

	reopened, err := NewJournalJobStore(path)
	require.NoError(t, err)

	got, err := reopened.Get(job.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, got.Status)
	assert.Equal(t, "render failed", got.Error)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestJournalJobStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewJournalJobStore(path)
	assert.Error(t, err)
}

func TestJournalJobStore_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	store, err := NewJournalJobStore(path)
	require.NoError(t, err)
	jobs, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, jobs)
}
