package printing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenderJob(t *testing.T) {
	job, err := NewRenderJob(uuid.New(), EntityTypeInvoice, "0001")
	require.NoError(t, err)
	assert.Equal(t, JobStatusPending, job.Status)
	assert.Equal(t, "0001", job.DocumentNumber)

	_, err = NewRenderJob(uuid.Nil, EntityTypeInvoice, "0001")
	require.Error(t, err)

	_, err = NewRenderJob(uuid.New(), EntityType("receipt"), "0001")
	require.Error(t, err)
}

func TestRenderJobLifecycle(t *testing.T) {
	job, err := NewRenderJob(uuid.New(), EntityTypeQuote, "Q-17")
	require.NoError(t, err)

	// cannot complete before starting
	require.Error(t, job.Complete(1024))

	require.NoError(t, job.Start())
	assert.Equal(t, JobStatusRendering, job.Status)

	require.NoError(t, job.Complete(1024))
	assert.True(t, job.IsCompleted())
	assert.Equal(t, 1024, job.OutputBytes)
	require.NotNil(t, job.RenderedAt)

	// terminal: no further transitions
	require.Error(t, job.Fail("boom"))
}

func TestRenderJobFail(t *testing.T) {
	job, err := NewRenderJob(uuid.New(), EntityTypeStatement, "S-3")
	require.NoError(t, err)

	require.NoError(t, job.Fail("missing line items"))
	assert.True(t, job.IsFailed())
	assert.Equal(t, "missing line items", job.ErrorMessage)
	assert.True(t, job.IsTerminal())
}

func TestJobStatusTransitions(t *testing.T) {
	assert.True(t, JobStatusPending.CanTransitionTo(JobStatusRendering))
	assert.True(t, JobStatusPending.CanTransitionTo(JobStatusFailed))
	assert.False(t, JobStatusPending.CanTransitionTo(JobStatusCompleted))
	assert.True(t, JobStatusRendering.CanTransitionTo(JobStatusCompleted))
	assert.False(t, JobStatusCompleted.CanTransitionTo(JobStatusRendering))
	assert.False(t, JobStatusFailed.CanTransitionTo(JobStatusPending))
}
