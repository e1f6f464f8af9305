package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventConstants(t *testing.T) {
	assert.Equal(t, "app_started", EventAppStarted)
	assert.Equal(t, "app_exited", EventAppExited)
	assert.Equal(t, "cli_command_executed", EventCLICommandExecuted)
	assert.Equal(t, "cli_error_occurred", EventCLIErrorOccurred)
	assert.Equal(t, "sync_completed", EventSyncCompleted)
	assert.Equal(t, "full_pull_completed", EventFullPullCompleted)
	assert.Equal(t, "problem_detail_viewed", EventProblemDetailViewed)
	assert.Equal(t, "integrity_checked", EventIntegrityChecked)
	assert.Equal(t, "processed_reset", EventProcessedReset)
	assert.Equal(t, "health_checked", EventHealthChecked)
}
