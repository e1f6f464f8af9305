package telemetry

import (
	"runtime"

	"github.com/asteroid-belt/leetvault/pkg/version"
)

// Event names
const (
	EventAppStarted          = "app_started"
	EventAppExited           = "app_exited"
	EventCLICommandExecuted  = "cli_command_executed"
	EventCLIErrorOccurred    = "cli_error_occurred"
	EventSyncCompleted       = "sync_completed"
	EventFullPullCompleted   = "full_pull_completed"
	EventProblemDetailViewed = "problem_detail_viewed"
	EventIntegrityChecked    = "integrity_checked"
	EventProcessedReset      = "processed_reset"
	EventHealthChecked       = "health_checked"
)

// Version is set at compile time via ldflags.
var Version string

// baseProperties returns common properties for all events.
func baseProperties() map[string]interface{} {
	return map[string]interface{}{
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
		"version":    Version,
		"prerelease": version.IsPrerelease(),
		"dev_build":  version.IsDevBuild(),
	}
}

// TrackAppStarted tracks application startup.
func (c *posthogClient) TrackAppStarted(command string, hasSession bool) {
	props := baseProperties()
	props["command"] = command
	props["has_session"] = hasSession
	c.Track(EventAppStarted, props)
}

// TrackAppExited tracks application exit.
func (c *posthogClient) TrackAppExited(command string, sessionDurationMs int64) {
	props := baseProperties()
	props["command"] = command
	props["session_duration_ms"] = sessionDurationMs
	c.Track(EventAppExited, props)
}

// TrackCLICommandExecuted tracks CLI command execution.
func (c *posthogClient) TrackCLICommandExecuted(commandName string, hasFlags bool, durationMs int64) {
	props := baseProperties()
	props["command_name"] = commandName
	props["has_flags"] = hasFlags
	props["execution_duration_ms"] = durationMs
	c.Track(EventCLICommandExecuted, props)
}

// TrackCLIError tracks CLI command failures by coarse error type. No slugs,
// titles, or messages are attached.
func (c *posthogClient) TrackCLIError(commandName, errorType string) {
	props := baseProperties()
	props["command_name"] = commandName
	props["error_type"] = errorType
	c.Track(EventCLIErrorOccurred, props)
}

// TrackSyncCompleted tracks an incremental sync cycle.
func (c *posthogClient) TrackSyncCompleted(fetched, created int, durationMs int64) {
	props := baseProperties()
	props["fetched_count"] = fetched
	props["created_count"] = created
	props["duration_ms"] = durationMs
	c.Track(EventSyncCompleted, props)
}

// TrackFullPullCompleted tracks a full history pull.
func (c *posthogClient) TrackFullPullCompleted(fetched, created int, durationMs int64) {
	props := baseProperties()
	props["fetched_count"] = fetched
	props["created_count"] = created
	props["duration_ms"] = durationMs
	c.Track(EventFullPullCompleted, props)
}

// TrackProblemDetailViewed tracks single-problem lookups.
func (c *posthogClient) TrackProblemDetailViewed(difficulty string, copied bool) {
	props := baseProperties()
	props["difficulty"] = difficulty
	props["copied"] = copied
	c.Track(EventProblemDetailViewed, props)
}

// TrackIntegrityChecked tracks vault integrity scans.
func (c *posthogClient) TrackIntegrityChecked(scanned, issueCount int) {
	props := baseProperties()
	props["scanned_count"] = scanned
	props["issue_count"] = issueCount
	c.Track(EventIntegrityChecked, props)
}

// TrackProcessedReset tracks explicit processed-set resets.
func (c *posthogClient) TrackProcessedReset(clearedCount int) {
	props := baseProperties()
	props["cleared_count"] = clearedCount
	c.Track(EventProcessedReset, props)
}

// TrackHealthChecked tracks health check outcomes.
func (c *posthogClient) TrackHealthChecked(healthy bool) {
	props := baseProperties()
	props["healthy"] = healthy
	c.Track(EventHealthChecked, props)
}

// --- noopClient implementations (no-ops) ---

func (c *noopClient) TrackAppStarted(command string, hasSession bool)                             {}
func (c *noopClient) TrackAppExited(command string, sessionDurationMs int64)                      {}
func (c *noopClient) TrackCLICommandExecuted(commandName string, hasFlags bool, durationMs int64) {}
func (c *noopClient) TrackCLIError(commandName, errorType string)                                 {}
func (c *noopClient) TrackSyncCompleted(fetched, created int, durationMs int64)                   {}
func (c *noopClient) TrackFullPullCompleted(fetched, created int, durationMs int64)               {}
func (c *noopClient) TrackProblemDetailViewed(difficulty string, copied bool)                     {}
func (c *noopClient) TrackIntegrityChecked(scanned, issueCount int)                               {}
func (c *noopClient) TrackProcessedReset(clearedCount int)                                        {}
func (c *noopClient) TrackHealthChecked(healthy bool)                                             {}
