/*
Package filesystem provides filesystem operations with retry logic for NFS
stale file handle errors, plus volume labeling for metrics.

# Purpose

The configuration volume of the container is frequently an NFS or SMB
share exported from a NAS. A stale handle (ESTALE, errno 116) on the very
first stat after a remount must not be mistaken for "config absent": that
would reseed the configuration over a user's edits. StatWithRetry and
OpenWithRetry retry ESTALE with exponential backoff and surface every other
error unchanged.

# Usage

	ok, info, err := filesystem.Exists("/config/ffmpeg-gui/config.json", filesystem.DefaultRetryConfig())
	if err != nil {
	    // not "absent": permission error, ENOTDIR, retries exhausted...
	}

# Retry Behavior

Defaults: 3 retries, 50ms initial backoff, 500ms cap. Only ESTALE triggers a
retry.

# Metrics

Metrics are recorded through an [Observer] installed with [SetObserver]; the
metrics package provides the implementation. Paths are labeled with the
volume resolved by [VolumeResolver] ("config", "app", "unknown").
*/
package filesystem
