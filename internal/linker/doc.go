// Package linker materializes resolved (source, target) pairs as hard links.
//
// A [Materializer] is created once per run. Each [Materializer.Link] call
// decides one of four outcomes, in this order:
//
//   - SkippedExists: the target already exists, or another source of the
//     same run has claimed it
//   - SkippedIgnored: a "link.ignore" marker sits in the target's directory
//   - Created: the link was made (or, in dry-run, would have been)
//   - FailedIO: creating the directory or the link failed
//
// Dry-run never touches the filesystem but still reports the outcome that
// would have occurred. Link is safe for concurrent use.
package linker
