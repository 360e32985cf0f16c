// Package model provides lazy, exactly-once construction of an expensive
// backing resource (an API client, a loaded model) for processors that
// need one. Construction happens on first use, concurrent first callers
// block until the resource is ready or failed, and a construction failure
// is terminal for the owning instance.
package model
