// Package engine distributes a batch of independent inputs over a bounded
// worker pool. Each input is validated before dispatch, every failure is
// confined to its own item, and the result sequence always matches the
// input order no matter which worker finished first.
package engine
