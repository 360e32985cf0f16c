// Package processor defines the contract every mediakit processor
// implements: input validation and processing of a single file. It also
// owns the shared error kinds so that the engine, the CLI, and concrete
// processors agree on how failures are classified.
package processor
