// Package testutil provides fakes and file helpers shared by the test
// suites: scriptable processors, a progress recorder, and generators for
// minimal valid input files.
package testutil
