// Package pkgroutine runs bounded batches of goroutines.
//
// A Manager caps concurrency, joins the errors its tasks return, and turns a
// task panic into an ErrPanic error so a batch reports every failed task.
package pkgroutine
