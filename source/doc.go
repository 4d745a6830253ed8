// Package source provides sources and sinks for log entries that aren't available with just iterators.
// Splitting these out into their own, independent (except what's provided in pkg) packages means that they
// can be omitted in favor of a smaller build size if the functionality isn't needed.
//
// "Source" functions should take input and return an iterator.Iterator and potentially an error, and operate asynchronously.
// Sources should close any resources, like file handles or channels, and stop the associated goroutine when they have reached the end of their input.
//
// "Sink" functions should take an iterator.Iterator - and optionally other parameters - and operate synchronously.
// Sink functions should use iterator.Drain on an iterator if they encounter an error to prevent upstream blocking.
//
//	Current packages:
//	- file provides source and sink for files, including tail support.
//	- store provides a SQLite source and sink.
//	- stdstream provides a STDIN source and STDOUT/STDERR sinks.
package source
