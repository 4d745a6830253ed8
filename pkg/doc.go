// Package pkg provides the core functionality of working with iterators over streamed items.
// This package (and subpackages) is a dependency of anything in the source package.
//   - The iterator package contains functions for creating and altering the behavior of an iterator.Iterator.
//   - The lookahead package contains the fixed-capacity peek/put-back buffer that can wrap any iterator.Iterator.
//   - The entries package contains the log entry type and lookahead-driven helpers like multiline joining.
package pkg
