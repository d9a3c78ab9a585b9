// Package core carries execution options through context.Context: the
// worker limit used to size pools and the interval at which progress
// snapshots are delivered to watchers.
package core
