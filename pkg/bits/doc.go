// Package bits provides the data leaf of the workbench: a packed,
// fixed-length BitArray and the named Container that plugins consume and
// produce.
package bits
