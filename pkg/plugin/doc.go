// Package plugin defines the capability contract that analyzer and operator
// modules implement, the opaque State blob they are configured with, the
// typed results they produce, and a name-to-factory Registry.
package plugin
