// Package factory provides the generic registry used to build pluggable
// components (dispatchers, metrics sinks, log stores, plan publishers) from
// configuration. A component is selected by a type string and receives a map
// of raw settings that it decodes into its own typed struct.
package factory
