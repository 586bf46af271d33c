// Package infra holds the adapters behind the core interfaces: record
// sources, report sinks, logging and error monitoring. Builtin sources and
// sinks register themselves with the core registries on import.
package infra
