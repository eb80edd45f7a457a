/*
Package ports defines the interfaces between the optirail engine and its adapters.

# Key Interfaces

  - Tracer: the stateless engine contract consumed by the HTTP, MCP and CLI adapters.
  - WorkspaceStore: persistence for named, saved rails (memory or Redis).
*/
package ports
