/*
Package domain contains the value types and errors shared by the optirail engine
and its adapters.

Everything here is a plain value: a request is built per call, the engine derives
a result from it and nothing is kept between calls.

# Key Entities

  - Component: one element instance on the rail (caller id, catalog type, parameters).
  - Ray: a named initial (height, angle) pair at the input plane.
  - TraceRequest / TraceResult: the request/response pair of a single trace.
  - Workspace: a named, saved rail used by the optional stores.
*/
package domain
