/*
Package ports defines the driving ports (interfaces) of the vigor state container.

The drivers (HTTP, MCP, CLI) depend on these interfaces rather than on the
concrete reducer and store.

# Key Interfaces

  - Reducer: stateless transition, (Action, State) -> State.
  - Dispatcher: a single-owner holder of the current state with one mutation entry point.
*/
package ports
