/*
Package domain contains the core domain model of the vigor state container.

It defines the closed set of Actions, the immutable State snapshot and the pure
reducer that relates them. This package is kept pure and free of external
dependencies like I/O, logging or persistence, following Hexagonal Architecture
principles. Everything with side effects (the Store, the adapters) lives
outside of it.

# Key Entities

  - Action: a thing that happened (Run, Walk, Sit). Carries no payload.
  - State: the complete observable condition of the system (Energy).
  - Reduce: the only sanctioned transition, (Action, State) -> State.
  - StateDiff: a compact description of what a transition changed.
*/
package domain
