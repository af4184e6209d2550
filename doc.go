/*
Package vigor is a minimal unidirectional state container built around a pure reducer.

It separates what happened (an Action) from how the state changes (the reducer),
and keeps the only copy of the current state inside a single owner (the Store).

# Concept

An Action is a value describing an event: Run, Walk or Sit. The State is a snapshot
holding a single Energy value. The reducer maps (Action, State) to a new State and
never mutates its input:

	Sit  +10
	Run  -15
	Walk  -5

# Key Features

  - Pure Reduction: identical inputs always yield identical outputs; no side effects.
  - Single Owner: the Store exposes snapshots and one mutation entry point, Dispatch.
  - Hexagonal Architecture: HTTP, MCP and CLI drivers depend only on the ports package.
  - Observability: lifecycle hooks feed structured logs and Prometheus metrics.

# Usage

	package main

	import (
		"context"
		"fmt"

		"github.com/aretw0/vigor"
		"github.com/aretw0/vigor/pkg/domain"
	)

	func main() {
		st := vigor.NewStore()
		for _, a := range []domain.Action{domain.Run, domain.Walk, domain.Sit} {
			if _, err := st.Dispatch(context.Background(), a); err != nil {
				panic(err)
			}
		}
		fmt.Println(st.State().Energy) // 40
	}
*/
package vigor
