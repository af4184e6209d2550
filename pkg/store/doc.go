/*
Package store implements the single-owner holder of the current state.

A Store exclusively owns its state value. Consumers receive read-only snapshots
through State, and the only way to change the state is Dispatch, which runs the
pure reducer from package domain under the store's lock. There are no setters.

Lifecycle hooks (see domain.LifecycleHooks) are invoked synchronously after the
lock is released, so a hook may safely read the store again.
*/
package store
