// Package transit implements an in-memory, event-driven finite state
// machine: a directed graph of named states connected by message-labeled
// transitions, stored in an insertion-ordered TransitionIndex and
// traversed by a StateMachine cursor.
//
// Machines are assembled through the fluent Builder, from a YAML Config,
// or by adding transitions directly:
//
//	machine, err := transit.NewBuilder().
//		From("locked").On("coin").To("unlocked").
//		From("unlocked").On("push").To("locked").
//		Build()
//	machine.Send(transit.NewMessage("coin"))
//
// Dispatch resolves the exact (state, message) entry first and falls
// back to the Any wildcard for named messages. Departure and arrival
// filters can observe or veto a resolved transition; a vetoed dispatch
// leaves the cursor untouched.
//
// The index and machine are plain mutable structures without internal
// locking; sharing an instance across goroutines requires external
// synchronization.
package transit
