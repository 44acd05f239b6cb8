// Package delivery tracks how an order moves from submitted to fully
// delivered.
//
// The aggregate root is State: it holds the append-only history of order
// versions (what the table ordered, and how that changed) and delivery
// records (what actually reached the table), and folds them into a Status.
//
// Versions form a strict sequence: each new version must carry exactly the
// previous number plus one, otherwise AppendVersion rejects it with
// ErrVersionOutOfOrder. The latest version defines the expected quantity
// the status is computed against.
//
// Status is a small state machine with two terminal states, FullyDelivered
// and Cancelled. Once terminal, no record or version changes it.
package delivery
