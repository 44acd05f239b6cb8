// Package kernel contains shared value objects used across the domain model:
// identifiers, table numbers, and monetary amounts. These types enforce their
// own invariants at construction time so the aggregates that embed them can
// assume validity.
package kernel
