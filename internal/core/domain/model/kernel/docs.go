// Package kernel contains shared value objects used across all domain aggregates:
// UUID identity and the ItemSize footprint lookup that pricing and capacity
// scheduling both derive from.
package kernel
