// Package cards persists payment-card records in the cards table.
// Records are ordered by their autoincrement id, which is insertion order.
package cards
