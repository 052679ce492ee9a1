// Package pharmacy holds the Pharmacy aggregate and its catalog Products.
//
// Product stock is never negative: Reserve fails with a Conflict when the
// requested quantity exceeds what is on hand, and Release puts units back when
// an order is cancelled. Products carry a version number used by the
// persistence layer for optimistic locking, which keeps concurrent checkouts
// of the last unit from both succeeding.
package pharmacy
