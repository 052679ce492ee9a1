// Package insurance models health insurance plans and the per-product
// discounts a plan grants.
//
// A Discount is either a percentage of the base price or a flat amount, never
// both. Discounts are unique per (product, plan); saving a discount for a pair
// that already has one replaces it.
package insurance
