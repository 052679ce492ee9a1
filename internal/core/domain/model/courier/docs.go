// Package courier holds the Courier aggregate: a delivery person, their
// vehicle and their last reported position.
//
// A courier is available while its last location update is younger than
// StalenessWindow. Couriers without a live position may carry a fixed test
// location, which is used for proximity matching but never makes the courier
// available.
package courier
