// Package deliveryrate provides the delivery rate entity resolved by the
// hierarchical rate-inheritance algorithm. A delivery rate prices one
// carrier's delivery either to a specific city or to a whole city type, and
// is owned either by a single agency or, for base rates, by the forwarder
// level (no agency).
//
// Key business rules:
//   - A base rate never has an owning agency
//   - A non-base rate always has an owning agency
//   - A rate targets a specific city or a city type, never neither
package deliveryrate
