// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the forwarding system. It
// implements complex business workflows that don't naturally belong to a
// single aggregate root.
//
// The package includes:
//   - RateResolver: resolves an effective delivery rate by walking up the
//     agency hierarchy, preferring city-specific over city-type rates at
//     every level and falling back to forwarder base rates at the root
//   - OrderStatusAggregator: derives an order's displayed status from the
//     distribution of its parcels' statuses
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design
// principles.
package services
