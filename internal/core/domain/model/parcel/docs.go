// Package parcel provides domain entities for parcel (order item) tracking
// in the forwarding system. Each parcel moves independently through the
// delivery lifecycle; order-level status is derived from the distribution of
// parcel statuses (see the services package).
//
// The package includes:
//   - Parcel: the aggregate root identified by id and HBL tracking code
//   - Status: the parcel lifecycle status with a total advancement ordering
//
// Key business rules:
//   - Every parcel belongs to exactly one order and carries a unique HBL
//   - Statuses are totally ordered by advancement; the ordering drives the
//     order-status aggregation tie-break
package parcel
