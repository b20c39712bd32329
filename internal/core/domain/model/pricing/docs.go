// Package pricing provides the pricing agreement graph of the forwarding
// system: wholesale agreements between seller and buyer agencies and the
// buyer-facing shipping rates derived from them.
//
// The package includes:
//   - Agreement: the seller-to-buyer wholesale cost for a (product, service) pair
//   - ShippingRate: the buyer agency's sell-side price, linked 1:1 to one agreement
//   - Scope: the visibility of a shipping rate (public by default)
//
// Key business rules:
//   - At most one agreement exists per (seller, buyer, product, service) tuple
//   - Monetary amounts are non-negative integer cents
//   - A rate and its agreement are created and updated together, atomically;
//     transaction orchestration lives in the application layer
//   - An agreement is internal when the seller and buyer agency coincide
package pricing
