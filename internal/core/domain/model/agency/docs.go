// Package agency provides domain entities and business logic for the agency
// hierarchy in the forwarding system. Agencies form a tree: a forwarder at
// the root, resellers in the middle, and plain agencies at the leaves.
//
// The package includes:
//   - Agency: The aggregate root representing one node of the tree
//   - Type: The agency kind (Forwarder, Reseller, Agency)
//
// Key business rules:
//   - Exactly one root (a Forwarder with no parent) exists per forwarder subtree
//   - Every non-root agency carries the id of its root ancestor (forwarder id)
//   - Only Forwarder and Reseller agencies may create child agencies
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package agency
