// Package security implements the authorization and data-scoping policy.
//
// The policy has two halves. CanPerform/CanAccess are pure decision
// functions over a role by action capability table, called by every handler
// before touching data. VisibleAgencies derives the set of agencies an
// agency-scoped caller may read, by expanding descendants level by level
// with a visited set.
//
// Authentication itself is external; the HTTP adapter builds a Caller from
// the auth provider's claims and the core trusts it.
package security
