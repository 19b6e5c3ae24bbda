// Package triage is the business boundary for ticket triage. It
// defines the Service (batch classification, auto-dispatch policy,
// manual dispatch), the Store interface for retained batch results,
// and the domain models shared by the HTTP layer.
package triage
