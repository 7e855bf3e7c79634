// Package models defines the value types exchanged between the boundary
// layer and the two computation cores.
//
// # Models
//
//   - LedgerEntry: one user's lent/owed amounts within a settlement scope
//   - Transfer: a directed debt-clearing instruction between two users
//   - CounterpartyBalance: a signed balance toward one counterparty
//   - BucketEntry / ExceptionCount: one time bucket of the log report
//
// All types are plain values. They are constructed per computation from
// caller-supplied rows, never persisted, and never shared across calls.
// Monetary amounts use decimal.Decimal so that settlement math keeps full
// precision until an amount is emitted at the boundary.
package models
