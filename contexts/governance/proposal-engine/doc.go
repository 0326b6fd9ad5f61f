// Package proposalengine implements the proposal lifecycle inside the
// governance context.
//
// The module owns proposal records, per-voter vote records, stake-weighted
// tallies, and the execution/cancellation gate. Voting power is snapshotted
// from the stake ledger at the instant a vote is cast, and the single pass
// predicate is shared between execution and read queries so "what executed"
// and "what reads as passing" can never diverge.
package proposalengine
