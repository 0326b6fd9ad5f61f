// Package stakeledger implements the staking ledger inside the governance
// context.
//
// The module owns deposited balances and the aggregate total stake, funnels
// every balance mutation through atomic credit/debit repository operations,
// and brokers the fallible external asset transfers around them. Business
// rules live in application/domain layers; infrastructure stays behind ports
// and adapters.
package stakeledger
