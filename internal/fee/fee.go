// Package fee implements the transfer fee policy.
//
// The policy is fee-inclusive: the sender is debited the requested amount,
// the receiver is credited the requested amount minus the fee, and the fee
// itself is burned rather than credited to any account. Amounts are integer
// minor units and the rate is expressed in basis points, so repeated fee
// computations never accumulate rounding drift.
package fee

// DefaultBps is the standard transfer fee rate of 1%.
const DefaultBps = 100

// Policy computes the fee owed for a transfer amount.
type Policy struct {
	bps int64
}

// NewPolicy builds a fee policy from a basis-point rate. Negative rates are
// treated as zero.
func NewPolicy(bps int64) Policy {
	if bps < 0 {
		bps = 0
	}
	return Policy{bps: bps}
}

// Compute returns the fee for the requested amount, rounded down.
func (p Policy) Compute(amount int64) int64 {
	if amount <= 0 {
		return 0
	}
	return amount * p.bps / 10_000
}

// Bps returns the configured basis-point rate.
func (p Policy) Bps() int64 {
	return p.bps
}
