package swap

// Status is a read-only projection over a single swap. Missing swaps
// yield the zero value, every predicate false.
type Status struct {
	Exists           bool
	State            uint32
	Claimed          bool
	Refunded         bool
	Expired          bool
	Claimable        bool
	Refundable       bool
	MultiSigRequired uint32
	MultiSigProvided uint32
	ExpirationHeight int64
}

// IsClaimable reports whether the swap can still be claimed at the
// given height. It checks state and quorum gating only, not the
// preimage and not caller identity.
func IsClaimable(s *Swap, height int64) bool {
	if s == nil || s.Claimed || s.Refunded {
		return false
	}
	if height >= s.TimeLock || height >= s.ExpirationHeight {
		return false
	}
	if s.MultiSigRequired > 1 && s.MultiSigProvided < s.MultiSigRequired {
		return false
	}
	return true
}

// IsRefundable reports whether the swap can be refunded at the given
// height. Refund opens once the expiration height is reached.
func IsRefundable(s *Swap, height int64) bool {
	if s == nil || s.Claimed || s.Refunded {
		return false
	}
	return height >= s.ExpirationHeight
}

// StatusOf builds the full status projection for a swap at the given
// height. A nil swap produces the conservative zero status.
func StatusOf(s *Swap, height int64) Status {
	if s == nil {
		return Status{}
	}
	return Status{
		Exists:           true,
		State:            s.State(),
		Claimed:          s.Claimed,
		Refunded:         s.Refunded,
		Expired:          height >= s.ExpirationHeight,
		Claimable:        IsClaimable(s, height),
		Refundable:       IsRefundable(s, height),
		MultiSigRequired: s.MultiSigRequired,
		MultiSigProvided: s.MultiSigProvided,
		ExpirationHeight: s.ExpirationHeight,
	}
}
