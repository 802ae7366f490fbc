package engine

// ValidateCapacity admits a net ticket delta against a session's hall
// capacity.  occupied must be the current persisted ticket total at
// decision time, never a client-supplied figure.  Reductions (delta <=
// 0) always admit.
func ValidateCapacity(occupied, capacity, delta int) error {
	if delta <= 0 {
		return nil
	}
	if occupied+delta > capacity {
		return Reject(ReasonCapacityExceeded)
	}
	return nil
}
