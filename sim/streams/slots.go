package streams

// UID identifies an agent for its whole lifetime.
type UID int64

// SlotTable maps agents to the index they read from every slot-indexed draw.
// Slots are stable for an agent's lifetime and unique among live agents.
type SlotTable interface {
	// SlotOf returns the slot of uid, or false if no slot was ever assigned.
	SlotOf(uid UID) (int64, bool)
}

// SequentialSlots is a SlotTable in which agent k occupies slot k for 0 <= k < n.
// Useful for standalone streams and tests.
type SequentialSlots int

// SlotOf implements SlotTable.
func (n SequentialSlots) SlotOf(uid UID) (int64, bool) {
	if uid < 0 || int64(uid) >= int64(n) {
		return 0, false
	}
	return int64(uid), true
}
