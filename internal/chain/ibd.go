package chain

// DefaultIBDThreshold is the header lead, roughly one day of blocks, beyond which a node is still downloading.
const DefaultIBDThreshold = 144

// IBDStatus is the coarse sync state derived from header and validated heights.
type IBDStatus int

const (
	NoData IBDStatus = iota
	InIBD
	Synced
)

func (s IBDStatus) String() string {
	switch s {
	case NoData:
		return "no_data"
	case InIBD:
		return "in_ibd"
	case Synced:
		return "synced"
	default:
		return "unknown"
	}
}

// MarshalText renders the status name in JSON payloads.
func (s IBDStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Classify derives the sync state. An empty validated chain (-1) counts as height 0.
func Classify(headerHeight, validatedHeight, threshold int32) IBDStatus {
	if headerHeight == 0 {
		return NoData
	}
	if validatedHeight <= 0 {
		return InIBD
	}
	if headerHeight-validatedHeight > threshold {
		return InIBD
	}
	return Synced
}
