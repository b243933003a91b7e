package daemon

// Exported for tests.
var (
	EncodeCell        = encodeCell
	DecodeCell        = decodeCell
	DecodeGrid        = decodeGrid
	DecodeCallRequest = decodeCallRequest
	ToStatus          = toStatus
	FromStatus        = fromStatus
)
