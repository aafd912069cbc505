package constants

const (
	CentsPerUnit = 100

	// MaxSafeCents keeps amount * 100 inside int64.
	MaxSafeCents = 9223372036854775
)

const (
	MinCardDigits = 12
	MaxCardDigits = 19
	MaxNameLen    = 100
)

// BulkWarning is shown while a batch request is in flight.
const BulkWarning = "Do not close the terminal or interrupt until the batch finishes."
