package constants

const (
	// DateFormat is the canonical day key format (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// ShortDateFormat is used for calendar column headers
	ShortDateFormat = "01/02"
)
