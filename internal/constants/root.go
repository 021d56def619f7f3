package constants

import "time"

// Flag names the boolean activity column of a day record.
type Flag string

// Tone is the three-level activity intensity of a calendar slot.
type Tone int

// ProofKind identifies which activity a proof artifact belongs to.
type ProofKind string

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "ecolife"
	DefaultKeyringUser = "database-connection"
	SessionKeyringUser = "session-user"
	DefaultConfigDir   = "~/.config/ecolife"
	Version            = "v0.3.0"

	// Environment override for the ambient session identity
	EnvUserID = "ECOLIFE_USER_ID"
	// Environment override for the PostgreSQL connection string
	EnvDBConnection = "ECOLIFE_DB_CONNECTION"

	// Activity flags
	FlagEco       Flag = "eco_done"
	FlagChallenge Flag = "challenge_done"

	// Calendar tones
	ToneNone Tone = 0
	ToneOne  Tone = 1
	ToneBoth Tone = 2

	// Proof kinds
	ProofEco       ProofKind = "eco"
	ProofChallenge ProofKind = "challenge"

	// Standard windows
	WeekWindow            = 7
	CalendarWindow        = 45
	DefaultStreakLookback = 90
	DefaultHistoryDays    = 30

	// Content rotation
	TipSeedPrefix  = "tip:"
	FactsBatchSize = 3

	// Local key-value keys; the user id is appended
	KeyTipOfDay   = "tip_of_day:"
	KeyFactsQueue = "facts_queue:"
	KeyFactsLast  = "facts_last:"

	// Remote call bounds
	DefaultRequestTimeout = 10 * time.Second
	ProofUploadTimeout    = 2 * time.Minute
)

// Session States
const (
	StateDashboard SessionState = iota
	StateCalendar
	StateConfirmDelete
)
