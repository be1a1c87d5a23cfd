package events

// GameError is a custom error type for event log errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Public marks the error as safe to show to players
func (e GameError) Public() bool {
	return true
}

const (
	ErrNilConfig        GameError = "config cannot be nil"
	ErrNilEventRepo     GameError = "event repository cannot be nil"
	ErrNilClock         GameError = "clock cannot be nil"
	ErrNilUUIDGenerator GameError = "UUID generator cannot be nil"
	ErrEmptyMessage     GameError = "event message cannot be empty"
	ErrNilHandler       GameError = "handler cannot be nil"
)
