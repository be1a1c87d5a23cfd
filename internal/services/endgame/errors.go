package endgame

// GameError is a custom error type for end-of-game errors
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
	ErrNilPlayerRepo    GameError = "player repository cannot be nil"
	ErrNilGameStateRepo GameError = "game state repository cannot be nil"
	ErrNilVotingRepo    GameError = "voting repository cannot be nil"
	ErrNilEvents        GameError = "event service cannot be nil"
	ErrNilClock         GameError = "clock cannot be nil"
	ErrInvalidWinner    GameError = "winner must be humans or altered"
	ErrGameNotEnded     GameError = "the game has not ended yet"
)
