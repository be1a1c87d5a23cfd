package voting

// GameError is a custom error type for voting errors
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
	ErrNilVotingRepo    GameError = "voting repository cannot be nil"
	ErrNilGameStateRepo GameError = "game state repository cannot be nil"
	ErrNilEvents        GameError = "event service cannot be nil"
	ErrNilEndGame       GameError = "end game checker cannot be nil"
	ErrNilDiceRoller    GameError = "dice roller cannot be nil"
	ErrNilClock         GameError = "clock cannot be nil"
	ErrNilUUIDGenerator GameError = "uuid generator cannot be nil"

	ErrSessionActive     GameError = "a voting session is already in progress"
	ErrNotEnoughPlayers  GameError = "not enough players to vote (minimum 3)"
	ErrSessionNotFound   GameError = "voting session not found"
	ErrSessionNotActive  GameError = "this vote is already over"
	ErrNotEligibleVoter  GameError = "you are not an eligible voter"
	ErrTargetNotFound    GameError = "vote target not found"
	ErrTargetEliminated  GameError = "target already eliminated"
	ErrSelfVote          GameError = "you cannot vote for yourself"
	ErrInitiatorNotFound GameError = "player not found"
	ErrGameEnded         GameError = "the game is over"
	ErrNoActiveSession   GameError = "no voting session in progress"
)
