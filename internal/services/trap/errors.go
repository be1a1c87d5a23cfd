package trap

// GameError is a custom error type for trap errors
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
	ErrNilConfig         GameError = "config cannot be nil"
	ErrNilPlayerRepo     GameError = "player repository cannot be nil"
	ErrNilMissionRepo    GameError = "mission repository cannot be nil"
	ErrNilGameStateRepo  GameError = "game state repository cannot be nil"
	ErrNilEvents         GameError = "event service cannot be nil"
	ErrNilMessaging      GameError = "messaging service cannot be nil"
	ErrNilEndGame        GameError = "end-game service cannot be nil"
	ErrNilClock          GameError = "clock cannot be nil"
	ErrNilUUIDGenerator  GameError = "UUID generator cannot be nil"
	ErrPlayerNotFound    GameError = "player not found"
	ErrTargetNotFound    GameError = "target player not found"
	ErrNotAltered        GameError = "only altered players can use traps"
	ErrPlayerEliminated  GameError = "eliminated players cannot use traps"
	ErrNoTrapsRemaining  GameError = "no traps remaining"
	ErrTrapAlreadyActive GameError = "a trap is already active"
	ErrNoActiveTrap      GameError = "no active trap"
	ErrTargetNotHuman    GameError = "traps can only target humans"
	ErrTargetEliminated  GameError = "target already eliminated"
	ErrTargetNoMission   GameError = "this human has no active mission"
	ErrEmptyGuess        GameError = "guess cannot be empty"
)
