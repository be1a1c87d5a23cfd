package mission

// GameError is a custom error type for mission errors
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
	ErrNilMissionRepo   GameError = "mission repository cannot be nil"
	ErrNilGameStateRepo GameError = "game state repository cannot be nil"
	ErrNilEvents        GameError = "event service cannot be nil"
	ErrNilMessaging     GameError = "messaging service cannot be nil"
	ErrNilTraps         GameError = "trap validator cannot be nil"
	ErrNilEndGame       GameError = "end game checker cannot be nil"
	ErrNilDiceRoller    GameError = "dice roller cannot be nil"
	ErrNilClock         GameError = "clock cannot be nil"
	ErrNilUUIDGenerator GameError = "uuid generator cannot be nil"

	ErrPlayerNotFound        GameError = "player not found"
	ErrScannedPlayerNotFound GameError = "scanned player not found"
	ErrNoActiveMission       GameError = "no active mission"
	ErrNoEligibleTarget      GameError = "no eligible target for a mission"
	ErrMissionsPending       GameError = "player already has missions assigned"
	ErrGameEnded             GameError = "the game is over"
	ErrGameNotStarted        GameError = "the game has not started yet"
	ErrPlayerEliminated      GameError = "eliminated players cannot scan"
	ErrEmptyScan             GameError = "scanned code is empty"
	ErrInvalidTarget         GameError = "a mission target must be another player in play"
	ErrCooldownActive        GameError = "scanner is cooling down"
)
