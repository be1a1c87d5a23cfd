package game

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Public marks the error as safe to show to players
func (e GameError) Public() bool {
	return true
}

// Define errors
const (
	ErrNilConfig        GameError = "config cannot be nil"
	ErrNilPlayerRepo    GameError = "player repository cannot be nil"
	ErrNilMissionRepo   GameError = "mission repository cannot be nil"
	ErrNilGameStateRepo GameError = "game state repository cannot be nil"
	ErrNilVotingRepo    GameError = "voting repository cannot be nil"
	ErrNilEvents        GameError = "event service cannot be nil"
	ErrNilMissions      GameError = "mission service cannot be nil"
	ErrNilTraps         GameError = "trap service cannot be nil"
	ErrNilVoting        GameError = "voting service cannot be nil"
	ErrNilSuspicion     GameError = "suspicion service cannot be nil"
	ErrNilEndGame       GameError = "end game service cannot be nil"
	ErrNilClock         GameError = "clock cannot be nil"

	ErrEngineStopped     GameError = "game engine is not running"
	ErrEngineRunning     GameError = "game engine is already running"
	ErrPlayerNotFound    GameError = "player not found"
	ErrPlayerExists      GameError = "a player with this ID already exists"
	ErrEmptyIdentifier   GameError = "player code is empty"
	ErrInvalidRole       GameError = "role must be human or altered"
	ErrInvalidName       GameError = "player name cannot be empty"
	ErrEmptyRoster       GameError = "roster has no players"
	ErrDuplicatePlayer   GameError = "roster lists a player twice"
	ErrInvalidLevel      GameError = "invalid level (0-20)"
	ErrInvalidGameState  GameError = "invalid game state"
	ErrGameNotConfigured GameError = "the game has not been set up"
)

// genericMessage is shown for errors that are not safe to expose
const genericMessage = "Something went wrong. Please try again."
