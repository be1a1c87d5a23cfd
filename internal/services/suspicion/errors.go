package suspicion

// GameError is a custom error type for suspicion errors
type GameError string

func (e GameError) Error() string {
	return string(e)
}

func (e GameError) Public() bool {
	return true
}

const (
	ErrNilConfig       GameError = "config cannot be nil"
	ErrNilPlayerRepo   GameError = "player repository cannot be nil"
	ErrNilEvents       GameError = "event service cannot be nil"
	ErrPlayerNotFound  GameError = "player not found"
	ErrSuspectNotFound GameError = "suspect not found"
	ErrSelfSuspect     GameError = "you cannot suspect yourself"
	ErrAlreadySuspect  GameError = "already in your suspects"
	ErrNotSuspect      GameError = "not in your suspects"
)
