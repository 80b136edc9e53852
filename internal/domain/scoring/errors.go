package scoring

import "github.com/cockroachdb/errors"

var (
	ErrMissingTier        = errors.New("postseason game requires a tier")
	ErrConflictingOutcome = errors.New("outcome cannot be both win and push")
	ErrUnknownPickedTeam  = errors.New("picked team is not playing in this game")
	ErrGameNotFinal       = errors.New("game has no final score")
	ErrAlreadyScored      = errors.New("pick is already scored")
	ErrNotScored          = errors.New("pick is not scored")
	ErrPickNotFound       = errors.New("pick not found")
)
