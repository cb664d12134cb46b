package engine

import "errors"

// Request-local validation failures. None of these mutate the match: a
// rejected ask or declaration leaves GameState untouched. A failed ask (the
// target does not hold the named card) is not an error — it resolves with
// the turn passing to the target.
var (
	// ErrMatchOver is returned for any action submitted after a team has
	// won five sets.
	ErrMatchOver = errors.New("match is already over")

	// ErrNotYourTurn is returned when the acting player does not hold the
	// current turn.
	ErrNotYourTurn = errors.New("not your turn")

	// ErrInvalidTarget is returned when the ask target is the asker or is
	// out of range.
	ErrInvalidTarget = errors.New("invalid ask target")

	// ErrSameTeamTarget is returned when the ask target is a teammate.
	ErrSameTeamTarget = errors.New("cannot ask a teammate")

	// ErrTargetHasNoCards is returned when the ask target holds no cards.
	ErrTargetHasNoCards = errors.New("target has no cards")

	// ErrInvalidSetKey is returned when a set name matches none of the
	// nine half-suits.
	ErrInvalidSetKey = errors.New("invalid set key")

	// ErrSetAlreadyDeclared is returned when the named set has already
	// left play. Each set is declared exactly once.
	ErrSetAlreadyDeclared = errors.New("set already declared")
)
