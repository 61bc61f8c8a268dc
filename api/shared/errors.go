/* errors.go
 * Sentinel errors shared across the schedule, store and finals packages.
 * Callers wrap these with fmt.Errorf("...: %w", err) for context
 */

package shared

import "errors"

var (
	// Validation errors: rejected before any mutation, schedule left unchanged
	ErrDuplicateTeam     = errors.New("team already exists in schedule")
	ErrEmptyTeamName     = errors.New("team name is required")
	ErrSelfPairedMatch   = errors.New("match cannot pair a team against itself")
	ErrIndexOutOfRange   = errors.New("match index out of range")
	ErrInvalidTeamNumber = errors.New("team number must be 1 or 2")
	ErrInvalidStatus     = errors.New("invalid match status")
	ErrInvalidMatchCount = errors.New("match count must be positive")

	// Not-found errors: the operation is a no-op
	ErrTeamNotFound = errors.New("team not found in schedule")

	// Finals errors
	ErrNotEnoughQualifiers = errors.New("at least 4 qualified teams are required for finals")
	ErrUnknownFinalsMatch  = errors.New("unknown finals match reference")
	ErrBracketNotReady     = errors.New("finals match teams are not decided yet")
	ErrInvalidWinner       = errors.New("winner is not a participant in this match")
)
