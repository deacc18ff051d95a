package engine

import "errors"

// Typed failure reasons returned by engine operations. All are recoverable by
// the caller except ErrPartitionViolated, which signals a logic defect.
var (
	ErrIllegalMeld                  = errors.New("cards do not form a legal meld")
	ErrIllegalAddition              = errors.New("card cannot be added to this meld")
	ErrNotInHand                    = errors.New("card is not in hand")
	ErrInvalidPhase                 = errors.New("action is not valid in the current phase")
	ErrEmptyStockAndDiscard         = errors.New("stock and discard pile are both exhausted")
	ErrFinalKnockNeedsCleanCanastra = errors.New("final knock requires a clean canastra")
	ErrNotTeamMeld                  = errors.New("meld belongs to the opposing team")
	ErrInvalidAction                = errors.New("invalid action")
	ErrPartitionViolated            = errors.New("card partition invariant violated")
)
