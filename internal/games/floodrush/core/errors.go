package core

import "fmt"

// ErrorCode identifies the kind of an engine error.
type ErrorCode string

// Validation error codes.
const (
	CodeInvalidCoordinate            ErrorCode = "INVALID_COORDINATE"
	CodeInvalidDimension             ErrorCode = "INVALID_DIMENSION"
	CodeInvalidLevelNumber           ErrorCode = "INVALID_LEVEL_NUMBER"
	CodeInvalidGameSpeed             ErrorCode = "INVALID_GAME_SPEED"
	CodeInvalidFloodTimeout          ErrorCode = "INVALID_FLOOD_TIMEOUT"
	CodePositionOutOfBounds          ErrorCode = "POSITION_OUT_OF_BOUNDS"
	CodeNegativePointsDelta          ErrorCode = "NEGATIVE_POINTS_DELTA"
	CodeInvalidSpeedMultiplier       ErrorCode = "INVALID_SPEED_MULTIPLIER"
	CodeInvalidPoints                ErrorCode = "INVALID_POINTS"
	CodeMissingSecondaryPoints       ErrorCode = "MISSING_SECONDARY_POINTS"
	CodeInvalidSecondaryPoints       ErrorCode = "INVALID_SECONDARY_POINTS"
	CodeSameEntryExit                ErrorCode = "SAME_ENTRY_EXIT"
	CodeInvalidConnectionCombination ErrorCode = "INVALID_CONNECTION_COMBINATION"
	CodeMalformedLevelData           ErrorCode = "MALFORMED_LEVEL_DATA"
	CodeLevelNotFound                ErrorCode = "LEVEL_NOT_FOUND"
	CodeEmptyQueue                   ErrorCode = "EMPTY_QUEUE"
	CodeCellOccupied                 ErrorCode = "CELL_OCCUPIED"
	CodeCellReserved                 ErrorCode = "CELL_RESERVED"
)

// Transition error codes.
const (
	CodeInvalidTransition         ErrorCode = "INVALID_TRANSITION"
	CodeCannotReverseWhileFlowing ErrorCode = "CANNOT_REVERSE_WHILE_FLOWING"
	CodeFlowCapacityExceeded      ErrorCode = "FLOW_CAPACITY_EXCEEDED"
)

// ValidationError reports a rejected construction or data payload.
// Nothing is partially applied when one is returned.
type ValidationError struct {
	Code    ErrorCode
	Field   string // Offending field, e.g. "start" or "speedMultiplier"
	Message string
	Err     error // Underlying cause, if any
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Code)
	}
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, msg, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, msg)
}

// Unwrap returns the underlying cause.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is matches any ValidationError with the same code.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Code == e.Code
}

// Sentinel validation errors for use with errors.Is.
var (
	ErrInvalidCoordinate            = &ValidationError{Code: CodeInvalidCoordinate}
	ErrInvalidDimension             = &ValidationError{Code: CodeInvalidDimension}
	ErrInvalidLevelNumber           = &ValidationError{Code: CodeInvalidLevelNumber}
	ErrInvalidGameSpeed             = &ValidationError{Code: CodeInvalidGameSpeed}
	ErrInvalidFloodTimeout          = &ValidationError{Code: CodeInvalidFloodTimeout}
	ErrPositionOutOfBounds          = &ValidationError{Code: CodePositionOutOfBounds}
	ErrNegativePointsDelta          = &ValidationError{Code: CodeNegativePointsDelta}
	ErrInvalidSpeedMultiplier       = &ValidationError{Code: CodeInvalidSpeedMultiplier}
	ErrInvalidPoints                = &ValidationError{Code: CodeInvalidPoints}
	ErrMissingSecondaryPoints       = &ValidationError{Code: CodeMissingSecondaryPoints}
	ErrInvalidSecondaryPoints       = &ValidationError{Code: CodeInvalidSecondaryPoints}
	ErrSameEntryExit                = &ValidationError{Code: CodeSameEntryExit}
	ErrInvalidConnectionCombination = &ValidationError{Code: CodeInvalidConnectionCombination}
	ErrMalformedLevelData           = &ValidationError{Code: CodeMalformedLevelData}
	ErrLevelNotFound                = &ValidationError{Code: CodeLevelNotFound}
	ErrEmptyQueue                   = &ValidationError{Code: CodeEmptyQueue}
	ErrCellOccupied                 = &ValidationError{Code: CodeCellOccupied}
	ErrCellReserved                 = &ValidationError{Code: CodeCellReserved}
)

func invalid(code ErrorCode, field, msg string) *ValidationError {
	return &ValidationError{Code: code, Field: field, Message: msg}
}

// NotFound returns an ErrLevelNotFound error for the given level number.
func NotFound(number int) error {
	return invalid(CodeLevelNotFound, "number", fmt.Sprintf("level %d not found", number))
}

// Malformed wraps a parse failure as ErrMalformedLevelData.
func Malformed(field string, cause error) error {
	return &ValidationError{
		Code:    CodeMalformedLevelData,
		Field:   field,
		Message: "malformed level data",
		Err:     cause,
	}
}

// TransitionError reports an operation attempted in the wrong lifecycle state.
// The piece is left unmodified.
type TransitionError struct {
	Code  ErrorCode
	Op    PipeOp
	State PipeState
}

func (e *TransitionError) Error() string {
	switch e.Code {
	case CodeCannotReverseWhileFlowing:
		return fmt.Sprintf("[%s] cannot reverse direction in %s state", e.Code, e.State)
	case CodeFlowCapacityExceeded:
		return fmt.Sprintf("[%s] cannot %s: flow capacity exhausted", e.Code, e.Op)
	default:
		return fmt.Sprintf("[%s] cannot %s pipe in %s state", e.Code, e.Op, e.State)
	}
}

// Is matches any TransitionError with the same code.
func (e *TransitionError) Is(target error) bool {
	t, ok := target.(*TransitionError)
	return ok && t.Code == e.Code
}

// Sentinel transition errors for use with errors.Is.
var (
	ErrInvalidTransition         = &TransitionError{Code: CodeInvalidTransition}
	ErrCannotReverseWhileFlowing = &TransitionError{Code: CodeCannotReverseWhileFlowing}
	ErrFlowCapacityExceeded      = &TransitionError{Code: CodeFlowCapacityExceeded}
)
