package organizer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidSource  = errors.New("invalid source")
	ErrInvalidOptions = errors.New("invalid options")
	ErrLocked         = errors.New("destination locked")
	ErrPlacement      = errors.New("placement failure")
)

// Wrap builds an error message that includes stage context while tagging it
// with marker for errors.Is classification. marker should be one of the
// sentinel errors above; nil defaults to ErrPlacement.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrPlacement
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "organizer failure"
	}
	return strings.Join(parts, ": ")
}
