package hn

import (
	"fmt"
)

// Stage names the API call an error came from.
type Stage string

const (
	StageList Stage = "list"
	StageItem Stage = "item"
)

// TransportError reports a failure to reach the API or a non-200 answer.
// ID is only set for StageItem.
type TransportError struct {
	Stage      Stage
	ID         int
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	target := string(e.Stage)
	if e.Stage == StageItem {
		target = fmt.Sprintf("item %d", e.ID)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status %d", target, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", target, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError reports a payload that does not have the expected shape.
// Field names the offending required field when one can be singled out.
type DecodeError struct {
	Stage Stage
	ID    int
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	target := string(e.Stage)
	if e.Stage == StageItem {
		target = fmt.Sprintf("item %d", e.ID)
	}
	if e.Field != "" {
		return fmt.Sprintf("decoding %s: field %q: %v", target, e.Field, e.Err)
	}
	return fmt.Sprintf("decoding %s: %v", target, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
