package hn

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	errNull        = errors.New("payload is null")
	errMissing     = errors.New("required field missing")
	errNegativeID  = errors.New("negative story id")
	errWrongFormat = errors.New("payload is not an array of integers")
)

// storyPayload enumerates the fields read from an item. Pointers tell a
// missing field apart from a zero value.
type storyPayload struct {
	Title *string `json:"title"`
	URL   *string `json:"url"`
	Score *int    `json:"score"`
	By    *string `json:"by"`
}

// DecodeStory validates an item payload and builds a Story from it.
// title, score and by are required; url is optional.
func DecodeStory(id int, data []byte) (*Story, error) {
	var p *storyPayload
	if err := json.Unmarshal(data, &p); err != nil {
		de := &DecodeError{Stage: StageItem, ID: id, Err: err}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			de.Field = typeErr.Field
		}
		return nil, de
	}
	if p == nil {
		return nil, &DecodeError{Stage: StageItem, ID: id, Err: errNull}
	}

	switch {
	case p.Title == nil:
		return nil, &DecodeError{Stage: StageItem, ID: id, Field: "title", Err: errMissing}
	case p.Score == nil:
		return nil, &DecodeError{Stage: StageItem, ID: id, Field: "score", Err: errMissing}
	case p.By == nil:
		return nil, &DecodeError{Stage: StageItem, ID: id, Field: "by", Err: errMissing}
	}

	s := &Story{
		ID:     id,
		Title:  *p.Title,
		Score:  *p.Score,
		Author: *p.By,
	}
	if p.URL != nil {
		s.URL = *p.URL
	}
	return s, nil
}

// DecodeStoryIDs validates a list payload: a JSON array of non-negative integers.
// A null element is rejected rather than read as ID 0.
func DecodeStoryIDs(data []byte) ([]int, error) {
	var raw *[]*int
	if err := json.Unmarshal(data, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			err = fmt.Errorf("%w: %v", errWrongFormat, err)
		}
		return nil, &DecodeError{Stage: StageList, Err: err}
	}
	if raw == nil {
		return nil, &DecodeError{Stage: StageList, Err: errNull}
	}

	ids := make([]int, len(*raw))
	for i, id := range *raw {
		switch {
		case id == nil:
			return nil, &DecodeError{Stage: StageList, Err: fmt.Errorf("%w at index %d: null", errWrongFormat, i)}
		case *id < 0:
			return nil, &DecodeError{Stage: StageList, Err: fmt.Errorf("%w at index %d: %d", errNegativeID, i, *id)}
		}
		ids[i] = *id
	}
	return ids, nil
}
