package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/fadilmartias/applify/internal/model"
	"github.com/tidwall/gjson"
)

var ErrUnparsableResponse = errors.New("model response is not a JSON object")

// UnparsableResponseError keeps the raw model answer for postmortems.
type UnparsableResponseError struct {
	Raw    string
	Reason string
}

func (e *UnparsableResponseError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnparsableResponse.Error(), e.Reason)
}

func (e *UnparsableResponseError) Is(target error) bool {
	return target == ErrUnparsableResponse
}

// ExtractDocumentSet decodes the model answer. The whole text is tried first;
// only if it is not valid JSON is the span from the first '{' to the last '}'
// tried, which recovers answers wrapped in prose or markdown fences. Valid JSON
// that is not an object is rejected outright.
func ExtractDocumentSet(raw string) (model.DocumentSet, error) {
	whole := strings.TrimSpace(raw)
	if whole != "" && gjson.Valid(whole) {
		parsed := gjson.Parse(whole)
		if !parsed.IsObject() {
			return nil, &UnparsableResponseError{Raw: raw, Reason: "answer is not a JSON object"}
		}
		return decodeObject(parsed), nil
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return nil, &UnparsableResponseError{Raw: raw, Reason: "no JSON object found"}
	}

	span := raw[start : end+1]
	if !gjson.Valid(span) {
		return nil, &UnparsableResponseError{Raw: raw, Reason: "embedded payload is not valid JSON"}
	}
	return decodeObject(gjson.Parse(span)), nil
}

func decodeObject(obj gjson.Result) model.DocumentSet {
	set := model.DocumentSet{}
	obj.ForEach(func(key, value gjson.Result) bool {
		set[key.String()] = decodeValue(value)
		return true
	})
	return set
}

// decodeValue keeps numbers as their literal text so large integers survive.
func decodeValue(value gjson.Result) any {
	switch {
	case value.IsObject():
		return map[string]any(decodeObject(value))
	case value.IsArray():
		list := []any{}
		value.ForEach(func(_, item gjson.Result) bool {
			list = append(list, decodeValue(item))
			return true
		})
		return list
	}

	switch value.Type {
	case gjson.True:
		return true
	case gjson.False:
		return false
	case gjson.Number:
		return json.Number(value.Raw)
	case gjson.String:
		return value.Str
	default:
		return nil
	}
}
