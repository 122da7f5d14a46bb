// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package agestats

import (
	"fmt"
	"math"

	"github.com/tidwall/gjson"
)

// parseObject validates that body is a single JSON object.
func parseObject(e Endpoint, body []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, &DecodeError{Endpoint: e, Reason: "response is not valid JSON"}
	}

	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return gjson.Result{}, &DecodeError{Endpoint: e, Reason: "response is not a JSON object"}
	}

	return root, nil
}

// decodeAge reads {"age": ...} where age is either a string or a number.
// An optional string "name" field is carried along.
func decodeAge(e Endpoint, body []byte) (AgeResponse, error) {
	root, err := parseObject(e, body)
	if err != nil {
		return AgeResponse{}, err
	}

	age := root.Get("age")
	switch {
	case !age.Exists():
		return AgeResponse{}, &DecodeError{Endpoint: e, Reason: `missing field "age"`}

	case age.Type != gjson.String && age.Type != gjson.Number:
		return AgeResponse{}, &DecodeError{
			Endpoint: e,
			Reason:   fmt.Sprintf(`field "age" must be a string or a number, not %s`, age.Type),
		}
	}

	response := AgeResponse{Age: age.String()}
	if name := root.Get("name"); name.Type == gjson.String {
		response.Name = name.String()
	}

	return response, nil
}

// decodeStats reads an object of name to count pairs.  Entries are returned in
// document order.  Every count must be an integral JSON number.  A duplicated
// name keeps the position of its first occurrence and the count of its last.
func decodeStats(e Endpoint, body []byte) ([]Stat, error) {
	root, err := parseObject(e, body)
	if err != nil {
		return nil, err
	}

	var (
		stats    = []Stat{}
		position = make(map[string]int)
		reason   string
	)

	root.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.Number {
			reason = fmt.Sprintf("request count for %q must be a number, not %s", key.String(), value.Type)
			return false
		}

		if value.Num != math.Trunc(value.Num) || math.Abs(value.Num) > math.MaxInt32 {
			reason = fmt.Sprintf("request count for %q must be an integer, not %s", key.String(), value.Raw)
			return false
		}

		name, requests := key.String(), int(value.Int())
		if i, seen := position[name]; seen {
			stats[i].Requests = requests
			return true
		}

		position[name] = len(stats)
		stats = append(stats, Stat{
			Name:     name,
			Requests: requests,
		})

		return true
	})

	if len(reason) > 0 {
		return nil, &DecodeError{Endpoint: e, Reason: reason}
	}

	return stats, nil
}
