package model

import (
	"fmt"
	"strings"
)

// IDPolicy decides the id of a newly added item.
type IDPolicy int

const (
	// LengthIDs assigns len(items)+1. Ids of deleted items come back, and
	// after deleting from the middle of the list the new id can equal a
	// live one.
	LengthIDs IDPolicy = iota
	// CounterIDs assigns from a counter persisted next to the list.
	// An id is never handed out twice.
	CounterIDs
	// NextFreeIDs starts at len(items)+1 and moves past any live id, so
	// ids stay distinct without a stored counter.
	NextFreeIDs
)

func (p IDPolicy) String() string {
	switch p {
	case CounterIDs:
		return "counter"
	case NextFreeIDs:
		return "next-free"
	default:
		return "length"
	}
}

// ParseIDPolicy accepts "length" (or ""), "counter" and "next-free".
func ParseIDPolicy(s string) (IDPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "length":
		return LengthIDs, nil
	case "counter":
		return CounterIDs, nil
	case "next-free":
		return NextFreeIDs, nil
	}
	return LengthIDs, fmt.Errorf("unknown id policy %q (want length, counter or next-free)", s)
}

func lengthID(items []Item) int { return len(items) + 1 }

func nextFreeID(items []Item) int {
	id := lengthID(items)
	for hasID(items, id) {
		id++
	}
	return id
}

func maxID(items []Item) int {
	m := 0
	for _, it := range items {
		if it.ID > m {
			m = it.ID
		}
	}
	return m
}

func hasID(items []Item, id int) bool {
	for _, it := range items {
		if it.ID == id {
			return true
		}
	}
	return false
}
