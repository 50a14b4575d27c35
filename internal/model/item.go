// Package model owns the to-do list: every mutation goes through a Model,
// which writes the whole list to its persistence slot and then notifies a
// single listener.
package model

import "fmt"

// Item is the domain model for a todo entry. Text is persisted as "todo".
type Item struct {
	ID   int    `json:"id"`
	Text string `json:"todo"`
	Done bool   `json:"done"`
}

// Label is the "{id}. {text}" form shown to users.
func (i Item) Label() string {
	return fmt.Sprintf("%d. %s", i.ID, i.Text)
}

// Listener receives the full list after every committed mutation.
type Listener func(items []Item)
