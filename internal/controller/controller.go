// Package controller wires a model to a view. It owns the subscription and
// the gesture bindings and nothing else.
package controller

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/model"
)

// Renderer is the part of the view the model's changes are pushed to.
type Renderer interface {
	Render(items []model.Item)
}

// Gestures is the part of the view that reports user intent.
type Gestures interface {
	BindAddItem(func(text string) error)
	BindEditItem(func(id int, text string) error)
	BindDeleteItem(func(id int) error)
	BindToggleItem(func(id int) error)
}

// View is everything the controller needs from a view.
type View interface {
	Renderer
	Gestures
}

type Controller struct {
	model *model.Model
	view  View
	log   *log.Logger
}

// New subscribes to m, binds every gesture of v to m and renders the list
// m already holds.
func New(m *model.Model, v View, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	c := &Controller{model: m, view: v, log: logger}

	m.Subscribe(c.onListChanged)
	v.BindAddItem(c.handleAdd)
	v.BindEditItem(c.handleEdit)
	v.BindDeleteItem(c.handleDelete)
	v.BindToggleItem(c.handleToggle)

	c.onListChanged(m.Items())
	return c
}

func (c *Controller) onListChanged(items []model.Item) {
	c.view.Render(items)
}

func (c *Controller) handleAdd(text string) error {
	id, err := c.model.Add(text)
	c.log.Debug("add", "id", id, "err", err)
	return err
}

func (c *Controller) handleEdit(id int, text string) error {
	err := c.model.Edit(id, text)
	c.log.Debug("edit", "id", id, "err", err)
	return err
}

func (c *Controller) handleDelete(id int) error {
	err := c.model.Delete(id)
	c.log.Debug("delete", "id", id, "err", err)
	return err
}

func (c *Controller) handleToggle(id int) error {
	err := c.model.Toggle(id)
	c.log.Debug("toggle", "id", id, "err", err)
	return err
}
