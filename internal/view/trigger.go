package view

import (
	"fmt"
	"io"
)

// Trigger is the header control showing the live item count.
type Trigger struct {
	store CartStore
}

type TriggerModel struct {
	Count        int  `json:"itemCount"`
	BadgeVisible bool `json:"badgeVisible"`
	Open         bool `json:"isOpen"`
}

func NewTrigger(store CartStore) *Trigger {
	return &Trigger{store: store}
}

func (t *Trigger) Model() TriggerModel {
	state := t.store.State()
	count := state.ItemCount()

	return TriggerModel{
		Count:        count,
		BadgeVisible: count > 0,
		Open:         state.IsOpen,
	}
}

// Click toggles the drawer, so a second click closes it.
func (t *Trigger) Click() {
	t.store.Toggle()
}

func (t *Trigger) Render(w io.Writer) error {
	if err := templates.ExecuteTemplate(w, "trigger.html.tmpl", t.Model()); err != nil {
		return fmt.Errorf("templates.ExecuteTemplate: %w", err)
	}
	return nil
}
