// Package listview renders the shopping list and routes interactions on
// the rendered rows back into the list store through one delegated handler.
package listview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/idilsaglam/shelf/internal/liststore"
	"github.com/idilsaglam/shelf/internal/model"
	"github.com/idilsaglam/shelf/internal/ui"
)

// Control identifies the kind of interactive element in a row.
type Control int

const (
	ControlNone Control = iota
	ControlComplete
	ControlRemove
)

func (c Control) String() string {
	switch c {
	case ControlComplete:
		return "complete"
	case ControlRemove:
		return "remove"
	}
	return "none"
}

// Element is an interactive piece of a rendered row. Value carries the
// item id the way a form control carries its value attribute.
type Element struct {
	Control Control
	Value   string
	Label   string
	Checked bool
}

// Row is one rendered entry.
type Row struct {
	Name     string
	Complete Element
	Remove   Element
}

// Render is pure: the same items always produce the same rows.
func Render(items []model.Item) []Row {
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		id := strconv.FormatInt(it.ID, 10)
		rows = append(rows, Row{
			Name:     it.Name,
			Complete: Element{Control: ControlComplete, Value: id, Checked: it.Complete},
			Remove:   Element{Control: ControlRemove, Value: id, Label: "Remove " + it.Name},
		})
	}
	return rows
}

// View keeps the latest rendering of a store and owns its click handler.
type View struct {
	store *liststore.Store
	rows  []Row
	log   zerolog.Logger

	renders int
}

// New renders s once and re-renders on every change notification.
// Create the view before attaching persistence so rendering runs first.
func New(s *liststore.Store, log zerolog.Logger) *View {
	v := &View{store: s, log: log}
	v.render()
	s.Subscribe(v.render)
	return v
}

func (v *View) render() {
	v.rows = Render(v.store.Items())
	v.renders++
}

func (v *View) Rows() []Row { return v.rows }

// Renders counts renderings, including the initial one.
func (v *View) Renders() int { return v.renders }

// HandleClick is the single delegated handler for every row. It looks at
// which element originated the click and resolves the item id from it.
func (v *View) HandleClick(target Element) {
	if target.Control == ControlNone {
		return
	}
	id, err := strconv.ParseInt(strings.TrimSpace(target.Value), 10, 64)
	if err != nil {
		v.log.Debug().Str("value", target.Value).Msg("click on element without item id")
		return
	}
	switch target.Control {
	case ControlRemove:
		v.store.Remove(id)
	case ControlComplete:
		// Unknown ids are already logged by the store.
		_ = v.store.ToggleComplete(id)
	}
}

// Line renders a single row as text: checkbox, name, removal control.
func Line(r Row) string {
	t := ui.Current()
	box := t.Muted.Render(t.BoxUnchecked)
	name := r.Name
	if r.Complete.Checked {
		box = t.Success.Render(t.BoxChecked)
		name = t.Done.Render(name)
	}
	return fmt.Sprintf("%s %s %s", box, name, t.Muted.Render(t.SymRemove))
}

// String renders every row, one per line.
func (v *View) String() string {
	if len(v.rows) == 0 {
		return ui.Current().Muted.Render("no items")
	}
	lines := make([]string, 0, len(v.rows))
	for _, r := range v.rows {
		lines = append(lines, Line(r))
	}
	return strings.Join(lines, "\n")
}
