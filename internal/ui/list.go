package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/desertthunder/marquee/internal/models"
)

var _ list.Item = groupItem{}

// groupItem wraps [models.Group] to implement [list.Item].
type groupItem struct {
	group models.Group
}

func (i groupItem) FilterValue() string { return i.group.Label() }
func (i groupItem) Title() string       { return i.group.Label() }
func (i groupItem) Description() string {
	return fmt.Sprintf("key %d • /%s", i.group.Index()+1, i.group)
}

// newGroupPicker builds the group list with current selected.
func newGroupPicker(current models.Group, width, height int) list.Model {
	groups := models.Groups()
	items := make([]list.Item, len(groups))
	for i, g := range groups {
		items[i] = groupItem{group: g}
	}

	picker := list.New(items, list.NewDefaultDelegate(), width, height)
	picker.Title = "Catalog Groups"
	picker.SetShowStatusBar(false)
	picker.SetFilteringEnabled(false)
	picker.SetShowHelp(false)
	if idx := current.Index(); idx >= 0 {
		picker.Select(idx)
	}
	return picker
}

// selectedGroup returns the highlighted group of picker.
func selectedGroup(picker list.Model) (models.Group, bool) {
	item, ok := picker.SelectedItem().(groupItem)
	if !ok {
		return "", false
	}
	return item.group, true
}
