package ui

import "github.com/aretw0/espalier/pkg/domain"

// ComponentInfo describes a component for inspection.
type ComponentInfo struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Space       int    `json:"space"`
	MaxIDLength int    `json:"max_id_length"`
}

// MenuInfo describes the static layout of a menu.
type MenuInfo struct {
	ID       string            `json:"id"`
	Kind     string            `json:"kind"`
	Capacity int               `json:"capacity"`
	Rows     [][]ComponentInfo `json:"rows"`
}

// Describe reports the layout of m. Modal inputs are listed one per row,
// as they are rendered.
func Describe(m Menu) MenuInfo {
	switch menu := m.(type) {
	case *MessageMenu:
		info := MenuInfo{ID: menu.ID(), Kind: "message", Capacity: menu.Capacity()}
		for _, row := range menu.rows {
			out := make([]ComponentInfo, 0, len(row.components))
			for _, c := range row.components {
				out = append(out, describeComponent(c))
			}
			info.Rows = append(info.Rows, out)
		}
		return info
	case *ModalMenu:
		info := MenuInfo{ID: menu.ID(), Kind: "modal", Capacity: menu.Capacity()}
		for _, in := range menu.inputs {
			info.Rows = append(info.Rows, []ComponentInfo{describeComponent(in)})
		}
		return info
	}
	return MenuInfo{ID: m.ID(), Kind: "unknown"}
}

func describeComponent(c Component) ComponentInfo {
	kind := "custom"
	switch c.(type) {
	case *Button:
		kind = domain.WidgetButton.String()
	case *Link:
		kind = domain.WidgetLink.String()
	case *Select:
		kind = domain.WidgetSelect.String()
	case *TextInput:
		kind = domain.WidgetTextInput.String()
	}
	return ComponentInfo{
		Name:        c.Name(),
		Kind:        kind,
		Space:       c.RequiredSpace(),
		MaxIDLength: c.MaxIDLength(),
	}
}
