package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/espalier/pkg/ui"
)

// Overlay contains rendered state data to visualize on the graph.
type Overlay struct {
	// Disabled lists "menuId/componentName" pairs rendered disabled.
	Disabled []string
	// Current is the menu being looked at.
	Current string
}

// GenerateMermaid produces a Mermaid flowchart of menus and their rows.
// It applies semantic styling:
// - Message menu: [[Subroutine]]
// - Modal menu: {{Hexagon}}
// - Button: [Rectangle]
// - Link: ([Stadium])
// - Select: [/Parallelogram/]
// - Text input: [\Parallelogram\]
// Rows become dotted edges labeled with their index.
func GenerateMermaid(menus []ui.MenuInfo, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, menu := range menus {
		safeID := sanitizeMermaidID(menu.ID)

		opener, closer := "[[", "]]"
		if menu.Kind == "modal" {
			opener, closer = "{{", "}}"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s <br/> %d chars\"%s\n", safeID, opener, menu.ID, menu.Capacity, closer))

		for i, row := range menu.Rows {
			for _, c := range row {
				cid := componentID(menu.ID, c.Name)
				opener, closer := componentShape(c.Kind)
				sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", cid, opener, c.Name, closer))
				sb.WriteString(fmt.Sprintf("    %s -. \"row %d\" .-> %s\n", safeID, i+1, cid))
			}
		}
	}

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef disabled fill:#eeeeee,stroke:#9e9e9e,stroke-dasharray:3,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, qualified := range overlay.Disabled {
			menuID, name, ok := strings.Cut(qualified, "/")
			if !ok {
				continue
			}
			cid := componentID(menuID, name)
			if !seen[cid] {
				seen[cid] = true
				sb.WriteString(fmt.Sprintf("    class %s disabled;\n", cid))
			}
		}

		if overlay.Current != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.Current)))
		}
	}

	return sb.String()
}

func componentShape(kind string) (string, string) {
	switch kind {
	case "link":
		return "([", "])"
	case "select":
		return "[/", "/]"
	case "text_input":
		return "[\\", "\\]"
	default:
		return "[", "]"
	}
}

func componentID(menuID, name string) string {
	return sanitizeMermaidID(menuID) + "__" + sanitizeMermaidID(name)
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
