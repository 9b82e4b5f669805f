package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/espalier/internal/presentation/graph"
	"github.com/aretw0/espalier/pkg/ui"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		menus    []ui.MenuInfo
		contains []string
	}{
		{
			name:  "Message Menu Shape",
			menus: []ui.MenuInfo{{ID: "counter", Kind: "message", Capacity: 190}},
			contains: []string{
				"counter[[\"counter <br/> 190 chars\"]]",
			},
		},
		{
			name:  "Modal Menu Shape",
			menus: []ui.MenuInfo{{ID: "feedback", Kind: "modal", Capacity: 100}},
			contains: []string{
				"feedback{{\"feedback <br/> 100 chars\"}}",
			},
		},
		{
			name: "Component Shapes And Rows",
			menus: []ui.MenuInfo{{
				ID:   "m",
				Kind: "message",
				Rows: [][]ui.ComponentInfo{
					{{Name: "go", Kind: "button"}, {Name: "docs", Kind: "link"}},
					{{Name: "pick", Kind: "select"}},
				},
			}},
			contains: []string{
				"m__go[\"go\"]",
				"m__docs([\"docs\"])",
				"m__pick[/\"pick\"/]",
				"m -. \"row 1\" .-> m__go",
				"m -. \"row 2\" .-> m__pick",
			},
		},
		{
			name: "ID Sanitization",
			menus: []ui.MenuInfo{{
				ID:   "list.my-fruits",
				Kind: "message",
				Rows: [][]ui.ComponentInfo{{{Name: "next", Kind: "button"}}},
			}},
			contains: []string{
				"list_my_fruits[[",
				"list_my_fruits__next[\"next\"]",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.menus, nil)
			if !strings.HasPrefix(got, "graph TD\n") {
				t.Errorf("missing header:\n%s", got)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("expected output to contain %q, got:\n%s", want, got)
				}
			}
		})
	}
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	menus := []ui.MenuInfo{{
		ID:   "list.fruits",
		Kind: "message",
		Rows: [][]ui.ComponentInfo{{{Name: "first", Kind: "button"}, {Name: "back", Kind: "button"}}},
	}}
	got := graph.GenerateMermaid(menus, &graph.Overlay{
		Disabled: []string{"list.fruits/first", "list.fruits/back", "list.fruits/first", "malformed"},
		Current:  "list.fruits",
	})

	for _, want := range []string{
		"classDef disabled",
		"class list_fruits__first disabled;",
		"class list_fruits__back disabled;",
		"class list_fruits current;",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, got)
		}
	}
	if strings.Count(got, "class list_fruits__first disabled;") != 1 {
		t.Error("disabled components should be styled once")
	}
}
