package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLifecycleHooks_Merge(t *testing.T) {
	var got []string
	a := LifecycleHooks{
		OnRender: func(_ context.Context, e *RenderEvent) { got = append(got, "a:"+e.MenuID) },
	}
	b := LifecycleHooks{
		OnRender: func(_ context.Context, e *RenderEvent) { got = append(got, "b:"+e.MenuID) },
		OnDrop:   func(_ context.Context, e *DropEvent) { got = append(got, "drop:"+e.CustomID) },
	}

	m := a.Merge(b)
	m.OnRender(context.Background(), &RenderEvent{EventBase: NewEventBase(EventRender, "menu")})
	m.OnDrop(context.Background(), &DropEvent{CustomID: "x:y:"})

	assert.Equal(t, []string{"a:menu", "b:menu", "drop:x:y:"}, got)
	assert.Nil(t, m.OnError)
}

func TestInteraction_MenuIDAndField(t *testing.T) {
	in := &Interaction{
		CustomID: "list.test:next:{\"page\"",
		Fields:   map[string]string{"comment:}": "hello"},
	}
	assert.Equal(t, "list.test", in.MenuID())

	text, ok := in.Field("comment")
	assert.True(t, ok)
	assert.Equal(t, "hello", text)

	_, ok = in.Field("other")
	assert.False(t, ok)
}

func TestMessage_CustomIDs(t *testing.T) {
	m := &Message{Rows: [][]Widget{
		{{Kind: WidgetButton, CustomID: "m:a:"}, {Kind: WidgetLink, URL: "https://example.com"}},
		{{Kind: WidgetSelect, CustomID: "m:s:"}},
	}}
	assert.Equal(t, []string{"m:a:", "m:s:"}, m.CustomIDs())
}
