// Package value implements the schema-free JSON values carried in menu state.
//
// A Value is a closed union of null, bool, number, string, list and object.
// Objects keep insertion order so that the canonical text of a state
// document is stable across encode and decode:
//
//	obj := value.ObjectOf("page", 2, "filter", "open")
//	text := value.Marshal(value.FromObject(obj)) // {"page":2,"filter":"open"}
//
//	back, _ := value.ParseObject(text)
//	obj.Equal(back) // true
//
// Conversion from Go values goes through Of, which switches on a fixed set of
// types instead of using reflection. Reading goes through typed accessors
// such as AsInt and AsString that report whether the variant matched.
package value
