// Package schema validates menu state documents decoded from component
// identifiers.
//
// Identifiers come back from the client, so a menu that relies on the shape
// of its state can declare a Schema and have decoded states checked before
// any handler runs.
//
//	s := schema.Schema{
//	    "page":  schema.Int(),
//	    "query": schema.Optional(schema.String()),
//	    "tags":  schema.List(schema.String()),
//	}
//
//	if err := schema.Validate(s, state.Data()); err != nil {
//	    // reject the interaction
//	}
//
// Schemas can also be parsed from type strings, as the CLI does:
//
//	s, err := schema.ParseTypeMap(map[string]string{"page": "int", "query": "string?"})
//
// Custom validators cover domain rules:
//
//	positive := schema.Custom("positive_int", func(v value.Value) error {
//	    n, ok := v.AsInt()
//	    if !ok || n <= 0 {
//	        return fmt.Errorf("must be a positive integer")
//	    }
//	    return nil
//	})
package schema
