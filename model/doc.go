// Package model provides a structured record type with a closed, per-type
// field set, commonly used as the element type of a collection.
//
// A [Schema] declares the field table once per record type; records built
// from it accept exactly the declared names:
//
//	user := model.NewSchema("User",
//	    model.Field{Name: "name", Default: ""},
//	    model.Field{Name: "age", Default: 0},
//	)
//
//	u := user.New()
//	u.Set("name", "Alice")
//	u.Get("name")       // "Alice", nil
//	u.Get("email")      // nil, ErrUndeclaredField
//
// Delete resets a field to its default without removing it from the
// declared set; Clear does the same for every field. Records render as
// JSON (and YAML) objects of their declared fields in declaration order,
// and resolve dotted path segments when held inside a collection.
package model
