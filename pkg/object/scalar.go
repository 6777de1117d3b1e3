package object

// Scalar kinds box primitive values as objects. They are plain value types
// in the manner of Starlark's value kinds: comparable under ==, so they work
// directly as by-value Map keys.

// String is a text scalar.
type String string

// TypeTag implements Object.
func (String) TypeTag() Tag { return TagString }

// Int is a 64-bit integer scalar.
type Int int64

// TypeTag implements Object.
func (Int) TypeTag() Tag { return TagInt }

// Float is a 64-bit floating point scalar.
type Float float64

// TypeTag implements Object.
func (Float) TypeTag() Tag { return TagFloat }

// Bool is a boolean scalar.
type Bool bool

// TypeTag implements Object.
func (Bool) TypeTag() Tag { return TagBool }
