// Package repr renders object graphs to their text form through an open
// dispatch registry.
//
// # Dispatch
//
// A Registry maps type tags to HandlerFunc values. Invoke resolves a
// handler for an object's concrete tag, falling back along the ancestor
// chain from most to least specific; whichever handler is chosen receives
// the original object, so a base-type handler can still inspect the
// concrete value. Types defined in independently built packages register
// their handler from init():
//
//	func init() {
//		repr.Register(trace.TagSpan, printSpan)
//	}
//
// Registration is last-write-wins, which lets tests and embedders override
// a built-in rendering.
//
// # Printing
//
// A Printer accumulates text in an append-only buffer. Print renders a nil
// object as the null literal and dispatches everything else; handlers
// recurse into children via p.Print and build text with WriteString,
// Printf, Newline, Indent, and Dedent. Sprint is the one-shot form:
//
//	text, err := repr.Sprint(object.NewArray(object.Int(1), object.Int(2)))
//	// text == "[1, 2]"
//
// Built-in handlers for Array, Map, Shape, and the scalar kinds are
// installed into the default registry when this package initializes.
//
// # Failure
//
// A handler error anywhere in the recursion aborts the whole Print call.
// The buffer contents are then unspecified; callers must discard them
// rather than use a partial rendering.
package repr
