// Package object implements a runtime-typed object model for heterogeneous
// node trees.
//
// # Type Tags
//
// Every value in the model carries a Tag identifying its concrete runtime
// type. Tags are allocated once per process from a monotonic counter and
// record a single parent tag, forming a single-inheritance hierarchy rooted
// at TagObject. Packages that define new node types allocate their tag in an
// init() function:
//
//	var TagSpan = object.RegisterType("trace.Span", object.TagObject)
//
//	type Span struct{ ... }
//
//	func (*Span) TypeTag() object.Tag { return TagSpan }
//
// RegisterType is idempotent and safe to call from any package's init():
// Go guarantees that a package's init runs after the init of every package
// it imports, so the registry is always populated before use, regardless of
// how independently built extensions are linked together.
//
// # Ancestry
//
// IsInstance walks the parent chain from a value's concrete tag toward the
// root. This is what lets generic machinery (such as the repr dispatch
// registry) treat unknown leaf types through a handler registered for one of
// their ancestors.
//
// # Containers
//
// Array, Map, and Shape are the built-in container kinds. All three are
// immutable: constructors copy the reference slice only, accessors hand out
// fresh slices, and "modifying" operations such as Array.Append or Map.Set
// return new instances that share the unchanged elements. Concurrent readers
// therefore never observe a partially built container.
//
// Map keys follow the handle semantics of the model: scalar keys (String,
// Int, Float, Bool) compare by value, every other object compares by
// identity. Custom key types must be comparable under Go's == (use pointer
// receivers).
//
// # Scalars
//
// String, Int, Float, and Bool box primitive values as objects. They are
// plain value types, so an interface holding one is itself the shared
// handle.
//
// # Object Lifetime
//
// An interface value of type Object is the shared handle to a node; many
// containers may hold the same node, and the garbage collector owns its
// lifetime. Nothing in this package mutates a node after construction.
package object
