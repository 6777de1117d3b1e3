package object

// Object is the interface implemented by every node in the model.
// An interface value of this type is the shared handle to the node.
type Object interface {
	// TypeTag returns the registered tag of the value's concrete type.
	TypeTag() Tag
}

// TagOf returns the tag of o, or TagInvalid for a nil object.
func TagOf(o Object) Tag {
	if o == nil {
		return TagInvalid
	}
	return o.TypeTag()
}

// IsInstance reports whether o's concrete type is ancestor or descends from
// it. A nil object is an instance of nothing.
func IsInstance(o Object, ancestor Tag) bool {
	return Isa(TagOf(o), ancestor)
}
