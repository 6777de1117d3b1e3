package object

import (
	"fmt"
	"sort"
	"sync"
)

// Tag identifies a concrete runtime type. Tags are allocated from a monotonic
// per-process counter starting at 1 and are never reused.
type Tag int32

// TagInvalid is the zero Tag. It is never assigned to a type and serves as
// the parent of the root type.
const TagInvalid Tag = 0

// TypeInfo describes one registered type, as reported by Types.
type TypeInfo struct {
	Tag    Tag
	Name   string
	Parent Tag
}

type typeEntry struct {
	name   string
	parent Tag
}

var (
	typesMu     sync.RWMutex
	nextTag     Tag
	typesByTag  = make(map[Tag]typeEntry)
	typesByName = make(map[string]Tag)
)

// Built-in type tags, allocated when this package initializes. Every custom
// hierarchy ultimately roots at TagObject.
var (
	TagObject = RegisterType("object.Object", TagInvalid)
	TagArray  = RegisterType("object.Array", TagObject)
	TagMap    = RegisterType("object.Map", TagObject)
	TagShape  = RegisterType("object.Shape", TagObject)
	TagString = RegisterType("object.String", TagObject)
	TagInt    = RegisterType("object.Int", TagObject)
	TagFloat  = RegisterType("object.Float", TagObject)
	TagBool   = RegisterType("object.Bool", TagObject)
)

// RegisterType allocates the tag for a named type under the given parent.
// Call it from init() functions (or package-level var initializers) in the
// packages that define node types.
//
// Registration is idempotent: the same name always yields the same tag, so
// repeated registration from independently initialized packages is safe.
// Registering an existing name with a different parent, or registering under
// a parent tag that has never been allocated, panics — both indicate a
// defective registration, the same contract as database/sql.Register.
func RegisterType(name string, parent Tag) Tag {
	typesMu.Lock()
	defer typesMu.Unlock()

	if tag, ok := typesByName[name]; ok {
		if typesByTag[tag].parent != parent {
			panic(fmt.Sprintf("object: type %q re-registered with a different parent", name))
		}
		return tag
	}
	if parent != TagInvalid {
		if _, ok := typesByTag[parent]; !ok {
			panic(fmt.Sprintf("object: type %q registered under unknown parent tag %d", name, parent))
		}
	}

	nextTag++
	tag := nextTag
	typesByTag[tag] = typeEntry{name: name, parent: parent}
	typesByName[name] = tag
	return tag
}

// NameOf returns the registered name of a tag.
func NameOf(tag Tag) (string, error) {
	typesMu.RLock()
	defer typesMu.RUnlock()
	e, ok := typesByTag[tag]
	if !ok {
		return "", fmt.Errorf("tag %d: %w", tag, ErrNotRegistered)
	}
	return e.name, nil
}

// ParentOf returns the immediate base tag of a tag. The root type reports
// TagInvalid.
func ParentOf(tag Tag) (Tag, error) {
	typesMu.RLock()
	defer typesMu.RUnlock()
	e, ok := typesByTag[tag]
	if !ok {
		return TagInvalid, fmt.Errorf("tag %d: %w", tag, ErrNotRegistered)
	}
	return e.parent, nil
}

// TagByName returns the tag registered for name.
func TagByName(name string) (Tag, bool) {
	typesMu.RLock()
	defer typesMu.RUnlock()
	tag, ok := typesByName[name]
	return tag, ok
}

// Isa reports whether tag is ancestor or descends from it, walking the
// parent chain toward the root. A tag is an instance of itself. TagInvalid
// is an instance of nothing.
func Isa(tag, ancestor Tag) bool {
	if tag == TagInvalid || ancestor == TagInvalid {
		return false
	}
	typesMu.RLock()
	defer typesMu.RUnlock()
	for t := tag; t != TagInvalid; {
		if t == ancestor {
			return true
		}
		e, ok := typesByTag[t]
		if !ok {
			return false
		}
		t = e.parent
	}
	return false
}

// Types returns all registered types sorted by tag. The slice is a copy.
func Types() []TypeInfo {
	typesMu.RLock()
	defer typesMu.RUnlock()
	infos := make([]TypeInfo, 0, len(typesByTag))
	for tag, e := range typesByTag {
		infos = append(infos, TypeInfo{Tag: tag, Name: e.name, Parent: e.parent})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Tag < infos[j].Tag })
	return infos
}
