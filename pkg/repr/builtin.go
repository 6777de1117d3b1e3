package repr

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/irkit-labs/irkit/pkg/object"
)

func init() {
	RegisterBuiltins(defaultRegistry)
}

// RegisterBuiltins installs the render handlers for the built-in container
// and scalar kinds into r. The default registry receives them at package
// init; call this to seed a custom registry.
func RegisterBuiltins(r *Registry) {
	r.Register(object.TagArray, printArray)
	r.Register(object.TagMap, printMap)
	r.Register(object.TagShape, printShape)
	r.Register(object.TagString, printString)
	r.Register(object.TagInt, printInt)
	r.Register(object.TagFloat, printFloat)
	r.Register(object.TagBool, printBool)
}

func printArray(p *Printer, o object.Object) error {
	a, ok := o.(*object.Array)
	if !ok {
		return fmt.Errorf("array handler: cannot render %s", tagName(object.TagOf(o)))
	}
	elems := a.Elements()
	if len(elems) == 0 {
		p.WriteString("[]")
		return nil
	}
	if p.Multiline() {
		p.WriteString("[")
		p.Newline()
		p.Indent()
		for i, el := range elems {
			if err := p.Print(el); err != nil {
				return err
			}
			if i < len(elems)-1 {
				p.WriteString(",")
			}
			p.Newline()
		}
		p.Dedent()
		p.WriteString("]")
		return nil
	}
	p.WriteString("[")
	for i, el := range elems {
		if i > 0 {
			p.WriteString(", ")
		}
		if err := p.Print(el); err != nil {
			return err
		}
	}
	p.WriteString("]")
	return nil
}

func printMap(p *Printer, o object.Object) error {
	m, ok := o.(*object.Map)
	if !ok {
		return fmt.Errorf("map handler: cannot render %s", tagName(object.TagOf(o)))
	}
	entries := m.Entries()
	if len(entries) == 0 {
		p.WriteString("{}")
		return nil
	}
	if p.Multiline() {
		p.WriteString("{")
		p.Newline()
		p.Indent()
		for i, e := range entries {
			if err := printMapEntry(p, e); err != nil {
				return err
			}
			if i < len(entries)-1 {
				p.WriteString(",")
			}
			p.Newline()
		}
		p.Dedent()
		p.WriteString("}")
		return nil
	}
	p.WriteString("{")
	for i, e := range entries {
		if i > 0 {
			p.WriteString(", ")
		}
		if err := printMapEntry(p, e); err != nil {
			return err
		}
	}
	p.WriteString("}")
	return nil
}

func printMapEntry(p *Printer, e object.Entry) error {
	// A key that is exactly a string renders as a quoted literal; any other
	// key type is a nested expression and recurses through dispatch.
	if s, ok := e.Key.(object.String); ok {
		p.WriteString(strconv.Quote(string(s)))
	} else if err := p.Print(e.Key); err != nil {
		return err
	}
	p.WriteString(": ")
	return p.Print(e.Value)
}

func printShape(p *Printer, o object.Object) error {
	s, ok := o.(*object.Shape)
	if !ok {
		return fmt.Errorf("shape handler: cannot render %s", tagName(object.TagOf(o)))
	}
	// Raw integer dims use the shape's own canonical form, never the
	// generic array path.
	p.WriteString(s.String())
	return nil
}

func printString(p *Printer, o object.Object) error {
	s, ok := o.(object.String)
	if !ok {
		return fmt.Errorf("string handler: cannot render %s", tagName(object.TagOf(o)))
	}
	p.WriteString(strconv.Quote(string(s)))
	return nil
}

func printInt(p *Printer, o object.Object) error {
	i, ok := o.(object.Int)
	if !ok {
		return fmt.Errorf("int handler: cannot render %s", tagName(object.TagOf(o)))
	}
	p.WriteString(strconv.FormatInt(int64(i), 10))
	return nil
}

func printFloat(p *Printer, o object.Object) error {
	f, ok := o.(object.Float)
	if !ok {
		return fmt.Errorf("float handler: cannot render %s", tagName(object.TagOf(o)))
	}
	p.WriteString(formatFloat(float64(f)))
	return nil
}

func printBool(p *Printer, o object.Object) error {
	b, ok := o.(object.Bool)
	if !ok {
		return fmt.Errorf("bool handler: cannot render %s", tagName(object.TagOf(o)))
	}
	p.WriteString(strconv.FormatBool(bool(b)))
	return nil
}

// formatFloat renders f in its shortest round-trip form, keeping a trailing
// ".0" on integral values so floats stay distinguishable from ints.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, +1):
		return "+inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
