package repr

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"

	"github.com/irkit-labs/irkit/pkg/object"
)

// NullLiteral is the text form of an absent object.
const NullLiteral = "null"

const defaultIndentWidth = 2

// ErrCycle is returned when an object is encountered twice on the same
// recursive print path. Object graphs are expected to be acyclic.
var ErrCycle = errors.New("cycle detected in object graph")

// Printer accumulates the rendered text form of an object graph. A Printer
// is single-goroutine state; create one per rendering.
type Printer struct {
	registry    *Registry
	output      *bytes.Buffer
	depth       int
	atLineStart bool
	indentWidth int
	multiline   bool
	active      map[object.Object]struct{} // objects on the current recursion path
}

// New returns a printer backed by the default registry.
func New() *Printer { return NewWithRegistry(defaultRegistry) }

// NewWithRegistry returns a printer that dispatches through r.
func NewWithRegistry(r *Registry) *Printer {
	return &Printer{
		registry:    r,
		output:      &bytes.Buffer{},
		atLineStart: true,
		indentWidth: defaultIndentWidth,
		active:      make(map[object.Object]struct{}),
	}
}

// Sprint renders o with a fresh printer on the default registry.
func Sprint(o object.Object) (string, error) {
	return New().Sprint(o)
}

// Sprint renders o as a standalone string through the printer's registry and
// configuration. The printer is reset first, so prior output never leaks into
// the result; multiline and indent settings are kept.
func (p *Printer) Sprint(o object.Object) (string, error) {
	p.Reset()
	if err := p.Print(o); err != nil {
		return "", err
	}
	return p.String(), nil
}

// Print renders o into the printer's buffer. A nil object renders as the
// null literal. Any handler error aborts the whole call; the buffer
// contents are then unspecified and must be discarded.
func (p *Printer) Print(o object.Object) error {
	if o == nil {
		p.WriteString(NullLiteral)
		return nil
	}
	// Track comparable objects along the recursion path. Value kinds cannot
	// participate in a cycle, and non-comparable custom types are skipped
	// rather than made to panic on map insertion.
	if reflect.TypeOf(o).Comparable() {
		if _, onPath := p.active[o]; onPath {
			return fmt.Errorf("%w while printing %s", ErrCycle, tagName(object.TagOf(o)))
		}
		p.active[o] = struct{}{}
		defer delete(p.active, o)
	}
	return p.registry.Invoke(p, o)
}

// String returns the text accumulated so far.
func (p *Printer) String() string {
	return p.output.String()
}

// Reset clears the buffer and recursion state, keeping configuration.
func (p *Printer) Reset() {
	p.output.Reset()
	p.depth = 0
	p.atLineStart = true
	p.active = make(map[object.Object]struct{})
}

// SetMultiline switches the built-in container handlers between single-line
// and indented multi-line output.
func (p *Printer) SetMultiline(on bool) { p.multiline = on }

// Multiline reports whether multi-line container output is enabled.
func (p *Printer) Multiline() bool { return p.multiline }

// SetIndentWidth sets the number of spaces per indentation level.
func (p *Printer) SetIndentWidth(n int) {
	if n >= 0 {
		p.indentWidth = n
	}
}

// WriteString appends s, applying pending indentation at the start of a
// line.
func (p *Printer) WriteString(s string) {
	if s == "" {
		return
	}
	if p.atLineStart && s[0] != '\n' {
		p.writeIndent()
	}
	p.output.WriteString(s)
	p.atLineStart = false
}

// Printf appends formatted text.
func (p *Printer) Printf(format string, args ...any) {
	p.WriteString(fmt.Sprintf(format, args...))
}

// Newline ends the current line.
func (p *Printer) Newline() {
	p.output.WriteByte('\n')
	p.atLineStart = true
}

// Indent increases the indentation level for subsequent lines.
func (p *Printer) Indent() { p.depth++ }

// Dedent decreases the indentation level.
func (p *Printer) Dedent() {
	if p.depth > 0 {
		p.depth--
	}
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.depth*p.indentWidth; i++ {
		p.output.WriteByte(' ')
	}
	p.atLineStart = false
}
