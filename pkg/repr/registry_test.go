package repr_test

import (
	"sync"
	"testing"

	"github.com/irkit-labs/irkit/pkg/object"
	"github.com/irkit-labs/irkit/pkg/repr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A three-level hierarchy for dispatch tests: Node -> Literal -> IntLiteral.
var (
	tagNode       = object.RegisterType("reprtest.Node", object.TagObject)
	tagLiteral    = object.RegisterType("reprtest.Literal", tagNode)
	tagIntLiteral = object.RegisterType("reprtest.IntLiteral", tagLiteral)
)

type intLiteral struct {
	value int64
}

func (*intLiteral) TypeTag() object.Tag { return tagIntLiteral }

func TestInvokeExactMatch(t *testing.T) {
	reg := repr.NewRegistry()
	lit := &intLiteral{value: 7}

	calls := 0
	var received object.Object
	reg.Register(tagIntLiteral, func(p *repr.Printer, o object.Object) error {
		calls++
		received = o
		p.Printf("%d", o.(*intLiteral).value)
		return nil
	})

	p := repr.NewWithRegistry(reg)
	require.NoError(t, p.Print(lit))

	assert.Equal(t, 1, calls, "handler should run exactly once")
	assert.Same(t, lit, received, "handler should receive the original object")
	assert.Equal(t, "7", p.String())
}

func TestInvokeAncestorFallback(t *testing.T) {
	reg := repr.NewRegistry()
	lit := &intLiteral{value: 3}

	// Only the base of the chain has a handler; the concrete type is two
	// levels below it.
	var received object.Object
	reg.Register(tagNode, func(p *repr.Printer, o object.Object) error {
		received = o
		p.WriteString("<node>")
		return nil
	})

	p := repr.NewWithRegistry(reg)
	require.NoError(t, p.Print(lit))

	assert.Same(t, lit, received, "fallback handler should receive the original object, not an ancestor view")
	assert.Equal(t, "<node>", p.String())
}

func TestInvokeMostSpecificWins(t *testing.T) {
	reg := repr.NewRegistry()
	reg.Register(tagNode, func(p *repr.Printer, _ object.Object) error {
		p.WriteString("<node>")
		return nil
	})
	reg.Register(tagLiteral, func(p *repr.Printer, _ object.Object) error {
		p.WriteString("<literal>")
		return nil
	})

	p := repr.NewWithRegistry(reg)
	require.NoError(t, p.Print(&intLiteral{}))

	assert.Equal(t, "<literal>", p.String(), "the nearest registered ancestor should win")
}

func TestInvokeNoHandler(t *testing.T) {
	reg := repr.NewRegistry()

	p := repr.NewWithRegistry(reg)
	err := p.Print(&intLiteral{})

	require.ErrorIs(t, err, repr.ErrNoHandler)
	assert.ErrorContains(t, err, "reprtest.IntLiteral", "the error should name the concrete type")
}

func TestRegisterLastWriteWins(t *testing.T) {
	reg := repr.NewRegistry()
	reg.Register(tagIntLiteral, func(p *repr.Printer, _ object.Object) error {
		p.WriteString("first")
		return nil
	})
	reg.Register(tagIntLiteral, func(p *repr.Printer, _ object.Object) error {
		p.WriteString("second")
		return nil
	})

	p := repr.NewWithRegistry(reg)
	require.NoError(t, p.Print(&intLiteral{}))
	assert.Equal(t, "second", p.String())
}

func TestRegisterNilRemoves(t *testing.T) {
	reg := repr.NewRegistry()
	reg.Register(tagNode, func(p *repr.Printer, _ object.Object) error {
		p.WriteString("<node>")
		return nil
	})
	reg.Register(tagIntLiteral, func(p *repr.Printer, _ object.Object) error {
		p.WriteString("<int>")
		return nil
	})
	require.True(t, reg.Handles(tagIntLiteral))

	reg.Register(tagIntLiteral, nil)
	assert.False(t, reg.Handles(tagIntLiteral))

	// Dispatch falls back to the remaining ancestor handler.
	p := repr.NewWithRegistry(reg)
	require.NoError(t, p.Print(&intLiteral{}))
	assert.Equal(t, "<node>", p.String())
}

func TestRegisterInvalidatesResolvedFallback(t *testing.T) {
	reg := repr.NewRegistry()
	reg.Register(tagNode, func(p *repr.Printer, _ object.Object) error {
		p.WriteString("<node>")
		return nil
	})

	// First dispatch memoizes the fallback for the concrete tag.
	p := repr.NewWithRegistry(reg)
	require.NoError(t, p.Print(&intLiteral{}))
	require.Equal(t, "<node>", p.String())

	// A more specific registration must take effect on the next dispatch.
	reg.Register(tagIntLiteral, func(p *repr.Printer, _ object.Object) error {
		p.WriteString("<int>")
		return nil
	})

	p.Reset()
	require.NoError(t, p.Print(&intLiteral{}))
	assert.Equal(t, "<int>", p.String())
}

func TestClearAndRegisterBuiltins(t *testing.T) {
	reg := repr.NewRegistry()
	repr.RegisterBuiltins(reg)
	require.True(t, reg.Handles(object.TagArray))
	require.NotZero(t, reg.Count())

	reg.Clear()
	assert.Zero(t, reg.Count())
	assert.False(t, reg.Handles(object.TagArray))

	repr.RegisterBuiltins(reg)
	p := repr.NewWithRegistry(reg)
	require.NoError(t, p.Print(object.NewArray(object.Int(1))))
	assert.Equal(t, "[1]", p.String())
}

func TestConcurrentPrints(t *testing.T) {
	// Distinct printers over a shared object graph and a shared registry.
	shared := object.NewMap(
		object.Entry{Key: object.String("xs"), Value: object.NewArray(object.Int(1), object.Int(2))},
		object.Entry{Key: object.String("dims"), Value: object.NewShape(3, 4)},
	)
	want, err := repr.Sprint(shared)
	require.NoError(t, err)

	const numGoroutines = 50
	var wg sync.WaitGroup
	outs := make([]string, numGoroutines)
	errs := make([]error, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			outs[idx], errs[idx] = repr.Sprint(shared)
		}(i)
	}
	wg.Wait()

	for i := 0; i < numGoroutines; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, want, outs[i])
	}
}
