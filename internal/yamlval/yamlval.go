// Package yamlval decodes YAML documents into the object model. Documents are
// walked as yaml.Node trees so mapping entries keep their document order,
// which plain map unmarshalling would scramble.
package yamlval

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/irkit-labs/irkit/pkg/object"
)

// Decode parses a single YAML document into an object graph.
// Empty input and multi-document streams fail.
func Decode(data []byte) (object.Object, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty YAML input")
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := dec.Decode(&yaml.Node{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("expected a single YAML document")
	}

	return decodeNode(&doc)
}

// DecodeFile reads a YAML file and decodes its single document.
func DecodeFile(path string) (object.Object, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is an explicit user-supplied input file
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return Decode(data)
}

func decodeNode(n *yaml.Node) (object.Object, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return decodeNode(n.Content[0])

	case yaml.SequenceNode:
		elems := make([]object.Object, len(n.Content))
		for i, child := range n.Content {
			o, err := decodeNode(child)
			if err != nil {
				return nil, err
			}
			elems[i] = o
		}
		return object.NewArray(elems...), nil

	case yaml.MappingNode:
		// Content is a flat key/value list.
		entries := make([]object.Entry, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, err := decodeNode(n.Content[i])
			if err != nil {
				return nil, err
			}
			value, err := decodeNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			entries = append(entries, object.Entry{Key: key, Value: value})
		}
		return object.NewMap(entries...), nil

	case yaml.ScalarNode:
		return decodeScalar(n)

	case yaml.AliasNode:
		return decodeNode(n.Alias)

	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
	}
}

// decodeScalar maps a scalar by its resolved tag. Unrecognized tags fall
// back to String, matching YAML's plain-scalar resolution.
func decodeScalar(n *yaml.Node) (object.Object, error) {
	switch n.Tag {
	case "!!null":
		return nil, nil

	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid bool %q: %w", n.Line, n.Value, err)
		}
		return object.Bool(b), nil

	case "!!int":
		// Base 0 accepts decimal, 0x hex, and 0o octal forms.
		i, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid integer %q: %w", n.Line, n.Value, err)
		}
		return object.Int(i), nil

	case "!!float":
		switch strings.ToLower(n.Value) {
		case ".inf", "+.inf":
			return object.Float(math.Inf(1)), nil
		case "-.inf":
			return object.Float(math.Inf(-1)), nil
		case ".nan":
			return object.Float(math.NaN()), nil
		}
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid float %q: %w", n.Line, n.Value, err)
		}
		return object.Float(f), nil

	default:
		return object.String(n.Value), nil
	}
}
