package quill

import (
	"fmt"
	"strings"
)

// TypeKind classifies a TypeRef for argument routing decisions.
type TypeKind int

const (
	TypeValue TypeKind = iota // plain data type, body candidate
	TypeInterface             // named interface type
	TypeMap
	TypeURL      // call-time override of the request target
	TypeOptions  // per-call request options, never part of the body
	TypeContext  // context.Context, always excluded from the body
	TypeVariable // open type parameter, bound through inheritance
)

// String returns the string representation of the type kind
func (k TypeKind) String() string {
	switch k {
	case TypeValue:
		return "value"
	case TypeInterface:
		return "interface"
	case TypeMap:
		return "map"
	case TypeURL:
		return "url"
	case TypeOptions:
		return "options"
	case TypeContext:
		return "context"
	case TypeVariable:
		return "variable"
	default:
		return "unknown"
	}
}

// ParseTypeKind converts a string to a TypeKind
func ParseTypeKind(s string) (TypeKind, error) {
	switch s {
	case "value":
		return TypeValue, nil
	case "interface":
		return TypeInterface, nil
	case "map":
		return TypeMap, nil
	case "url":
		return TypeURL, nil
	case "options":
		return TypeOptions, nil
	case "context":
		return TypeContext, nil
	case "variable":
		return TypeVariable, nil
	default:
		return 0, fmt.Errorf("unknown type kind: %s", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (k TypeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *TypeKind) UnmarshalText(text []byte) error {
	parsed, err := ParseTypeKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// TypeRef is a structural description of a type, rich enough for
// return-type narrowing and map key validation without any runtime
// type inspection.
type TypeRef struct {
	Name    string     `json:"name"`
	Kind    TypeKind   `json:"kind,omitempty"`
	Key     *TypeRef   `json:"key,omitempty"`     // map key type, nil when not declared
	Elem    *TypeRef   `json:"elem,omitempty"`    // map value type
	Extends []*TypeRef `json:"extends,omitempty"` // declared ancestors, nearest first
}

// String returns the type name, with map types rendered structurally.
func (t *TypeRef) String() string {
	if t == nil {
		return "<nil>"
	}
	if t.Kind == TypeMap && t.Name == "" {
		key, elem := "?", "?"
		if t.Key != nil {
			key = t.Key.String()
		}
		if t.Elem != nil {
			elem = t.Elem.String()
		}
		return fmt.Sprintf("map[%s]%s", key, elem)
	}
	return t.Name
}

// AssignableTo reports whether t can stand in for other: either the
// same named type, or other appears somewhere in t's ancestor chain.
func (t *TypeRef) AssignableTo(other *TypeRef) bool {
	if t == nil || other == nil {
		return false
	}
	if t.Name == other.Name {
		return true
	}
	for _, parent := range t.Extends {
		if parent.AssignableTo(other) {
			return true
		}
	}
	return false
}

// NarrowerThan reports whether t is a strict covariant narrowing of
// other. A type is never narrower than itself.
func (t *TypeRef) NarrowerThan(other *TypeRef) bool {
	if t == nil || other == nil {
		return false
	}
	return t.Name != other.Name && t.AssignableTo(other)
}

// KeyType returns the declared map key type. For a raw map type with
// no explicit key, the first ancestor that fixes one supplies it.
// Returns nil when the key type cannot be determined.
func (t *TypeRef) KeyType() *TypeRef {
	if t == nil {
		return nil
	}
	if t.Key != nil {
		return t.Key
	}
	for _, parent := range t.Extends {
		if key := parent.KeyType(); key != nil {
			return key
		}
	}
	return nil
}

// resolve substitutes open type variables through a binding map.
// Non-variable types are rebuilt only when a nested component changes.
func (t *TypeRef) resolve(bindings map[string]*TypeRef) *TypeRef {
	if t == nil || len(bindings) == 0 {
		return t
	}
	if t.Kind == TypeVariable {
		if bound, ok := bindings[t.Name]; ok {
			return bound
		}
		return t
	}
	key := t.Key.resolve(bindings)
	elem := t.Elem.resolve(bindings)
	if key == t.Key && elem == t.Elem {
		return t
	}
	out := *t
	out.Key = key
	out.Elem = elem
	return &out
}

// ParentRef names an interface ancestor together with the type
// arguments that close over its open type parameters.
type ParentRef struct {
	Interface *InterfaceDescriptor `json:"interface"`
	TypeArgs  map[string]*TypeRef  `json:"typeArgs,omitempty"`
}

// InterfaceDescriptor is the declaratively annotated client interface
// being resolved. It is an immutable input supplied by a host
// introspection facility.
type InterfaceDescriptor struct {
	Name       string                `json:"name"`
	TypeParams []string              `json:"typeParams,omitempty"` // open parameters; must be empty on a resolution target
	Parents    []ParentRef           `json:"parents,omitempty"`    // the resolver enforces single inheritance
	Directives []Directive           `json:"directives,omitempty"` // type-scope directives
	Operations []OperationDescriptor `json:"operations,omitempty"`
}

// OperationDescriptor is one operation signature of the interface.
type OperationDescriptor struct {
	Name       string               `json:"name"`
	Arguments  []ArgumentDescriptor `json:"arguments,omitempty"`
	ReturnType *TypeRef             `json:"returnType,omitempty"`
	Directives []Directive          `json:"directives,omitempty"`

	// Exclusion flags: operations carrying any of these never become
	// request templates.
	Identity    bool `json:"identity,omitempty"`    // universal object-identity operation
	Static      bool `json:"static,omitempty"`      // purely static declaration
	DefaultBody bool `json:"defaultBody,omitempty"` // operation ships its own implementation
}

// ArgumentDescriptor is one argument position of an operation.
type ArgumentDescriptor struct {
	Name       string      `json:"name,omitempty"` // declared name when retained, "" otherwise
	Type       *TypeRef    `json:"type"`
	Directives []Directive `json:"directives,omitempty"`
}

// ConfigKey derives the identity string for an operation of a resolved
// interface: Iface#Op(T1,T2). Inherited operations key against the
// interface being resolved, not the declaring ancestor, so a child
// override collides with the version it overrides.
func ConfigKey(target *InterfaceDescriptor, op *OperationDescriptor) string {
	names := make([]string, len(op.Arguments))
	for i, arg := range op.Arguments {
		names[i] = arg.Type.String()
	}
	return fmt.Sprintf("%s#%s(%s)", target.Name, op.Name, strings.Join(names, ","))
}
