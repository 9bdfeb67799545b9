package quill

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// HeaderSet is an insertion-ordered, multi-valued header collection.
// Setting an existing name replaces its whole value list but keeps its
// position.
type HeaderSet struct {
	entries *orderedmap.OrderedMap[string, []string]
}

// NewHeaderSet creates an empty header set
func NewHeaderSet() *HeaderSet {
	return &HeaderSet{entries: orderedmap.New[string, []string]()}
}

// Add appends a value to the name's value list.
func (h *HeaderSet) Add(name, value string) {
	values, _ := h.entries.Get(name)
	h.entries.Set(name, append(values, value))
}

// Set replaces the name's entire value list.
func (h *HeaderSet) Set(name string, values []string) {
	h.entries.Set(name, values)
}

// Get returns the ordered values for a name.
func (h *HeaderSet) Get(name string) []string {
	values, _ := h.entries.Get(name)
	return values
}

// Names returns the header names in insertion order.
func (h *HeaderSet) Names() []string {
	names := make([]string, 0, h.entries.Len())
	for pair := h.entries.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Len returns the number of distinct header names.
func (h *HeaderSet) Len() int {
	return h.entries.Len()
}

// RequestTemplate is the wire-level request description accumulated
// for one operation. An external transport binds argument values into
// it at call time.
type RequestTemplate struct {
	Method           string
	Path             string
	Headers          *HeaderSet
	Body             string // literal body, exclusive with BodyTemplate
	BodyTemplate     string // {var}-templated body
	DecodeSlash      bool
	CollectionFormat CollectionFormat
}

func newRequestTemplate() *RequestTemplate {
	return &RequestTemplate{Headers: NewHeaderSet(), DecodeSlash: true}
}

// HasVariable reports whether name is already a recognized path or
// header template variable.
func (t *RequestTemplate) HasVariable(name string) bool {
	placeholder := "{" + name + "}"
	if strings.Contains(t.Path, placeholder) {
		return true
	}
	for _, headerName := range t.Headers.Names() {
		for _, value := range t.Headers.Get(headerName) {
			if strings.Contains(value, placeholder) {
				return true
			}
		}
	}
	return false
}

// MethodMetadata is the resolved, validated request template for one
// operation, plus the argument roles the transport needs to bind
// values at call time.
type MethodMetadata struct {
	ConfigKey  string
	Target     *InterfaceDescriptor
	Operation  *OperationDescriptor
	ReturnType *TypeRef
	Template   *RequestTemplate

	BodyIndex      *int
	BodyType       *TypeRef
	URLIndex       *int // URI-typed argument overriding the base target
	QueryMapIndex  *int
	HeaderMapIndex *int

	IndexToName     map[int][]string // argument position -> ordered template variable names
	IndexToExpander map[int]Expander
	FormParams      []string // ordered variable names feeding an urlencoded body

	AlwaysEncodeBody bool
	Ignored          bool // operation deliberately excluded from request generation
	Warnings         []string

	ignoredIndices map[int]bool
}

func newMethodMetadata(target *InterfaceDescriptor, op *OperationDescriptor) *MethodMetadata {
	return &MethodMetadata{
		ConfigKey:       ConfigKey(target, op),
		Target:          target,
		Operation:       op,
		Template:        newRequestTemplate(),
		IndexToName:     make(map[int][]string),
		IndexToExpander: make(map[int]Expander),
		ignoredIndices:  make(map[int]bool),
	}
}

// NameArgument links an argument position to a template variable name.
// A position may feed several variables; each name is recorded once.
func (m *MethodMetadata) NameArgument(index int, name string) {
	for _, existing := range m.IndexToName[index] {
		if existing == name {
			return
		}
	}
	m.IndexToName[index] = append(m.IndexToName[index], name)
}

// IgnoreArgument excludes an argument position from body and form
// consideration.
func (m *MethodMetadata) IgnoreArgument(index int) {
	m.ignoredIndices[index] = true
}

// IgnoredIndices returns the excluded argument positions.
func (m *MethodMetadata) IgnoredIndices() []int {
	indices := make([]int, 0, len(m.ignoredIndices))
	for i := range m.ignoredIndices {
		indices = append(indices, i)
	}
	return indices
}

// IsAlreadyProcessed reports whether the position was claimed by a
// directive or explicitly excluded.
func (m *MethodMetadata) IsAlreadyProcessed(index int) bool {
	return len(m.IndexToName[index]) > 0 || m.ignoredIndices[index]
}

// AddFormParam records a form parameter name once, preserving order.
func (m *MethodMetadata) AddFormParam(name string) {
	for _, existing := range m.FormParams {
		if existing == name {
			return
		}
	}
	m.FormParams = append(m.FormParams, name)
}

// AddWarning records a non-fatal parsing diagnostic.
func (m *MethodMetadata) AddWarning(warning string) {
	m.Warnings = append(m.Warnings, warning)
}
