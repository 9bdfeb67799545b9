package quill

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNarrowerThan(t *testing.T) {
	animal := &TypeRef{Name: "Animal", Kind: TypeInterface}
	dog := &TypeRef{Name: "Dog", Kind: TypeInterface, Extends: []*TypeRef{animal}}
	puppy := &TypeRef{Name: "Puppy", Kind: TypeInterface, Extends: []*TypeRef{dog}}
	cat := &TypeRef{Name: "Cat", Kind: TypeInterface, Extends: []*TypeRef{animal}}

	tests := []struct {
		name string
		sub  *TypeRef
		sup  *TypeRef
		want bool
	}{
		{name: "direct ancestor", sub: dog, sup: animal, want: true},
		{name: "transitive ancestor", sub: puppy, sup: animal, want: true},
		{name: "same type", sub: dog, sup: dog, want: false},
		{name: "wider type", sub: animal, sup: dog, want: false},
		{name: "unrelated sibling", sub: dog, sup: cat, want: false},
		{name: "nil receiver", sub: nil, sup: animal, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sub.NarrowerThan(tt.sup))
		})
	}
}

func TestKeyTypeInference(t *testing.T) {
	stringKeyed := &TypeRef{Kind: TypeMap, Key: &TypeRef{Name: "string"}}

	explicit := &TypeRef{Kind: TypeMap, Key: &TypeRef{Name: "int"}}
	assert.Equal(t, "int", explicit.KeyType().Name)

	inherited := &TypeRef{Name: "HeaderValues", Kind: TypeMap, Extends: []*TypeRef{stringKeyed}}
	assert.Equal(t, "string", inherited.KeyType().Name)

	deep := &TypeRef{
		Name: "Wrapped",
		Kind: TypeMap,
		Extends: []*TypeRef{
			{Name: "Marker", Kind: TypeInterface},
			{Name: "Middle", Kind: TypeMap, Extends: []*TypeRef{stringKeyed}},
		},
	}
	assert.Equal(t, "string", deep.KeyType().Name)

	opaque := &TypeRef{Name: "Opaque", Kind: TypeMap}
	assert.Nil(t, opaque.KeyType())
}

func TestTypeRefString(t *testing.T) {
	anon := &TypeRef{
		Kind: TypeMap,
		Key:  &TypeRef{Name: "string"},
		Elem: &TypeRef{Name: "int"},
	}
	assert.Equal(t, "map[string]int", anon.String())

	named := &TypeRef{Name: "QueryValues", Kind: TypeMap}
	assert.Equal(t, "QueryValues", named.String())
}

func TestResolveSubstitutesVariables(t *testing.T) {
	bindings := map[string]*TypeRef{"T": {Name: "Repo"}}

	variable := &TypeRef{Name: "T", Kind: TypeVariable}
	assert.Equal(t, "Repo", variable.resolve(bindings).Name)

	unbound := &TypeRef{Name: "U", Kind: TypeVariable}
	assert.Equal(t, "U", unbound.resolve(bindings).Name)

	nested := &TypeRef{Kind: TypeMap, Key: &TypeRef{Name: "string"}, Elem: variable}
	resolved := nested.resolve(bindings)
	assert.Equal(t, "Repo", resolved.Elem.Name)
	// the original is never mutated
	assert.Equal(t, "T", nested.Elem.Name)

	plain := &TypeRef{Name: "string"}
	assert.Same(t, plain, plain.resolve(bindings))
}

func TestConfigKeyFormat(t *testing.T) {
	target := &InterfaceDescriptor{Name: "GitHub"}
	op := &OperationDescriptor{
		Name: "Contributors",
		Arguments: []ArgumentDescriptor{
			{Type: &TypeRef{Name: "string"}},
			{Type: &TypeRef{Name: "string"}},
		},
	}
	assert.Equal(t, "GitHub#Contributors(string,string)", ConfigKey(target, op))

	empty := &OperationDescriptor{Name: "Ping"}
	assert.Equal(t, "GitHub#Ping()", ConfigKey(target, empty))
}
