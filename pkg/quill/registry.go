package quill

import (
	"fmt"
	"sync"
)

// TypeHandler processes a type-scope directive against the metadata
// accumulated for one operation.
type TypeHandler func(d Directive, meta *MethodMetadata) error

// OperationHandler processes an operation-scope directive.
type OperationHandler func(d Directive, meta *MethodMetadata) error

// ArgumentHandler processes an argument-scope directive for the
// argument at the given position.
type ArgumentHandler func(d Directive, meta *MethodMetadata, index int) error

// DirectiveRegistry holds the three scope-specific lookup tables from
// directive kind to handler. It is built once when a contract is
// constructed and is read-only afterwards.
type DirectiveRegistry struct {
	mu                sync.RWMutex
	typeHandlers      map[DirectiveKind]TypeHandler
	operationHandlers map[DirectiveKind]OperationHandler
	argumentHandlers  map[DirectiveKind]ArgumentHandler
}

// NewDirectiveRegistry creates an empty directive registry
func NewDirectiveRegistry() *DirectiveRegistry {
	return &DirectiveRegistry{
		typeHandlers:      make(map[DirectiveKind]TypeHandler),
		operationHandlers: make(map[DirectiveKind]OperationHandler),
		argumentHandlers:  make(map[DirectiveKind]ArgumentHandler),
	}
}

// RegisterTypeDirective binds a directive kind to a type-scope handler
func (r *DirectiveRegistry) RegisterTypeDirective(kind DirectiveKind, handler TypeHandler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.typeHandlers[kind]; exists {
		return fmt.Errorf("directive %s is already registered at type scope", kind)
	}
	r.typeHandlers[kind] = handler
	return nil
}

// RegisterOperationDirective binds a directive kind to an
// operation-scope handler
func (r *DirectiveRegistry) RegisterOperationDirective(kind DirectiveKind, handler OperationHandler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.operationHandlers[kind]; exists {
		return fmt.Errorf("directive %s is already registered at operation scope", kind)
	}
	r.operationHandlers[kind] = handler
	return nil
}

// RegisterArgumentDirective binds a directive kind to an
// argument-scope handler
func (r *DirectiveRegistry) RegisterArgumentDirective(kind DirectiveKind, handler ArgumentHandler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.argumentHandlers[kind]; exists {
		return fmt.Errorf("directive %s is already registered at argument scope", kind)
	}
	r.argumentHandlers[kind] = handler
	return nil
}

// applyType dispatches a type-scope directive. Directives with no
// handler at this scope only produce a warning.
func (r *DirectiveRegistry) applyType(d Directive, meta *MethodMetadata) error {
	r.mu.RLock()
	handler, ok := r.typeHandlers[d.Kind]
	r.mu.RUnlock()

	if !ok {
		meta.AddWarning(fmt.Sprintf("directive %s is not used at type scope", d.Kind))
		return nil
	}
	return handler(d, meta)
}

func (r *DirectiveRegistry) applyOperation(d Directive, meta *MethodMetadata) error {
	r.mu.RLock()
	handler, ok := r.operationHandlers[d.Kind]
	r.mu.RUnlock()

	if !ok {
		meta.AddWarning(fmt.Sprintf("directive %s is not used at operation scope", d.Kind))
		return nil
	}
	return handler(d, meta)
}

// applyArgument dispatches an argument-scope directive. The claimed
// result reports whether a handler recognized the directive as
// HTTP-relevant for the position.
func (r *DirectiveRegistry) applyArgument(d Directive, meta *MethodMetadata, index int) (claimed bool, err error) {
	r.mu.RLock()
	handler, ok := r.argumentHandlers[d.Kind]
	r.mu.RUnlock()

	if !ok {
		meta.AddWarning(fmt.Sprintf("directive %s is not used at argument scope", d.Kind))
		return false, nil
	}
	return true, handler(d, meta, index)
}
