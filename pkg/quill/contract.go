package quill

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Contract inspects a declaratively annotated interface descriptor and
// produces a validated request template for each of its operations. It
// never issues requests; an external transport binds concrete argument
// values into the returned templates.
type Contract interface {
	// ParseAndValidateMetadata resolves every operation of the target
	// interface. Resolution is atomic: any configuration problem aborts
	// the whole interface with a *ConfigurationError.
	ParseAndValidateMetadata(target *InterfaceDescriptor) ([]*MethodMetadata, error)
}

// BaseContract drives directive application through a DirectiveRegistry
// in the fixed order parent-type, type, operation, arguments. Concrete
// vocabularies register their handlers on top of it; NewDefaultContract
// wires in the built-in one.
type BaseContract struct {
	registry         *DirectiveRegistry
	expanders        map[string]Expander
	alwaysEncodeBody bool
}

// NewBaseContract creates a contract with an empty directive registry
func NewBaseContract() *BaseContract {
	return &BaseContract{
		registry:  NewDirectiveRegistry(),
		expanders: make(map[string]Expander),
	}
}

// Registry exposes the directive registry for custom vocabularies.
func (c *BaseContract) Registry() *DirectiveRegistry {
	return c.registry
}

// RegisterExpander binds a named value-expansion strategy for Param
// directives to reference.
func (c *BaseContract) RegisterExpander(name string, expander Expander) error {
	if _, exists := c.expanders[name]; exists {
		return fmt.Errorf("expander %s is already registered", name)
	}
	c.expanders[name] = expander
	return nil
}

// resolvedOperation pairs an operation with the type-argument bindings
// accumulated along the inheritance chain it was declared on.
type resolvedOperation struct {
	op       *OperationDescriptor
	bindings map[string]*TypeRef
}

// ParseAndValidateMetadata implements Contract
func (c *BaseContract) ParseAndValidateMetadata(target *InterfaceDescriptor) ([]*MethodMetadata, error) {
	if target == nil {
		return nil, NewConfigurationError("", "no interface descriptor supplied")
	}
	if len(target.TypeParams) > 0 {
		return nil, NewConfigurationError("", "parameterized types unsupported: %s", target.Name)
	}
	if len(target.Parents) > 1 {
		return nil, NewConfigurationError("", "only single inheritance supported: %s", target.Name)
	}

	result := orderedmap.New[string, *MethodMetadata]()
	for _, entry := range collectOperations(target) {
		meta, err := c.parseOperation(target, entry.op, entry.bindings)
		if err != nil {
			return nil, err
		}

		if existing, ok := result.Get(meta.ConfigKey); ok {
			// A strictly narrower return type wins the override; a
			// same-or-wider one is silently discarded so that
			// interface-narrowing specializations resolve to exactly
			// one entry.
			if meta.ReturnType.NarrowerThan(existing.ReturnType) {
				result.Set(meta.ConfigKey, meta)
			}
			continue
		}
		result.Set(meta.ConfigKey, meta)
	}

	out := make([]*MethodMetadata, 0, result.Len())
	for pair := result.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out, nil
}

// collectOperations enumerates the target's own operations first, then
// walks the parent chain, composing type-argument bindings as it goes.
// Object-identity, static, and default-body operations never resolve.
func collectOperations(target *InterfaceDescriptor) []resolvedOperation {
	var out []resolvedOperation

	var walk func(iface *InterfaceDescriptor, bindings map[string]*TypeRef)
	walk = func(iface *InterfaceDescriptor, bindings map[string]*TypeRef) {
		for i := range iface.Operations {
			op := &iface.Operations[i]
			if op.Identity || op.Static || op.DefaultBody {
				continue
			}
			out = append(out, resolvedOperation{op: op, bindings: bindings})
		}
		for _, parent := range iface.Parents {
			walk(parent.Interface, composeBindings(parent.TypeArgs, bindings))
		}
	}
	walk(target, nil)
	return out
}

// composeBindings closes a parent's type arguments over the bindings
// already accumulated below it in the chain.
func composeBindings(args, outer map[string]*TypeRef) map[string]*TypeRef {
	if len(args) == 0 {
		return nil
	}
	out := make(map[string]*TypeRef, len(args))
	for name, t := range args {
		out[name] = t.resolve(outer)
	}
	return out
}

func (c *BaseContract) parseOperation(target *InterfaceDescriptor, op *OperationDescriptor, bindings map[string]*TypeRef) (*MethodMetadata, error) {
	meta := newMethodMetadata(target, op)
	meta.ReturnType = op.ReturnType.resolve(bindings)
	meta.AlwaysEncodeBody = c.alwaysEncodeBody

	// Directive order: parent-interface type directives, the target's
	// own type directives, then the operation's in declaration order.
	if len(target.Parents) == 1 {
		for _, d := range target.Parents[0].Interface.Directives {
			if err := c.registry.applyType(d, meta); err != nil {
				return nil, err
			}
		}
	}
	for _, d := range target.Directives {
		if err := c.registry.applyType(d, meta); err != nil {
			return nil, err
		}
	}
	for _, d := range op.Directives {
		if err := c.registry.applyOperation(d, meta); err != nil {
			return nil, err
		}
	}

	if meta.Ignored {
		return meta, nil
	}

	if meta.Template.Method == "" || meta.Template.Path == "" {
		return nil, configErrorFor(meta, "operation %s is not bound to an HTTP method and path (ex. GET /api)", op.Name)
	}

	for i := range op.Arguments {
		arg := &op.Arguments[i]

		claimed := false
		for _, d := range arg.Directives {
			handled, err := c.registry.applyArgument(d, meta, i)
			if err != nil {
				return nil, err
			}
			claimed = claimed || handled
		}
		if claimed {
			meta.IgnoreArgument(i)
		}

		argType := arg.Type.resolve(bindings)
		if argType != nil && argType.Kind == TypeContext {
			meta.IgnoreArgument(i)
		}

		if argType != nil && argType.Kind == TypeURL {
			index := i
			meta.URLIndex = &index
		} else if !claimed && (argType == nil || argType.Kind != TypeOptions) {
			if meta.IsAlreadyProcessed(i) {
				if len(meta.FormParams) > 0 && meta.BodyIndex != nil {
					return nil, configErrorFor(meta, "body parameters cannot be used with form parameters")
				}
			} else if !meta.AlwaysEncodeBody {
				if len(meta.FormParams) > 0 {
					return nil, configErrorFor(meta, "body parameters cannot be used with form parameters")
				}
				if meta.BodyIndex != nil {
					return nil, configErrorFor(meta, "operation %s has too many body parameters", op.Name)
				}
				index := i
				meta.BodyIndex = &index
				meta.BodyType = argType
			}
		}
	}

	if meta.HeaderMapIndex != nil {
		argType := op.Arguments[*meta.HeaderMapIndex].Type.resolve(bindings)
		if err := checkMapKeys(meta, "headerMap", argType); err != nil {
			return nil, err
		}
	}
	if meta.QueryMapIndex != nil {
		argType := op.Arguments[*meta.QueryMapIndex].Type.resolve(bindings)
		if err := checkMapKeys(meta, "queryMap", argType); err != nil {
			return nil, err
		}
	}

	return meta, nil
}

// checkMapKeys validates that a map-typed headerMap or queryMap
// argument is keyed by strings. A raw map whose key type cannot be
// determined, explicitly or through an ancestor, passes.
func checkMapKeys(meta *MethodMetadata, label string, t *TypeRef) error {
	if t == nil || t.Kind != TypeMap {
		return nil
	}
	key := t.KeyType()
	if key != nil && key.Name != "string" {
		return configErrorFor(meta, "%s key must be a string: %s", label, key.Name)
	}
	return nil
}
