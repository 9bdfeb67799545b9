package quill

import (
	"fmt"
	"regexp"
	"strings"
)

// requestLinePattern matches an uppercase verb token followed by
// optional whitespace and the path, ex. "GET /api/{key}".
var requestLinePattern = regexp.MustCompile(`^([A-Z]+)[ ]*(.*)$`)

// NewDefaultContract creates a contract wired with the built-in
// directive vocabulary: headers, requestLine, body, param, queryMap,
// and headerMap, plus the built-in expanders.
func NewDefaultContract() *BaseContract {
	c := NewBaseContract()
	registerDefaults(c)
	return c
}

// NewAlwaysEncodeBodyContract is the Default vocabulary with body
// encoding forced on: un-annotated arguments no longer claim the body
// index, so operations may mix an encoded body with form parameters.
func NewAlwaysEncodeBodyContract() *BaseContract {
	c := NewDefaultContract()
	c.alwaysEncodeBody = true
	return c
}

// registerDefaults wires the built-in vocabulary. Registration cannot
// fail here: the kinds are fixed and each is bound exactly once.
func registerDefaults(c *BaseContract) {
	for name, expander := range builtinExpanders() {
		c.expanders[name] = expander
	}

	must(c.registry.RegisterTypeDirective(DirectiveHeaders, func(d Directive, meta *MethodMetadata) error {
		if len(d.Values) == 0 {
			return configErrorFor(meta, "headers directive was empty on type %s", meta.Target.Name)
		}
		return applyHeaders(d.Values, meta)
	}))

	must(c.registry.RegisterOperationDirective(DirectiveHeaders, func(d Directive, meta *MethodMetadata) error {
		if len(d.Values) == 0 {
			return configErrorFor(meta, "headers directive was empty on operation %s", meta.Operation.Name)
		}
		return applyHeaders(d.Values, meta)
	}))

	must(c.registry.RegisterOperationDirective(DirectiveRequestLine, func(d Directive, meta *MethodMetadata) error {
		value := d.Value()
		if value == "" {
			return configErrorFor(meta, "requestLine directive was empty on operation %s", meta.Operation.Name)
		}
		m := requestLinePattern.FindStringSubmatch(value)
		if m == nil {
			return configErrorFor(meta, "requestLine %q did not start with an HTTP verb on operation %s", value, meta.Operation.Name)
		}
		meta.Template.Method = m[1]
		meta.Template.Path = m[2]
		meta.Template.DecodeSlash = d.DecodeSlash
		meta.Template.CollectionFormat = d.CollectionFormat
		return nil
	}))

	must(c.registry.RegisterOperationDirective(DirectiveBody, func(d Directive, meta *MethodMetadata) error {
		value := d.Value()
		if value == "" {
			return configErrorFor(meta, "body directive was empty on operation %s", meta.Operation.Name)
		}
		if strings.Contains(value, "{") {
			meta.Template.BodyTemplate = value
		} else {
			meta.Template.Body = value
		}
		return nil
	}))

	must(c.registry.RegisterArgumentDirective(DirectiveParam, func(d Directive, meta *MethodMetadata, index int) error {
		name := d.Value()
		if name == "" && index < len(meta.Operation.Arguments) {
			// fall back to the declared argument name when retained
			name = meta.Operation.Arguments[index].Name
		}
		if name == "" {
			return configErrorFor(meta, "param directive was empty on argument %d", index)
		}
		meta.NameArgument(index, name)

		if d.Expander != "" && d.Expander != ExpanderString {
			expander, ok := c.expanders[d.Expander]
			if !ok {
				return configErrorFor(meta, "unknown expander %q on argument %d", d.Expander, index)
			}
			meta.IndexToExpander[index] = expander
		}

		if !meta.Template.HasVariable(name) {
			meta.AddFormParam(name)
		}
		return nil
	}))

	must(c.registry.RegisterArgumentDirective(DirectiveQueryMap, func(d Directive, meta *MethodMetadata, index int) error {
		if meta.QueryMapIndex != nil {
			return configErrorFor(meta, "queryMap directive was present on multiple arguments")
		}
		position := index
		meta.QueryMapIndex = &position
		return nil
	}))

	must(c.registry.RegisterArgumentDirective(DirectiveHeaderMap, func(d Directive, meta *MethodMetadata, index int) error {
		if meta.HeaderMapIndex != nil {
			return configErrorFor(meta, "headerMap directive was present on multiple arguments")
		}
		position := index
		meta.HeaderMapIndex = &position
		return nil
	}))
}

// applyHeaders merges a "Name: Value" entry list into the template.
// A key present in the declaration replaces that key's entire value
// list; untouched keys keep their position and values.
func applyHeaders(entries []string, meta *MethodMetadata) error {
	parsed := NewHeaderSet()
	for _, entry := range entries {
		colon := strings.Index(entry, ":")
		if colon <= 0 {
			return configErrorFor(meta, "header entry %q is not in \"Name: Value\" form", entry)
		}
		parsed.Add(entry[:colon], strings.TrimSpace(entry[colon+1:]))
	}
	for _, name := range parsed.Names() {
		meta.Template.Headers.Set(name, parsed.Get(name))
	}
	return nil
}

func must(err error) {
	if err != nil {
		panic(fmt.Sprintf("quill: default directive wiring: %v", err))
	}
}
