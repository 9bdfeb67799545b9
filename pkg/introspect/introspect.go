package introspect

import (
	"context"
	"fmt"
	"net/url"
	"reflect"

	"github.com/toyz/quill/pkg/quill"
)

// TagKey is the struct tag carrying directive calls.
const TagKey = "contract"

var (
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	urlType     = reflect.TypeOf((*url.URL)(nil))
	optionsType = reflect.TypeOf(quill.Options{})
)

// Describe builds an interface descriptor from a struct value or
// pointer. Func-typed fields become operations, embedded struct
// fields become parent interfaces, and any other field with a
// contract tag contributes type-scope directives.
func Describe(v any) (*quill.InterfaceDescriptor, error) {
	t := reflect.TypeOf(v)
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("introspect: %T is not a struct contract definition", v)
	}
	return describeStruct(t)
}

func describeStruct(t reflect.Type) (*quill.InterfaceDescriptor, error) {
	desc := &quill.InterfaceDescriptor{Name: t.Name()}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get(TagKey)

		switch {
		case field.Anonymous && field.Type.Kind() == reflect.Struct:
			parent, err := describeStruct(field.Type)
			if err != nil {
				return nil, err
			}
			desc.Parents = append(desc.Parents, quill.ParentRef{Interface: parent})

		case field.Type.Kind() == reflect.Func:
			op, err := describeOperation(field, tag)
			if err != nil {
				return nil, fmt.Errorf("introspect: %s.%s: %w", t.Name(), field.Name, err)
			}
			desc.Operations = append(desc.Operations, op)

		case tag != "":
			directives, err := typeDirectives(tag)
			if err != nil {
				return nil, fmt.Errorf("introspect: %s.%s: %w", t.Name(), field.Name, err)
			}
			desc.Directives = append(desc.Directives, directives...)
		}
	}

	return desc, nil
}

func typeDirectives(tag string) ([]quill.Directive, error) {
	calls, err := parseTag(tag)
	if err != nil {
		return nil, err
	}
	out := make([]quill.Directive, 0, len(calls))
	for _, call := range calls {
		d, argIndex, err := call.directive()
		if err != nil {
			return nil, err
		}
		if argIndex != nil {
			return nil, fmt.Errorf("directive %s cannot appear at type scope", call.Name)
		}
		out = append(out, d)
	}
	return out, nil
}

func describeOperation(field reflect.StructField, tag string) (quill.OperationDescriptor, error) {
	ft := field.Type
	op := quill.OperationDescriptor{Name: field.Name}

	for i := 0; i < ft.NumIn(); i++ {
		op.Arguments = append(op.Arguments, quill.ArgumentDescriptor{Type: typeRefOf(ft.In(i))})
	}
	for i := 0; i < ft.NumOut(); i++ {
		if ft.Out(i) == errorType {
			continue
		}
		op.ReturnType = typeRefOf(ft.Out(i))
		break
	}

	if tag == "" {
		return op, nil
	}
	calls, err := parseTag(tag)
	if err != nil {
		return op, err
	}
	for _, call := range calls {
		d, argIndex, err := call.directive()
		if err != nil {
			return op, err
		}
		if argIndex == nil {
			op.Directives = append(op.Directives, d)
			continue
		}
		if *argIndex >= len(op.Arguments) {
			return op, fmt.Errorf("directive %s references argument %d, but the operation has %d", call.Name, *argIndex, len(op.Arguments))
		}
		op.Arguments[*argIndex].Directives = append(op.Arguments[*argIndex].Directives, d)
	}
	return op, nil
}

// typeRefOf maps a reflected type onto the descriptor model. The
// reserved kinds come first: context arguments never join the body,
// *url.URL overrides the call-time target, and quill.Options is the
// per-call configuration object.
func typeRefOf(t reflect.Type) *quill.TypeRef {
	switch {
	case t == contextType:
		return &quill.TypeRef{Name: t.String(), Kind: quill.TypeContext}
	case t == urlType:
		return &quill.TypeRef{Name: t.String(), Kind: quill.TypeURL}
	case t == optionsType:
		return quill.OptionsTypeRef()
	case t.Kind() == reflect.Map:
		ref := &quill.TypeRef{
			Name: t.Name(),
			Kind: quill.TypeMap,
			Key:  typeRefOf(t.Key()),
			Elem: typeRefOf(t.Elem()),
		}
		return ref
	case t.Kind() == reflect.Interface:
		return &quill.TypeRef{Name: t.String(), Kind: quill.TypeInterface}
	default:
		return &quill.TypeRef{Name: t.String(), Kind: quill.TypeValue}
	}
}
