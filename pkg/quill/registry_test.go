package quill

import (
	"strings"
	"testing"
)

func TestRegisterRejectsDuplicateKindPerScope(t *testing.T) {
	registry := NewDirectiveRegistry()

	handler := func(d Directive, meta *MethodMetadata) error { return nil }

	if err := registry.RegisterTypeDirective(DirectiveHeaders, handler); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if err := registry.RegisterTypeDirective(DirectiveHeaders, handler); err == nil {
		t.Error("expected error when registering duplicate type handler")
	}

	// the same kind at another scope is a separate binding
	if err := registry.RegisterOperationDirective(DirectiveHeaders, handler); err != nil {
		t.Errorf("operation scope registration failed: %v", err)
	}
}

func TestApplyUnknownKindWarnsInsteadOfFailing(t *testing.T) {
	registry := NewDirectiveRegistry()
	meta := newMethodMetadata(&InterfaceDescriptor{Name: "API"}, &OperationDescriptor{Name: "Get"})

	if err := registry.applyType(Headers("X-A: 1"), meta); err != nil {
		t.Fatalf("applyType returned error: %v", err)
	}
	if err := registry.applyOperation(Body("x"), meta); err != nil {
		t.Fatalf("applyOperation returned error: %v", err)
	}
	claimed, err := registry.applyArgument(Param("key"), meta, 0)
	if err != nil {
		t.Fatalf("applyArgument returned error: %v", err)
	}
	if claimed {
		t.Error("unhandled argument directive must not claim the position")
	}

	if len(meta.Warnings) != 3 {
		t.Fatalf("expected 3 warnings, got %d: %v", len(meta.Warnings), meta.Warnings)
	}
	for _, warning := range meta.Warnings {
		if !strings.Contains(warning, "is not used at") {
			t.Errorf("unexpected warning text: %s", warning)
		}
	}
}

func TestArgumentHandlerClaimsPosition(t *testing.T) {
	registry := NewDirectiveRegistry()
	err := registry.RegisterArgumentDirective(DirectiveParam, func(d Directive, meta *MethodMetadata, index int) error {
		meta.NameArgument(index, d.Value())
		return nil
	})
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	meta := newMethodMetadata(&InterfaceDescriptor{Name: "API"}, &OperationDescriptor{Name: "Get"})
	claimed, err := registry.applyArgument(Param("key"), meta, 2)
	if err != nil {
		t.Fatalf("applyArgument returned error: %v", err)
	}
	if !claimed {
		t.Error("handled argument directive must claim the position")
	}
	if got := meta.IndexToName[2]; len(got) != 1 || got[0] != "key" {
		t.Errorf("IndexToName[2] = %v, want [key]", got)
	}
}
