package quill

import (
	"reflect"
	"testing"
)

func TestHeaderSetOrdering(t *testing.T) {
	set := NewHeaderSet()
	set.Add("X-B", "1")
	set.Add("X-A", "2")
	set.Add("X-B", "3")

	if got := set.Names(); !reflect.DeepEqual(got, []string{"X-B", "X-A"}) {
		t.Errorf("Names() = %v, want [X-B X-A]", got)
	}
	if got := set.Get("X-B"); !reflect.DeepEqual(got, []string{"1", "3"}) {
		t.Errorf("Get(X-B) = %v, want [1 3]", got)
	}
}

func TestHeaderSetSetReplacesKeepingPosition(t *testing.T) {
	set := NewHeaderSet()
	set.Add("X-A", "1")
	set.Add("X-B", "2")
	set.Set("X-A", []string{"9"})

	if got := set.Names(); !reflect.DeepEqual(got, []string{"X-A", "X-B"}) {
		t.Errorf("Names() = %v, want [X-A X-B]", got)
	}
	if got := set.Get("X-A"); !reflect.DeepEqual(got, []string{"9"}) {
		t.Errorf("Get(X-A) = %v, want [9]", got)
	}
}

func TestHasVariable(t *testing.T) {
	template := newRequestTemplate()
	template.Path = "/api/{key}"
	template.Headers.Add("Authorization", "Bearer {token}")

	tests := []struct {
		name string
		want bool
	}{
		{name: "key", want: true},
		{name: "token", want: true},
		{name: "missing", want: false},
		{name: "ke", want: false}, // partial names never match
	}

	for _, tt := range tests {
		if got := template.HasVariable(tt.name); got != tt.want {
			t.Errorf("HasVariable(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNameArgumentDeduplicates(t *testing.T) {
	meta := newMethodMetadata(&InterfaceDescriptor{Name: "API"}, &OperationDescriptor{Name: "Get"})
	meta.NameArgument(0, "key")
	meta.NameArgument(0, "key")
	meta.NameArgument(0, "alias")

	if got := meta.IndexToName[0]; !reflect.DeepEqual(got, []string{"key", "alias"}) {
		t.Errorf("IndexToName[0] = %v, want [key alias]", got)
	}
}

func TestAddFormParamDeduplicates(t *testing.T) {
	meta := newMethodMetadata(&InterfaceDescriptor{Name: "API"}, &OperationDescriptor{Name: "Get"})
	meta.AddFormParam("a")
	meta.AddFormParam("b")
	meta.AddFormParam("a")

	if got := meta.FormParams; !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("FormParams = %v, want [a b]", got)
	}
}

func TestIsAlreadyProcessed(t *testing.T) {
	meta := newMethodMetadata(&InterfaceDescriptor{Name: "API"}, &OperationDescriptor{Name: "Get"})

	if meta.IsAlreadyProcessed(0) {
		t.Error("fresh metadata should have no processed arguments")
	}

	meta.NameArgument(0, "key")
	if !meta.IsAlreadyProcessed(0) {
		t.Error("named argument should count as processed")
	}

	meta.IgnoreArgument(1)
	if !meta.IsAlreadyProcessed(1) {
		t.Error("ignored argument should count as processed")
	}
}
