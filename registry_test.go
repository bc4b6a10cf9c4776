package rowcast

import "testing"

func TestRegistryLookup(t *testing.T) {
	r := DefaultRegistry()

	conv, ok := ConverterFor[int64](r, TagInt)
	if !ok {
		t.Fatal("no int converter in default registry")
	}
	if v, err := conv("5"); err != nil || v != 5 {
		t.Errorf("int converter returned (%d, %v)", v, err)
	}

	// Wrong type parameter for the tag.
	if _, ok := ConverterFor[string](r, TagInt); ok {
		t.Error("lookup at the wrong type succeeded")
	}

	// Unknown tag.
	if _, ok := ConverterFor[int64](r, "no-such-tag"); ok {
		t.Error("lookup of unknown tag succeeded")
	}
}

func TestRegistryCloneIsolation(t *testing.T) {
	base := DefaultRegistry()
	clone := base.Clone()

	RegisterConverter(clone, TagInt, IntConvInBase(16))

	hexConv := MustConverterFor[int64](clone, TagInt)
	if v, _ := hexConv("ff"); v != 255 {
		t.Errorf("clone override: got %d, want 255", v)
	}

	decConv := MustConverterFor[int64](base, TagInt)
	if _, err := decConv("ff"); err == nil {
		t.Error("override leaked into the base registry")
	}
}

func TestMustConverterForPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustConverterFor did not panic on an unknown tag")
		}
	}()
	MustConverterFor[int64](NewRegistry(), TagInt)
}
