package json

import (
	"strings"
	"testing"
	"unsafe"
)

func TestUnmarshalCopiesStrings(t *testing.T) {
	type payload struct {
		S string `json:"s"`
	}

	want := strings.Repeat("a", 1<<20)
	src := []byte(`{"s":"` + want + `"}`)

	var out payload
	if err := Unmarshal(src, &out); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if out.S != want {
		t.Fatalf("decoded mismatch: got len=%d want len=%d", len(out.S), len(want))
	}

	inStart := uintptr(unsafe.Pointer(unsafe.SliceData(src)))
	inEnd := inStart + uintptr(len(src))
	outStart := uintptr(unsafe.Pointer(unsafe.StringData(out.S)))
	if outStart >= inStart && outStart < inEnd {
		t.Fatalf("decoded string references input buffer; CopyString expected")
	}
}

func TestValid(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{`{"resourceNames":["customers/1"]}`, true},
		{`[1,2,3]`, true},
		{`"text"`, true},
		{`<html>Error</html>`, false},
		{``, false},
		{`{"a":`, false},
	}
	for _, c := range cases {
		if got := Valid([]byte(c.in)); got != c.want {
			t.Fatalf("Valid(%q)=%v want %v", c.in, got, c.want)
		}
	}
}

func TestMarshalIndent(t *testing.T) {
	out, err := MarshalIndent(map[string][]string{"Accept": {"application/json"}}, "", "  ")
	if err != nil {
		t.Fatalf("MarshalIndent error: %v", err)
	}
	want := "{\n  \"Accept\": [\n    \"application/json\"\n  ]\n}"
	if string(out) != want {
		t.Fatalf("got %q want %q", out, want)
	}
}
