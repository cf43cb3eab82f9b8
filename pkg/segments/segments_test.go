package segments

import (
	"bytes"
	"strings"
	"testing"
)

func TestPromptResolver_SingleVLAN(t *testing.T) {
	var out bytes.Buffer
	p := NewPromptResolver(strings.NewReader("Internet-Only\n"), &out)

	name, err := p.ResolveSegment(1000)
	if err != nil {
		t.Fatalf("ResolveSegment() error: %v", err)
	}
	if name != "Internet-Only" {
		t.Errorf("ResolveSegment() = %q, want %q", name, "Internet-Only")
	}
	if !strings.Contains(out.String(), "VLAN 1000") {
		t.Errorf("prompt output missing VLAN number: %q", out.String())
	}
}

func TestPromptResolver_TrimsWhitespace(t *testing.T) {
	p := NewPromptResolver(strings.NewReader("  Acme-Devices  \n"), &bytes.Buffer{})
	name, err := p.ResolveSegment(40)
	if err != nil {
		t.Fatalf("ResolveSegment() error: %v", err)
	}
	if name != "Acme-Devices" {
		t.Errorf("ResolveSegment() = %q, want trimmed %q", name, "Acme-Devices")
	}
}

func TestPromptResolver_RepromptsOnEmpty(t *testing.T) {
	var out bytes.Buffer
	p := NewPromptResolver(strings.NewReader("\n   \nGuest\n"), &out)

	name, err := p.ResolveSegment(7)
	if err != nil {
		t.Fatalf("ResolveSegment() error: %v", err)
	}
	if name != "Guest" {
		t.Errorf("ResolveSegment() = %q, want %q", name, "Guest")
	}
	if got := strings.Count(out.String(), "Enter segment name"); got != 3 {
		t.Errorf("expected 3 prompts (2 rejections), got %d: %q", got, out.String())
	}
	if !strings.Contains(out.String(), "cannot be empty") {
		t.Error("empty input should be rejected with a message")
	}
}

func TestPromptResolver_EOF(t *testing.T) {
	p := NewPromptResolver(strings.NewReader(""), &bytes.Buffer{})
	if _, err := p.ResolveSegment(5); err == nil {
		t.Error("ResolveSegment() with closed input should fail")
	}
}

func TestBuildMapping(t *testing.T) {
	var out bytes.Buffer
	p := NewPromptResolver(strings.NewReader("Acme-Devices\nInternet-Only\n"), &out)

	mapping, err := BuildMapping([]int{40, 1000}, p)
	if err != nil {
		t.Fatalf("BuildMapping() error: %v", err)
	}
	want := map[int]string{40: "Acme-Devices", 1000: "Internet-Only"}
	if len(mapping) != len(want) {
		t.Fatalf("BuildMapping() = %v, want %v", mapping, want)
	}
	for vlan, name := range want {
		if mapping[vlan] != name {
			t.Errorf("mapping[%d] = %q, want %q", vlan, mapping[vlan], name)
		}
	}
	// prompts follow the given (sorted) VLAN order
	first := strings.Index(out.String(), "VLAN 40")
	second := strings.Index(out.String(), "VLAN 1000")
	if first == -1 || second == -1 || first > second {
		t.Errorf("prompts out of order: %q", out.String())
	}
}

func TestBuildMapping_ResolverError(t *testing.T) {
	p := NewPromptResolver(strings.NewReader("Finance\n"), &bytes.Buffer{})
	if _, err := BuildMapping([]int{10, 20}, p); err == nil {
		t.Error("BuildMapping() should surface resolver errors")
	}
}

func TestBuildMapping_NoVLANs(t *testing.T) {
	p := NewPromptResolver(strings.NewReader(""), &bytes.Buffer{})
	mapping, err := BuildMapping(nil, p)
	if err != nil {
		t.Fatalf("BuildMapping(nil) error: %v", err)
	}
	if len(mapping) != 0 {
		t.Errorf("BuildMapping(nil) = %v, want empty", mapping)
	}
}
