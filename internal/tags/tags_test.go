package tags

import "testing"

func TestLookupRoundTrip(t *testing.T) {
	for id := 1; id < NumTagIDs; id++ {
		name := TagID(id).String()
		if name == "" {
			t.Fatalf("TagID %d has no name", id)
		}
		if got := Lookup(name); got != TagID(id) {
			t.Errorf("Lookup(%q) = %v, want %v", name, got, TagID(id))
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	for _, name := range []string{"", "DIV", "custom-element", "blink"} {
		if got := Lookup(name); got != Other {
			t.Errorf("Lookup(%q) = %v, want Other", name, got)
		}
	}
}

func TestNameInterning(t *testing.T) {
	if Name("div") != "div" || Name("frobnicate") != "frobnicate" {
		t.Fatal("Name must return the spelling unchanged")
	}
}

func TestSetMembership(t *testing.T) {
	tests := []struct {
		set  Set
		id   TagID
		want bool
	}{
		{Void, Br, true},
		{Void, Div, false},
		{Formatting, Nobr, true},
		{Formatting, Span, false},
		{Special, Template, true},
		{Special, B, false},
		{ScopeButton, Button, true},
		{ScopeDefault, Button, false},
		{ScopeListItem, Ul, true},
		{ScopeTable, Table, true},
		{ImpliedEnd, P, true},
		{ImpliedEndThorough, Td, true},
		{ImpliedEnd, Td, false},
		{Headings, H4, true},
	}
	for _, tt := range tests {
		if got := tt.set.Has(tt.id); got != tt.want {
			t.Errorf("set.Has(%v) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestSetNeverContainsOther(t *testing.T) {
	all := []Set{Void, RawText, Formatting, Special, ScopeDefault, ScopeTable}
	for _, s := range all {
		if s.Has(Other) {
			t.Fatal("Other must never be a set member")
		}
	}
}

func TestEntitiesSpotChecks(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"amp", "&"},
		{"lt", "<"},
		{"gt", ">"},
		{"quot", "\""},
		{"AElig", "\u00c6"},
		{"nbsp", "\u00a0"},
		{"NotEqualTilde", "\u2242\u0338"}, // two-scalar expansion
		{"CounterClockwiseContourIntegral", "\u2233"},
	}
	for _, tt := range tests {
		got, ok := Entities[tt.name]
		if !ok {
			t.Errorf("Entities[%q] missing", tt.name)
			continue
		}
		if got != tt.want {
			t.Errorf("Entities[%q] = %q, want %q", tt.name, got, tt.want)
		}
	}
	if len(Entities) < 2000 {
		t.Errorf("entity table suspiciously small: %d entries", len(Entities))
	}
}

func TestLegacyEntitiesAreEntities(t *testing.T) {
	for name := range LegacyEntities {
		if _, ok := Entities[name]; !ok {
			t.Errorf("legacy entity %q not in Entities", name)
		}
	}
	if !LegacyEntities["amp"] || !LegacyEntities["lt"] || !LegacyEntities["nbsp"] {
		t.Error("expected amp/lt/nbsp in the legacy subset")
	}
	if LegacyEntities["alpha"] {
		t.Error("alpha must not be decodable without a semicolon")
	}
}

func TestNumericReplacements(t *testing.T) {
	if NumericReplacements[0x80] != 0x20AC {
		t.Error("0x80 must map to the euro sign")
	}
	if NumericReplacements[0x00] != 0xFFFD {
		t.Error("NUL must map to U+FFFD")
	}
	if _, ok := NumericReplacements[0x81]; ok {
		t.Error("0x81 has no windows-1252 replacement")
	}
}

func TestCharClasses(t *testing.T) {
	if !IsSpace('\t') || !IsSpace('\n') || !IsSpace('\f') || !IsSpace(' ') {
		t.Error("whitespace table incomplete")
	}
	if IsSpace('\r') {
		t.Error("CR is folded before classification and must not be whitespace here")
	}
	if !IsAlpha('Q') || !IsAlpha('q') || IsAlpha('1') {
		t.Error("alpha table wrong")
	}
	if !IsHexDigit('f') || !IsHexDigit('F') || !IsHexDigit('0') || IsHexDigit('g') {
		t.Error("hex table wrong")
	}
	if LowerASCII('A') != 'a' || LowerASCII('a') != 'a' || LowerASCII('0') != '0' {
		t.Error("LowerASCII wrong")
	}
}

func TestNoncharacters(t *testing.T) {
	for _, r := range []rune{0xFDD0, 0xFDEF, 0xFFFE, 0xFFFF, 0x1FFFE, 0x10FFFF} {
		if !IsNoncharacter(r) {
			t.Errorf("IsNoncharacter(%U) = false", r)
		}
	}
	for _, r := range []rune{'a', 0xFDCF, 0xFDF0, 0xFFFD} {
		if IsNoncharacter(r) {
			t.Errorf("IsNoncharacter(%U) = true", r)
		}
	}
}
