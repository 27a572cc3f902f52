package fields

import (
	"encoding/json"
	"math"
	"testing"

	yaml "gopkg.in/yaml.v3"
)

const sampleJSON = `{
	"title": "Hello",
	"count": 3,
	"enabled": false,
	"nothing": null,
	"items": [
		{"label": "one", "value": 1},
		{"label": "two", "value": 2}
	],
	"group": {"nested": {"deep": "yes"}}
}`

func mustMap(t *testing.T, src string) Map {
	t.Helper()
	var m Map
	if err := json.Unmarshal([]byte(src), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return m
}

func TestLookup(t *testing.T) {
	m := mustMap(t, sampleJSON)

	tests := []struct {
		path   string
		want   string
		kind   Kind
		exists bool
	}{
		{"title", "Hello", KindString, true},
		{"count", "3", KindNumber, true},
		{"enabled", "false", KindBool, true},
		{"nothing", "", KindNull, true},
		{"items.1.label", "two", KindString, true},
		{"items.0.value", "1", KindNumber, true},
		{"group.nested.deep", "yes", KindString, true},
		{"group..nested.deep", "yes", KindString, true},
		{"items.5.label", "", KindNull, false},
		{"items.x", "", KindNull, false},
		{"title.length", "", KindNull, false},
		{"missing", "", KindNull, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			v, ok := m.Lookup(tt.path)
			if ok != tt.exists {
				t.Fatalf("Lookup(%q) exists = %v, want %v", tt.path, ok, tt.exists)
			}
			if v.Kind() != tt.kind {
				t.Errorf("Lookup(%q) kind = %s, want %s", tt.path, v.Kind(), tt.kind)
			}
			if got := v.Text(); got != tt.want {
				t.Errorf("Lookup(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestLookupEmptyPathReturnsRoot(t *testing.T) {
	m := mustMap(t, sampleJSON)
	v, ok := m.Lookup("")
	if !ok || v.Kind() != KindMap {
		t.Fatalf("Lookup(\"\") = %s, %v; want map, true", v.Kind(), ok)
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"null", Null(), false},
		{"false", NewBool(false), false},
		{"true", NewBool(true), true},
		{"zero", NewNumber(0), false},
		{"nan", NewNumber(math.NaN()), false},
		{"number", NewNumber(-1), true},
		{"empty string", NewString(""), false},
		{"string", NewString("0"), true},
		{"empty list", NewList(), true},
		{"empty map", NewMap(nil), true},
	}
	for _, tt := range tests {
		if got := tt.v.Truthy(); got != tt.want {
			t.Errorf("%s: Truthy() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestEqual(t *testing.T) {
	if !NewString("a").Equal(NewString("a")) {
		t.Error("equal strings should be equal")
	}
	if NewString("1").Equal(NewNumber(1)) {
		t.Error("string and number must not be equal")
	}
	if !Null().Equal(Null()) {
		t.Error("null should equal null")
	}
	l := NewList(NewString("a"))
	if l.Equal(l) {
		t.Error("composite values are compared by identity and never equal")
	}
}

func TestNativeRoundTrip(t *testing.T) {
	m := mustMap(t, sampleJSON)
	native := m.Native()

	items, ok := native["items"].([]any)
	if !ok || len(items) != 2 {
		t.Fatalf("items = %#v", native["items"])
	}
	first, ok := items[0].(map[string]any)
	if !ok || first["label"] != "one" || first["value"] != float64(1) {
		t.Errorf("items[0] = %#v", items[0])
	}
	if native["nothing"] != nil {
		t.Errorf("nothing = %#v, want nil", native["nothing"])
	}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	again := mustMap(t, string(data))
	if v, _ := again.Lookup("group.nested.deep"); v.Text() != "yes" {
		t.Errorf("round trip lost nested value: %s", data)
	}
}

func TestUnmarshalYAML(t *testing.T) {
	src := `
title: Hello
count: 3
items:
  - label: one
  - label: two
1: numeric key
`
	var m Map
	if err := yaml.Unmarshal([]byte(src), &m); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if v, _ := m.Lookup("items.1.label"); v.Text() != "two" {
		t.Errorf("items.1.label = %q", v.Text())
	}
	if v, _ := m.Lookup("count"); v.Kind() != KindNumber || v.Number() != 3 {
		t.Errorf("count = %v (%s)", v, v.Kind())
	}
	if v, _ := m.Lookup("1"); v.Text() != "numeric key" {
		t.Errorf("numeric key = %q", v.Text())
	}
}

func TestMapUnmarshalRejectsScalars(t *testing.T) {
	var m Map
	if err := json.Unmarshal([]byte(`"text"`), &m); err == nil {
		t.Error("expected error for non object fields")
	}
}
