package fields

import (
	"encoding/json"
	"testing"
)

func TestConditionalShapes(t *testing.T) {
	fields := mustMap(t, `{"layout": "grid", "showTitle": true, "subtitle": "", "opts": {"dark": 1}}`)

	tests := []struct {
		name string
		src  string
		want bool
	}{
		{"null", `null`, true},
		{"empty list", `[]`, true},
		{"single value match", `{"onField": "layout", "isValue": "grid"}`, true},
		{"single value mismatch", `{"onField": "layout", "isValue": "list"}`, false},
		{"value strict type", `{"onField": "opts.dark", "isValue": "1"}`, false},
		{"nested value", `{"onField": "opts.dark", "isValue": 1}`, true},
		{"truthy", `{"onField": "showTitle", "isTruthy": true}`, true},
		{"falsy empty string", `{"onField": "subtitle", "isFalsy": true}`, true},
		{"falsy missing", `{"onField": "absent", "isFalsy": true}`, true},
		{"missing is not null", `{"onField": "absent", "isValue": null}`, false},
		{"list all", `[{"onField": "showTitle", "isTruthy": true}, {"onField": "subtitle", "isTruthy": true}]`, false},
		{"mode any", `{"mode": "any", "conditions": [{"onField": "showTitle", "isFalsy": true}, {"onField": "layout", "isValue": "grid"}]}`, true},
		{"mode default all", `{"conditions": [{"onField": "showTitle", "isFalsy": true}, {"onField": "layout", "isValue": "grid"}]}`, false},
		{"mode any none match", `{"mode": "any", "conditions": [{"onField": "subtitle", "isTruthy": true}]}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Conditional
			if err := json.Unmarshal([]byte(tt.src), &c); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got := c.Active(fields); got != tt.want {
				t.Errorf("Active() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConditionalErrors(t *testing.T) {
	bad := []string{
		`"text"`,
		`{"isTruthy": true}`,
		`{"onField": "a"}`,
		`{"mode": "some", "conditions": []}`,
		`[1]`,
	}
	for _, src := range bad {
		var c Conditional
		if err := json.Unmarshal([]byte(src), &c); err == nil {
			t.Errorf("%s: expected error", src)
		}
	}
}

func TestNilConditionalIsActive(t *testing.T) {
	var c *Conditional
	if !c.Active(nil) {
		t.Error("nil conditional must be active")
	}
}
