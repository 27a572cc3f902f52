package fields

import (
	"encoding/json"
	"fmt"

	yaml "gopkg.in/yaml.v3"

	"sitec/common"
)

// Op is a single condition test.
type Op int

const (
	OpIsValue Op = iota
	OpIsTruthy
	OpIsFalsy
)

// Condition tests one field addressed by path.
type Condition struct {
	OnField string
	Op      Op
	Value   Value // used by OpIsValue only
}

// Conditional is a normalized visibility rule. All three accepted input shapes
// (single condition, list of conditions, {mode, conditions}) decode into it.
// Empty conditional is always active.
type Conditional struct {
	Mode       common.ConditionMode
	Conditions []Condition
}

// Test evaluates condition against field map.
func (c Condition) Test(fields Map) bool {
	v, ok := fields.Lookup(c.OnField)
	switch c.Op {
	case OpIsTruthy:
		return v.Truthy()
	case OpIsFalsy:
		return !v.Truthy()
	default:
		// absent field never matches, not even an explicit null
		return ok && v.Equal(c.Value)
	}
}

// Active reports whether a field guarded by the conditional should be shown.
func (c *Conditional) Active(fields Map) bool {
	if c == nil || len(c.Conditions) == 0 {
		return true
	}
	if c.Mode == common.ConditionModeAny {
		for _, cond := range c.Conditions {
			if cond.Test(fields) {
				return true
			}
		}
		return false
	}
	for _, cond := range c.Conditions {
		if !cond.Test(fields) {
			return false
		}
	}
	return true
}

// ParseConditional builds conditional from a decoded field value.
func ParseConditional(v Value) (*Conditional, error) {
	switch v.Kind() {
	case KindNull:
		return &Conditional{Mode: common.ConditionModeAll}, nil
	case KindList:
		conds, err := parseConditions(v.List())
		if err != nil {
			return nil, err
		}
		return &Conditional{Mode: common.ConditionModeAll, Conditions: conds}, nil
	case KindMap:
		m := v.Map()
		if list, ok := m["conditions"]; ok && list.Kind() == KindList {
			mode := common.ConditionModeAll
			if mv, ok := m["mode"]; ok && !mv.IsNull() {
				parsed, err := common.ParseConditionMode(mv.Text())
				if err != nil {
					return nil, err
				}
				mode = parsed
			}
			conds, err := parseConditions(list.List())
			if err != nil {
				return nil, err
			}
			return &Conditional{Mode: mode, Conditions: conds}, nil
		}
		cond, err := parseCondition(m)
		if err != nil {
			return nil, err
		}
		return &Conditional{Mode: common.ConditionModeAll, Conditions: []Condition{cond}}, nil
	default:
		return nil, fmt.Errorf("conditional must be an object or a list, got %s", v.Kind())
	}
}

func parseConditions(items []Value) ([]Condition, error) {
	conds := make([]Condition, 0, len(items))
	for i, item := range items {
		if item.Kind() != KindMap {
			return nil, fmt.Errorf("condition %d: expected object, got %s", i, item.Kind())
		}
		cond, err := parseCondition(item.Map())
		if err != nil {
			return nil, fmt.Errorf("condition %d: %w", i, err)
		}
		conds = append(conds, cond)
	}
	return conds, nil
}

func parseCondition(m Map) (Condition, error) {
	on, ok := m["onField"]
	if !ok || on.Kind() != KindString {
		return Condition{}, fmt.Errorf("condition requires string onField")
	}
	c := Condition{OnField: on.Text()}
	switch {
	case has(m, "isTruthy"):
		c.Op = OpIsTruthy
	case has(m, "isFalsy"):
		c.Op = OpIsFalsy
	case has(m, "isValue"):
		c.Op = OpIsValue
		c.Value = m["isValue"]
	default:
		return Condition{}, fmt.Errorf("condition on %q has no test", c.OnField)
	}
	return c, nil
}

func has(m Map, key string) bool {
	_, ok := m[key]
	return ok
}

func (c *Conditional) UnmarshalJSON(data []byte) error {
	var v Value
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	parsed, err := ParseConditional(v)
	if err != nil {
		return err
	}
	*c = *parsed
	return nil
}

func (c *Conditional) UnmarshalYAML(node *yaml.Node) error {
	var v Value
	if err := node.Decode(&v); err != nil {
		return err
	}
	parsed, err := ParseConditional(v)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*c = *parsed
	return nil
}
