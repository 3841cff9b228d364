package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Ingredient is one line of a recipe's ingredient list.
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// Instruction is a numbered preparation step.
type Instruction struct {
	Step        int    `json:"step"`
	Description string `json:"description"`
}

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	return jsonbValue(a, a == nil)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	return jsonbScan(value, a)
}

// Ingredients is stored as a JSONB array of {name, quantity}.
type Ingredients []Ingredient

func (a Ingredients) Value() (driver.Value, error) {
	return jsonbValue(a, a == nil)
}

func (a *Ingredients) Scan(value interface{}) error {
	return jsonbScan(value, a)
}

// Instructions is stored as a JSONB array of {step, description}.
type Instructions []Instruction

func (a Instructions) Value() (driver.Value, error) {
	return jsonbValue(a, a == nil)
}

func (a *Instructions) Scan(value interface{}) error {
	return jsonbScan(value, a)
}

// jsonbValue encodes v for a JSONB column. Nil slices are written as SQL NULL
// so that "absent" survives a round trip.
func jsonbValue(v interface{}, isNil bool) (driver.Value, error) {
	if isNil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonbScan(value interface{}, dst interface{}) error {
	var bytes []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported JSONB source type %T", value)
	}
	if len(bytes) == 0 || string(bytes) == "null" {
		return nil
	}
	return json.Unmarshal(bytes, dst)
}
