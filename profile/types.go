package profile

import (
	"encoding/json"
	"strings"
)

const (
	UnknownType ValueType = iota
	NullType
	StringType
	IntType
	FloatType
	BoolType
	DateTimeType
	CategoryType
	ObjectType
)

// ValueType is the storage type of a column.
type ValueType uint8

func (v ValueType) String() string {
	switch v {
	case NullType:
		return "null"
	case StringType:
		return "string"
	case IntType:
		return "integer"
	case FloatType:
		return "float"
	case BoolType:
		return "boolean"
	case DateTimeType:
		return "datetime"
	case CategoryType:
		return "category"
	case ObjectType:
		return "object"
	}

	return ""
}

func (v ValueType) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

func (v *ValueType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	*v = ParseValueType(s)

	return nil
}

// ParseValueType returns the type for a name produced by String. Unknown
// names map to UnknownType.
func ParseValueType(s string) ValueType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "null":
		return NullType
	case "string", "text":
		return StringType
	case "integer", "int":
		return IntType
	case "float":
		return FloatType
	case "boolean", "bool":
		return BoolType
	case "datetime":
		return DateTimeType
	case "category":
		return CategoryType
	case "object":
		return ObjectType
	}

	return UnknownType
}

var typeGeneralizationMap = map[[2]ValueType]ValueType{
	{IntType, FloatType}: FloatType,
}

// GeneralizeType takes two types and returns the more general
// type of the two with string being the most general if both
// are not null types.
func GeneralizeType(t1, t2 ValueType) ValueType {
	if t1 == t2 {
		return t1
	}

	if t1 == NullType || t1 == UnknownType {
		return t2
	}

	if t2 == NullType || t2 == UnknownType {
		return t1
	}

	key := [2]ValueType{t1, t2}

	if t, ok := typeGeneralizationMap[key]; ok {
		return t
	}

	key[0], key[1] = key[1], key[0]

	if t, ok := typeGeneralizationMap[key]; ok {
		return t
	}

	// Mixed documents and scalars stay opaque.
	if t1 == ObjectType || t2 == ObjectType {
		return ObjectType
	}

	return StringType
}
