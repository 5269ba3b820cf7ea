package ir

import "fmt"

// DataType is the closed set of value types known to the IR.
type DataType int

const (
	Integer DataType = iota
	Float
	String
	Bool
)

var dataTypeNames = [...]string{
	Integer: "Integer",
	Float:   "Float",
	String:  "String",
	Bool:    "Bool",
}

// DataTypes lists every DataType in declaration order. Cast parsing walks it.
var DataTypes = []DataType{Integer, Float, String, Bool}

func (t DataType) String() string {
	if int(t) >= 0 && int(t) < len(dataTypeNames) {
		return dataTypeNames[t]
	}
	return fmt.Sprintf("DataType(%d)", int(t))
}
