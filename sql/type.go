// Copyright 2024 CascadeDB, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sql

import (
	"fmt"
	"reflect"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// Type is the semantic type of a column or expression. The planner only needs
// identity and literal conversion; evaluation lives in the executor.
type Type interface {
	// Name returns the canonical name of the type.
	Name() string
	// InternalType returns the underlying Go kind values of this type use.
	InternalType() reflect.Kind
	// Convert converts a literal value to the representation of this type.
	Convert(v interface{}) (interface{}, error)
}

var (
	// Null is the type of the NULL literal.
	Null nullType
	// Boolean is a true/false type.
	Boolean booleanType
	// BigInt is a 64-bit signed integer type.
	BigInt bigIntType
	// Double is a 64-bit floating point type.
	Double doubleType
	// Varchar is a variable-length string type.
	Varchar varcharType
	// Varbinary is a variable-length byte string type.
	Varbinary varbinaryType
	// Timestamp is a point-in-time type with second precision.
	Timestamp timestampType
)

type nullType struct{}

func (t nullType) Name() string                { return "null" }
func (t nullType) InternalType() reflect.Kind  { return reflect.Invalid }
func (t nullType) Convert(v interface{}) (interface{}, error) {
	if v != nil {
		return nil, ErrInvalidType.New("null")
	}
	return nil, nil
}

type booleanType struct{}

func (t booleanType) Name() string               { return "boolean" }
func (t booleanType) InternalType() reflect.Kind { return reflect.Bool }
func (t booleanType) Convert(v interface{}) (interface{}, error) {
	return cast.ToBoolE(v)
}

type bigIntType struct{}

func (t bigIntType) Name() string               { return "bigint" }
func (t bigIntType) InternalType() reflect.Kind { return reflect.Int64 }
func (t bigIntType) Convert(v interface{}) (interface{}, error) {
	return cast.ToInt64E(v)
}

type doubleType struct{}

func (t doubleType) Name() string               { return "double" }
func (t doubleType) InternalType() reflect.Kind { return reflect.Float64 }
func (t doubleType) Convert(v interface{}) (interface{}, error) {
	return cast.ToFloat64E(v)
}

type varcharType struct{}

func (t varcharType) Name() string               { return "varchar" }
func (t varcharType) InternalType() reflect.Kind { return reflect.String }
func (t varcharType) Convert(v interface{}) (interface{}, error) {
	return cast.ToStringE(v)
}

type varbinaryType struct{}

func (t varbinaryType) Name() string               { return "varbinary" }
func (t varbinaryType) InternalType() reflect.Kind { return reflect.Slice }
func (t varbinaryType) Convert(v interface{}) (interface{}, error) {
	switch v := v.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, ErrInvalidType.New(t.Name())
	}
}

type timestampType struct{}

func (t timestampType) Name() string               { return "timestamp" }
func (t timestampType) InternalType() reflect.Kind { return reflect.Int64 }
func (t timestampType) Convert(v interface{}) (interface{}, error) {
	return cast.ToInt64E(v)
}

// DecimalType is a fixed-precision numeric type.
type DecimalType struct {
	Precision int32
	Scale     int32
}

// Decimal returns a decimal type with the given precision and scale.
func Decimal(precision, scale int32) DecimalType {
	return DecimalType{Precision: precision, Scale: scale}
}

func (t DecimalType) Name() string {
	return fmt.Sprintf("decimal(%d,%d)", t.Precision, t.Scale)
}

func (t DecimalType) InternalType() reflect.Kind { return reflect.Struct }

func (t DecimalType) Convert(v interface{}) (interface{}, error) {
	switch v := v.(type) {
	case decimal.Decimal:
		return v, nil
	case string:
		return decimal.NewFromString(v)
	case int64:
		return decimal.NewFromInt(v), nil
	case float64:
		return decimal.NewFromFloat(v), nil
	default:
		return nil, ErrInvalidType.New(t.Name())
	}
}

// TypesEqual reports whether two types are the same semantic type.
func TypesEqual(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Name() == b.Name()
}
