package filter

import (
	"fmt"
	"strings"

	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"

	"github.com/hance08/payops/internal/model"
)

// FieldType describes a supported filter field type.
type FieldType string

const (
	FieldString FieldType = "string"
	FieldInt    FieldType = "int"
	FieldFloat  FieldType = "float"
)

// Fields defines filterable fields and their types.
type Fields map[string]FieldType

// RowFields are the identifiers a row filter expression may reference.
var RowFields = Fields{
	"status":         FieldString,
	"gateway":        FieldString,
	"name":           FieldString,
	"currency":       FieldString,
	"batch":          FieldString,
	"upload_id":      FieldString,
	"expedia_id":     FieldString,
	"reservation_id": FieldString,
	"account":        FieldString,
	"amount":         FieldFloat,
}

// Parse parses an AIP-160 filter expression for the provided fields.
func Parse(filterStr string, fields Fields) (*expr.Expr, error) {
	if strings.TrimSpace(filterStr) == "" {
		return nil, nil
	}

	decls, err := declarations(fields)
	if err != nil {
		return nil, err
	}

	filter, err := filtering.ParseFilterString(filterStr, decls)
	if err != nil {
		return nil, fmt.Errorf("parse filter: %w", err)
	}

	return filter.CheckedExpr.Expr, nil
}

func declarations(fields Fields) (*filtering.Declarations, error) {
	decls := []filtering.DeclarationOption{
		filtering.DeclareStandardFunctions(),
		mixedNumericComparisons(),
	}
	for name, kind := range fields {
		switch kind {
		case FieldString:
			decls = append(decls, filtering.DeclareIdent(name, filtering.TypeString))
		case FieldInt:
			decls = append(decls, filtering.DeclareIdent(name, filtering.TypeInt))
		case FieldFloat:
			decls = append(decls, filtering.DeclareIdent(name, filtering.TypeFloat))
		default:
			return nil, fmt.Errorf("unsupported field type for %s", name)
		}
	}

	return filtering.NewDeclarations(decls...)
}

// mixedNumericComparisons lets `amount > 100` type-check against a float field
// without forcing users to write `100.0`.
func mixedNumericComparisons() filtering.DeclarationOption {
	ops := []string{
		filtering.FunctionEquals,
		filtering.FunctionNotEquals,
		filtering.FunctionLessThan,
		filtering.FunctionLessEquals,
		filtering.FunctionGreaterThan,
		filtering.FunctionGreaterEquals,
	}
	return func(d *filtering.Declarations) error {
		for _, op := range ops {
			declare := filtering.DeclareFunction(op,
				filtering.NewFunctionOverload(op+"_float_int", filtering.TypeBool, filtering.TypeFloat, filtering.TypeInt),
				filtering.NewFunctionOverload(op+"_int_float", filtering.TypeBool, filtering.TypeInt, filtering.TypeFloat),
			)
			if err := declare(d); err != nil {
				return err
			}
		}
		return nil
	}
}

// RowResolver exposes a row's filterable fields by identifier.
func RowResolver(row model.Row) Resolver {
	return func(name string) (any, bool) {
		switch name {
		case "status":
			return string(row.Status), true
		case "gateway":
			return string(row.Gateway), true
		case "name":
			return row.GuestName, true
		case "currency":
			return row.Currency, true
		case "batch":
			return row.Batch, true
		case "upload_id":
			return row.UploadID, true
		case "expedia_id":
			return row.ExpediaID, true
		case "reservation_id":
			return row.ReservationID, true
		case "account":
			if row.Stripe != nil {
				return row.Stripe.ConnectedAccount, true
			}
			return "", true
		case "amount":
			return row.Amount.InexactFloat64(), true
		default:
			return nil, false
		}
	}
}

// MatchRows returns the rows of a loaded page that satisfy filterStr, in order.
// An empty filter matches everything.
func MatchRows(rows []model.Row, filterStr string) ([]model.Row, error) {
	e, err := Parse(filterStr, RowFields)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return rows, nil
	}

	matched := make([]model.Row, 0, len(rows))
	for _, row := range rows {
		ok, err := Evaluate(e, RowResolver(row))
		if err != nil {
			return nil, fmt.Errorf("evaluate filter on row %s: %w", row.ID, err)
		}
		if ok {
			matched = append(matched, row)
		}
	}
	return matched, nil
}
