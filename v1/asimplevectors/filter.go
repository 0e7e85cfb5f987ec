package asimplevectors

import (
	"fmt"
	"strconv"
	"strings"
)

// FilterCondition is one clause of a FilterSet.
type FilterCondition interface {
	expression() (string, error)
}

// FilterSet builds the metadata filter expression accepted by search and
// vector listing, e.g. "meta == 'first' OR meta == 'second'".
//
// Must conditions are joined with AND, Should conditions with OR, and the
// two groups with AND. An empty set renders as "".
//
//	filter, err := (&asimplevectors.FilterSet{
//	    Must: []asimplevectors.FilterCondition{
//	        &asimplevectors.MatchCondition{Field: "lang", Value: "en"},
//	    },
//	    Should: []asimplevectors.FilterCondition{
//	        &asimplevectors.MatchCondition{Field: "meta", Value: "first"},
//	        &asimplevectors.MatchCondition{Field: "meta", Value: "second"},
//	    },
//	}).Build()
//	// lang == 'en' AND (meta == 'first' OR meta == 'second')
type FilterSet struct {
	Must   []FilterCondition
	Should []FilterCondition
}

// Build renders the expression.
func (f *FilterSet) Build() (string, error) {
	if f == nil {
		return "", nil
	}
	must, err := joinConditions(f.Must, " AND ")
	if err != nil {
		return "", err
	}
	should, err := joinConditions(f.Should, " OR ")
	if err != nil {
		return "", err
	}

	switch {
	case must == "":
		return should, nil
	case should == "":
		return must, nil
	case len(f.Should) > 1:
		return must + " AND (" + should + ")", nil
	default:
		return must + " AND " + should, nil
	}
}

// MatchCondition is field == value.
type MatchCondition struct {
	Field string
	Value interface{}
}

func (c *MatchCondition) expression() (string, error) {
	return comparison(c.Field, "==", c.Value)
}

// MatchAnyCondition matches when field equals one of Values.
type MatchAnyCondition struct {
	Field  string
	Values []interface{}
}

func (c *MatchAnyCondition) expression() (string, error) {
	if len(c.Values) == 0 {
		return "", invalidArgument("filter on %q: no values to match", c.Field)
	}
	parts := make([]string, 0, len(c.Values))
	for _, v := range c.Values {
		expr, err := comparison(c.Field, "==", v)
		if err != nil {
			return "", err
		}
		parts = append(parts, expr)
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return "(" + strings.Join(parts, " OR ") + ")", nil
}

// NumericRange bounds a numeric field. Nil bounds are open.
type NumericRange struct {
	Gt  *float64
	Gte *float64
	Lt  *float64
	Lte *float64
}

// NumericRangeCondition restricts a numeric field to Range.
type NumericRangeCondition struct {
	Field string
	Range NumericRange
}

func (c *NumericRangeCondition) expression() (string, error) {
	var parts []string
	for _, b := range []struct {
		op    string
		bound *float64
	}{
		{">", c.Range.Gt},
		{">=", c.Range.Gte},
		{"<", c.Range.Lt},
		{"<=", c.Range.Lte},
	} {
		if b.bound == nil {
			continue
		}
		expr, err := comparison(c.Field, b.op, *b.bound)
		if err != nil {
			return "", err
		}
		parts = append(parts, expr)
	}
	if len(parts) == 0 {
		return "", invalidArgument("filter on %q: range has no bounds", c.Field)
	}
	return strings.Join(parts, " AND "), nil
}

func joinConditions(conds []FilterCondition, sep string) (string, error) {
	parts := make([]string, 0, len(conds))
	for _, c := range conds {
		expr, err := c.expression()
		if err != nil {
			return "", err
		}
		parts = append(parts, expr)
	}
	return strings.Join(parts, sep), nil
}

func comparison(field, op string, value interface{}) (string, error) {
	if field == "" || strings.ContainsAny(field, " '\"()=<>!") {
		return "", invalidArgument("invalid filter field %q", field)
	}
	lit, err := literal(value)
	if err != nil {
		return "", fmt.Errorf("filter on %q: %w", field, err)
	}
	return field + " " + op + " " + lit, nil
}

func literal(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		// The expression syntax has no escape for quotes.
		if strings.Contains(v, "'") {
			return "", invalidArgument("value %q contains a single quote", v)
		}
		return "'" + v + "'", nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	default:
		return "", invalidArgument("unsupported value type %T", value)
	}
}
