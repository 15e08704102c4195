// Package sqlutil builds the dynamic parts of parameterized PostgreSQL statements.
package sqlutil

import (
	"fmt"
	"sort"
	"strings"

	"github.com/justsurfingit/jobly-api/internal/apperr"
)

// ColumnMap translates request field names to column names.
// Fields without an entry are used as column names verbatim.
type ColumnMap map[string]string

func (m ColumnMap) Column(field string) string {
	if col, ok := m[field]; ok {
		return col
	}
	return field
}

// PartialUpdate turns a sparse field->value mapping into the SET clause of an
// UPDATE statement and its positional values.
//
//	{"firstName": "Ross", "age": 32} => `"age"=$1, "first_name"=$2`, [32, "Ross"]
//
// Fields are emitted in sorted order. Column names must come from a fixed set
// known to the caller; values are only ever bound as parameters.
func PartialUpdate(data map[string]any, columns ColumnMap) (string, []any, error) {
	if len(data) == 0 {
		return "", nil, apperr.BadRequest("No data")
	}

	fields := make([]string, 0, len(data))
	for field := range data {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	cols := make([]string, len(fields))
	values := make([]any, len(fields))
	for i, field := range fields {
		cols[i] = fmt.Sprintf(`"%s"=$%d`, columns.Column(field), i+1)
		values[i] = data[field]
	}

	return strings.Join(cols, ", "), values, nil
}
