package endpoint

import (
	"fmt"
	"strings"

	"github.com/iudanet/possync/internal/models"
	"github.com/iudanet/possync/internal/validation"
)

// Placeholder renders the n-th (1-based) bind parameter of a SQL dialect
type Placeholder func(n int) string

// QuestionPlaceholder is used by SQLite
func QuestionPlaceholder(int) string { return "?" }

// DollarPlaceholder is used by PostgreSQL
func DollarPlaceholder(n int) string { return fmt.Sprintf("$%d", n) }

// NumberedPlaceholder is the ?NNN form of SQLite, for a parameter used more than once
func NumberedPlaceholder(n int) string { return fmt.Sprintf("?%d", n) }

// TimeCompare renders "column > value" for a timestamp column
type TimeCompare func(column, value string) string

// SQLiteAfter compares instants, so "2024-01-01 13:00:00", "...T13:00:00Z" and
// values with a zone offset order correctly. julianday keeps milliseconds only,
// text order breaks ties inside one millisecond. value is used three times and
// must be a numbered parameter.
func SQLiteAfter(column, value string) string {
	return fmt.Sprintf("(julianday(%[1]s) > julianday(%[2]s) OR (julianday(%[1]s) = julianday(%[2]s) AND %[1]s > %[2]s))",
		column, value)
}

// QuoteIdent quotes a table or column name
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// ValidateTable checks every identifier of the table descriptor
func ValidateTable(table models.Table) error {
	if err := validation.ValidateTableName(table.Name); err != nil {
		return err
	}
	for _, col := range []string{table.IDColumn, table.SyncedColumn, table.UpdatedColumn} {
		if err := validation.ValidateColumnName(col); err != nil {
			return fmt.Errorf("table %s: %w", table.Name, err)
		}
	}
	return nil
}

// BuildSelect renders SELECT * FROM table WHERE column op placeholder.
// OpGt is rendered by after when it is set. The query takes one bind argument.
func BuildSelect(table models.Table, filter Filter, ph Placeholder, after TimeCompare) (string, error) {
	if err := ValidateTable(table); err != nil {
		return "", err
	}
	if err := filter.Validate(); err != nil {
		return "", err
	}

	where := fmt.Sprintf("%s %s %s", QuoteIdent(filter.Column), filter.Op.SQL(), ph(1))
	if filter.Op == OpGt && after != nil {
		where = after(QuoteIdent(filter.Column), ph(1))
	}

	query := fmt.Sprintf("SELECT * FROM %s WHERE %s ORDER BY %s",
		QuoteIdent(table.Name),
		where,
		QuoteIdent(table.IDColumn),
	)
	return query, nil
}

// BuildUpsert renders INSERT ... ON CONFLICT (id) DO UPDATE for the record columns.
// Returns the query and the bind arguments in column order.
func BuildUpsert(table models.Table, record models.Record, ph Placeholder) (string, []any, error) {
	if err := ValidateTable(table); err != nil {
		return "", nil, err
	}
	if _, err := record.ID(table.IDColumn); err != nil {
		return "", nil, err
	}

	cols := record.Columns()
	quoted := make([]string, 0, len(cols))
	placeholders := make([]string, 0, len(cols))
	updates := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols))

	for i, col := range cols {
		if err := validation.ValidateColumnName(col); err != nil {
			return "", nil, fmt.Errorf("table %s: %w", table.Name, err)
		}
		q := QuoteIdent(col)
		quoted = append(quoted, q)
		placeholders = append(placeholders, ph(i+1))
		args = append(args, record[col])
		if col != table.IDColumn {
			updates = append(updates, fmt.Sprintf("%s = excluded.%s", q, q))
		}
	}

	conflict := "DO NOTHING"
	if len(updates) > 0 {
		conflict = "DO UPDATE SET " + strings.Join(updates, ", ")
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) %s",
		QuoteIdent(table.Name),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "),
		QuoteIdent(table.IDColumn),
		conflict,
	)
	return query, args, nil
}

// BuildUpdateField renders UPDATE table SET field = ? WHERE id = ?
func BuildUpdateField(table models.Table, field string, ph Placeholder) (string, error) {
	if err := ValidateTable(table); err != nil {
		return "", err
	}
	if err := validation.ValidateColumnName(field); err != nil {
		return "", err
	}

	query := fmt.Sprintf("UPDATE %s SET %s = %s WHERE %s = %s",
		QuoteIdent(table.Name),
		QuoteIdent(field),
		ph(1),
		QuoteIdent(table.IDColumn),
		ph(2),
	)
	return query, nil
}
