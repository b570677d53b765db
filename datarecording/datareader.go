package datarecording

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/fatih/structs"
)

// Filter narrows a Select. Where and OrderBy are SQL fragments without their
// keywords; Where may use ? placeholders bound to Args.
type Filter struct {
	Where   string
	Args    []any
	OrderBy string
}

// Reader reads back the tables of a recording.
type Reader struct {
	db *sql.DB
}

// OpenReader opens an existing recording. It does not create missing files.
func OpenReader(filename string) (*Reader, error) {
	if _, err := os.Stat(filename); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, err
	}

	return &Reader{db: db}, nil
}

// NewReaderWithDB reads from an open database.
func NewReaderWithDB(db *sql.DB) *Reader {
	return &Reader{db: db}
}

// Close closes the recording.
func (r *Reader) Close() error {
	return r.db.Close()
}

// RunInfos returns what a RunRecorder wrote, in insertion order.
func (r *Reader) RunInfos(ctx context.Context) ([]RunInfo, error) {
	return Select[RunInfo](ctx, r, RunTable, Filter{OrderBy: "rowid"})
}

// Select reads the rows of table into values of T. T must be the struct the
// table was created with; its fields name the selected columns.
func Select[T any](
	ctx context.Context,
	r *Reader,
	table string,
	filter Filter,
) ([]T, error) {
	var sample T
	if err := checkStructFields(sample); err != nil {
		return nil, err
	}

	query := "SELECT " + strings.Join(structs.Names(sample), ", ") +
		" FROM " + table

	if filter.Where != "" {
		query += " WHERE " + filter.Where
	}

	if filter.OrderBy != "" {
		query += " ORDER BY " + filter.OrderBy
	}

	rows, err := r.db.QueryContext(ctx, query, filter.Args...)
	if err != nil {
		return nil, fmt.Errorf("select from %s: %w", table, err)
	}
	defer rows.Close()

	var out []T

	for rows.Next() {
		var row T

		fields := reflect.ValueOf(&row).Elem()
		targets := make([]any, fields.NumField())
		for i := range targets {
			targets[i] = fields.Field(i).Addr().Interface()
		}

		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}

		out = append(out, row)
	}

	return out, rows.Err()
}
