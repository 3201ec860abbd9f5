package nullaxe

import (
	"bytes"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/JohnTocci/Nullaxe/frame"
	"github.com/JohnTocci/Nullaxe/profile"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
)

var (
	badChars = regexp.MustCompile(`[^a-z0-9_\-\.\+]+`)
	sepChars = regexp.MustCompile(`[_\-\.\+]+`)

	sqlTmpl = template.New("sql")

	queryTmpls = map[string]string{
		"createSchema":      `create schema if not exists {{ident .Schema}}`,
		"createTable":       `create table if not exists {{ident .Schema}}.{{ident .Table}} ( {{.Columns}} )`,
		"createCstoreTable": `create foreign table if not exists {{ident .Schema}}.{{ident .Table}} ( {{.Columns}} ) server cstore_server options (compression 'pglz')`,
		"dropTable":         `drop table if exists {{ident .Schema}}.{{ident .Table}}`,
		"renameTable":       `alter table {{ident .Schema}}.{{ident .TempTable}} rename to {{ident .Table}}`,
		"analyzeTable":      `analyze {{ident .Schema}}.{{ident .Table}}`,
	}
)

func init() {
	sqlTmpl.Funcs(template.FuncMap{
		"ident": pq.QuoteIdentifier,
	})

	for name, tmpl := range queryTmpls {
		template.Must(sqlTmpl.New(name).Parse(tmpl))
	}
}

// Map of inferred types to SQL types.
var sqlTypeMap = map[profile.ValueType]string{
	profile.UnknownType:  "text",
	profile.NullType:     "text",
	profile.StringType:   "text",
	profile.IntType:      "bigint",
	profile.FloatType:    "double precision",
	profile.BoolType:     "boolean",
	profile.DateTimeType: "timestamp",
	profile.CategoryType: "text",
	profile.ObjectType:   "jsonb",
}

// Schema is the table definition derived from an inferred frame.
type Schema struct {
	Cstore bool
	Fields []*Field `json:"fields"`
}

// NewSchema maps the frame's column types and statistics to column
// definitions.
func NewSchema(f *frame.Frame) *Schema {
	p := f.Profile(nil)
	fields := make([]*Field, 0, f.Width())

	for _, n := range f.Names() {
		pf := p.Fields[n]

		fields = append(fields, &Field{
			Name:     n,
			Type:     sqlTypeMap[pf.Type],
			Unique:   pf.Unique && p.RecordCount > 1,
			Nullable: pf.Nullable || p.RecordCount == 0,
		})
	}

	return &Schema{
		Fields: fields,
	}
}

// Field is a data definition on a schema.
type Field struct {
	// Name is the unique name of the field with respect to the schema.
	Name string `json:"name"`

	// Type is the SQL type of the values that can be assigned to
	// this field.
	Type string `json:"type"`

	// If true, values across a set of records are expected to be unique.
	Unique bool `json:"unique"`

	// If true, values can be "null", that is, not specified.
	Nullable bool `json:"nullable"`
}

type tableData struct {
	Schema    string
	TempTable string
	Table     string
	Columns   string
}

// CleanFieldName lowercases n and collapses anything outside
// [a-z0-9_] into single underscores.
func CleanFieldName(n string) string {
	n = strings.ToLower(n)
	n = badChars.ReplaceAllString(n, "_")
	return sepChars.ReplaceAllString(n, "_")
}

func renderSQL(name string, data *tableData) (string, error) {
	var b bytes.Buffer
	if err := sqlTmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func createTableSQL(schemaName, tableName string, s *Schema) (string, error) {
	columns := make([]string, len(s.Fields))

	for i, f := range s.Fields {
		var col string

		if f.Unique {
			col = "%s %s unique"
		} else if !f.Nullable {
			col = "%s %s not null"
		} else {
			col = "%s %s"
		}

		columns[i] = fmt.Sprintf(col, pq.QuoteIdentifier(CleanFieldName(f.Name)), f.Type)
	}

	tmplName := "createTable"
	if s.Cstore {
		tmplName = "createCstoreTable"
	}

	return renderSQL(tmplName, &tableData{
		Schema:  schemaName,
		Table:   tableName,
		Columns: strings.Join(columns, ", "),
	})
}

type Client struct {
	db *sql.DB
}

// execTx calls a function within a transaction.
func (c *Client) execTx(fn func(tx *sql.Tx) error) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// exec renders and runs the named statements in one transaction.
func (c *Client) exec(data *tableData, names ...string) error {
	return c.execTx(func(tx *sql.Tx) error {
		for _, name := range names {
			q, err := renderSQL(name, data)
			if err != nil {
				return err
			}

			if _, err := tx.Exec(q); err != nil {
				return errors.Wrapf(err, "%s\n%s", name, q)
			}
		}

		return nil
	})
}

// Replace loads the frame into a temporary table and swaps it in place
// of tableName.
func (c *Client) Replace(schemaName, tableName string, tableSchema *Schema, f *frame.Frame) (int64, error) {
	tempTableName := uuid.NewV4().String()

	if err := c.exec(&tableData{Schema: schemaName}, "createSchema"); err != nil {
		return 0, err
	}

	if err := c.createTable(schemaName, tempTableName, tableSchema); err != nil {
		return 0, err
	}

	n, err := c.copyData(schemaName, tempTableName, f)
	if err != nil {
		return 0, err
	}

	data := &tableData{
		Schema:    schemaName,
		TempTable: tempTableName,
		Table:     tableName,
	}

	if err := c.exec(data, "dropTable", "renameTable"); err != nil {
		return n, err
	}

	return n, c.exec(data, "analyzeTable")
}

// Append creates tableName if needed and copies the frame into it.
func (c *Client) Append(schemaName, tableName string, tableSchema *Schema, f *frame.Frame) (int64, error) {
	if err := c.exec(&tableData{Schema: schemaName}, "createSchema"); err != nil {
		return 0, err
	}

	if err := c.createTable(schemaName, tableName, tableSchema); err != nil {
		return 0, err
	}

	n, err := c.copyData(schemaName, tableName, f)
	if err != nil {
		return 0, err
	}

	return n, c.exec(&tableData{Schema: schemaName, Table: tableName}, "analyzeTable")
}

func (c *Client) createTable(schemaName, tableName string, tableSchema *Schema) error {
	q, err := createTableSQL(schemaName, tableName, tableSchema)
	if err != nil {
		return err
	}

	return c.execTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(q); err != nil {
			return errors.Wrapf(err, "error creating table\n%s", q)
		}
		return nil
	})
}

func (c *Client) copyData(schemaName, tableName string, f *frame.Frame) (int64, error) {
	cols := f.Columns()
	names := make([]string, len(cols))

	for i, col := range cols {
		names[i] = CleanFieldName(col.Name)
	}

	var n int64

	err := c.execTx(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(pq.CopyInSchema(schemaName, tableName, names...))
		if err != nil {
			return errors.Wrap(err, "error preparing copy")
		}

		cargs := make([]interface{}, len(cols))

		for i := 0; i < f.Len(); i++ {
			for j, col := range cols {
				cargs[j] = col.Value(i)
			}

			if _, err := stmt.Exec(cargs...); err != nil {
				return errors.Wrapf(err, "error sending row %d", i)
			}

			n++
		}

		// Empty exec to flush the buffer.
		if _, err := stmt.Exec(); err != nil {
			return errors.Wrap(err, "error executing copy")
		}

		return stmt.Close()
	})

	if err != nil {
		return 0, err
	}

	return n, nil
}

func New(db *sql.DB) *Client {
	return &Client{
		db: db,
	}
}
