// Package simcard emulates a SIM card phonebook on top of SQLite.
//
// A card hides its name length limit, number length limit and slot capacity
// the same way a physical card does: inserts that violate them are simply
// rejected, with no reason given.
package simcard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/huangsam/simbook/internal/contract"
	"github.com/huangsam/simbook/schema"
	_ "modernc.org/sqlite" // SQLite driver
)

// Defaults used when a CardSpec leaves a limit unset.
const (
	DefaultMaxNumberLength = 20
	DefaultCapacity        = 250
)

// ErrNotProvisioned is returned when a card has no serial or limits yet.
var ErrNotProvisioned = errors.New("card is not provisioned")

// columns maps raw field names to ADN table columns.
var columns = map[string]string{
	contract.FieldID:     "id",
	contract.FieldName:   "tag",
	contract.FieldNumber: "number",
}

// Card is a SIM card emulated in a SQLite file.
type Card struct {
	db   *sql.DB
	path string
}

var (
	_ contract.RecordStore    = &Card{} // Compile-time check
	_ contract.IdentitySource = &Card{} // Compile-time check
)

// Open opens or creates the card file at path and migrates its schema.
// The path ":memory:" yields a card that lives as long as the returned value.
func Open(path string) (*Card, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open card at %q: %w", path, err)
	}
	// A single connection keeps ":memory:" cards alive and avoids "database is locked" errors
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to card at %q: %w", path, err)
	}

	if err := migrateCard(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Card{db: db, path: path}, nil
}

// Close closes the underlying DB connection.
func (c *Card) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Provision writes the hidden limits of the card, replacing earlier ones.
// Existing records are kept.
func (c *Card) Provision(ctx context.Context, spec schema.CardSpec) (schema.CardSpec, error) {
	spec = withDefaults(spec)
	if err := validateSpec(spec); err != nil {
		return spec, err
	}

	_, err := c.db.ExecContext(ctx, `INSERT OR REPLACE INTO card_info (singleton, serial, max_name_length, max_number_length, capacity)
		VALUES (1, ?, ?, ?, ?)`, spec.Serial, spec.MaxNameLength, spec.MaxNumberLength, spec.Capacity)
	if err != nil {
		return spec, fmt.Errorf("failed to provision card: %w", err)
	}
	return spec, nil
}

// SerialNumber returns the serial of the card.
func (c *Card) SerialNumber(ctx context.Context) (schema.StoreIdentity, error) {
	var serial string
	err := c.db.QueryRowContext(ctx, `SELECT serial FROM card_info WHERE singleton = 1`).Scan(&serial)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotProvisioned
	}
	if err != nil {
		return "", fmt.Errorf("failed to read card serial: %w", err)
	}
	return schema.StoreIdentity(serial), nil
}

// Info returns the serial and slot usage of the card.
func (c *Card) Info(ctx context.Context) (schema.CardInfo, error) {
	var info schema.CardInfo
	err := c.db.QueryRowContext(ctx, `SELECT serial, capacity, (SELECT COUNT(*) FROM adn) FROM card_info WHERE singleton = 1`).
		Scan(&info.Serial, &info.Capacity, &info.UsedSlots)
	if errors.Is(err, sql.ErrNoRows) {
		return info, ErrNotProvisioned
	}
	if err != nil {
		return info, fmt.Errorf("failed to read card info: %w", err)
	}
	return info, nil
}

// Query returns every ADN row with the projected fields, sorted ascending by sortBy.
func (c *Card) Query(ctx context.Context, endpoint string, projection []string, sortBy string) ([]contract.Row, error) {
	if err := checkEndpoint(endpoint); err != nil {
		return nil, err
	}
	if len(projection) == 0 {
		projection = []string{contract.FieldID, contract.FieldName, contract.FieldNumber}
	}

	cols := make([]string, len(projection))
	for i, field := range projection {
		col, ok := columns[field]
		if !ok {
			return nil, fmt.Errorf("unknown field %q", field)
		}
		cols[i] = col
	}

	orderBy := "id"
	if sortBy != "" {
		col, ok := columns[sortBy]
		if !ok {
			return nil, fmt.Errorf("unknown sort field %q", sortBy)
		}
		orderBy = col + ", id"
	}

	query := fmt.Sprintf("SELECT %s FROM adn ORDER BY %s", strings.Join(cols, ", "), orderBy)
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query card: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []contract.Row
	for rows.Next() {
		values := make([]sql.NullString, len(projection))
		dest := make([]any, len(projection))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan card row: %w", err)
		}
		row := make(contract.Row, len(projection))
		for i, field := range projection {
			row[field] = values[i].String
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// Insert stores a record if it fits the card's hidden limits.
// A rejected record yields an empty URI and no error.
func (c *Card) Insert(ctx context.Context, endpoint string, values contract.Row) (string, error) {
	if err := checkEndpoint(endpoint); err != nil {
		return "", err
	}
	name := values[contract.FieldName]
	number := values[contract.FieldNumber]

	res, err := c.db.ExecContext(ctx, `INSERT INTO adn (tag, number)
		SELECT ?, ? FROM card_info
		WHERE singleton = 1
			AND length(?) <= max_name_length
			AND length(?) BETWEEN 1 AND max_number_length
			AND (SELECT COUNT(*) FROM adn) < capacity`, name, number, name, number)
	if err != nil {
		return "", fmt.Errorf("failed to insert into card: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil || affected == 0 {
		return "", nil
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", nil
	}
	return endpoint + "/" + strconv.FormatInt(id, 10), nil
}

// Delete removes the rows whose fields equal every value of the selection.
func (c *Card) Delete(ctx context.Context, endpoint string, where contract.Selection) (int64, error) {
	if err := checkEndpoint(endpoint); err != nil {
		return 0, err
	}
	clause, err := buildWhere(where)
	if err != nil {
		return 0, err
	}

	args := make([]any, len(where.Args))
	for i, arg := range where.Args {
		args[i] = arg
	}
	res, err := c.db.ExecContext(ctx, "DELETE FROM adn WHERE "+clause, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete from card: %w", err)
	}
	return res.RowsAffected()
}

// buildWhere turns a selection into a parameterized clause over known columns.
func buildWhere(where contract.Selection) (string, error) {
	if len(where.Fields) == 0 {
		return "", fmt.Errorf("empty selection")
	}
	if len(where.Fields) != len(where.Args) {
		return "", fmt.Errorf("selection has %d fields but %d args", len(where.Fields), len(where.Args))
	}
	parts := make([]string, len(where.Fields))
	for i, field := range where.Fields {
		col, ok := columns[field]
		if !ok {
			return "", fmt.Errorf("unknown field %q", field)
		}
		parts[i] = col + " = ?"
	}
	return strings.Join(parts, " AND "), nil
}

// withDefaults fills unset limits and generates a serial when none is given.
func withDefaults(spec schema.CardSpec) schema.CardSpec {
	if spec.Serial == "" {
		spec.Serial = uuid.NewString()
	}
	if spec.MaxNumberLength == 0 {
		spec.MaxNumberLength = DefaultMaxNumberLength
	}
	if spec.Capacity == 0 {
		spec.Capacity = DefaultCapacity
	}
	return spec
}

func validateSpec(spec schema.CardSpec) error {
	if spec.MaxNameLength < 0 {
		return fmt.Errorf("max name length cannot be negative (received %d)", spec.MaxNameLength)
	}
	if spec.MaxNumberLength < 1 {
		return fmt.Errorf("max number length must be at least 1 (received %d)", spec.MaxNumberLength)
	}
	if spec.Capacity < 1 {
		return fmt.Errorf("capacity must be at least 1 (received %d)", spec.Capacity)
	}
	return nil
}
