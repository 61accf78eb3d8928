package simcard

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"unicode/utf8"

	"github.com/huangsam/simbook/internal/contract"
	"github.com/huangsam/simbook/schema"
)

// MemoryCard is an in-process card with the same rules as Card.
// It records every insert attempt and delete selection it receives.
type MemoryCard struct {
	mu      sync.Mutex
	spec    schema.CardSpec
	nextID  int64
	records []memoryRecord

	// Inserts holds the name of every insert attempt, accepted or not, in call order.
	Inserts []string
	// Deletes holds every delete selection in call order.
	Deletes []contract.Selection
}

type memoryRecord struct {
	id     int64
	name   string
	number string
}

var (
	_ contract.RecordStore    = &MemoryCard{} // Compile-time check
	_ contract.IdentitySource = &MemoryCard{} // Compile-time check
)

// NewMemoryCard returns an empty card provisioned with spec.
// Unlike Card, an empty serial is kept so callers can model an unidentifiable card.
func NewMemoryCard(spec schema.CardSpec) *MemoryCard {
	if spec.MaxNumberLength == 0 {
		spec.MaxNumberLength = DefaultMaxNumberLength
	}
	if spec.Capacity == 0 {
		spec.Capacity = DefaultCapacity
	}
	return &MemoryCard{spec: spec, nextID: 1}
}

// SerialNumber returns the serial of the card.
func (m *MemoryCard) SerialNumber(_ context.Context) (schema.StoreIdentity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return schema.StoreIdentity(m.spec.Serial), nil
}

// Query returns every record, sorted ascending by sortBy.
func (m *MemoryCard) Query(_ context.Context, endpoint string, projection []string, sortBy string) ([]contract.Row, error) {
	if err := checkEndpoint(endpoint); err != nil {
		return nil, err
	}
	if len(projection) == 0 {
		projection = []string{contract.FieldID, contract.FieldName, contract.FieldNumber}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rows := make([]contract.Row, 0, len(m.records))
	for _, rec := range m.records {
		full := rec.row()
		row := make(contract.Row, len(projection))
		for _, field := range projection {
			v, ok := full[field]
			if !ok {
				return nil, fmt.Errorf("unknown field %q", field)
			}
			row[field] = v
		}
		rows = append(rows, row)
	}
	if sortBy != "" {
		if _, ok := columns[sortBy]; !ok {
			return nil, fmt.Errorf("unknown sort field %q", sortBy)
		}
		sort.SliceStable(rows, func(i, j int) bool { return rows[i][sortBy] < rows[j][sortBy] })
	}
	return rows, nil
}

// Insert stores a record if it fits the card's limits.
func (m *MemoryCard) Insert(_ context.Context, endpoint string, values contract.Row) (string, error) {
	if err := checkEndpoint(endpoint); err != nil {
		return "", err
	}
	name := values[contract.FieldName]
	number := values[contract.FieldNumber]

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Inserts = append(m.Inserts, name)
	numberLen := utf8.RuneCountInString(number)
	switch {
	case utf8.RuneCountInString(name) > m.spec.MaxNameLength:
		return "", nil
	case numberLen < 1 || numberLen > m.spec.MaxNumberLength:
		return "", nil
	case len(m.records) >= m.spec.Capacity:
		return "", nil
	}

	rec := memoryRecord{id: m.nextID, name: name, number: number}
	m.nextID++
	m.records = append(m.records, rec)
	return endpoint + "/" + strconv.FormatInt(rec.id, 10), nil
}

// Delete removes the records whose fields equal every value of the selection.
func (m *MemoryCard) Delete(_ context.Context, endpoint string, where contract.Selection) (int64, error) {
	if err := checkEndpoint(endpoint); err != nil {
		return 0, err
	}
	if _, err := buildWhere(where); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Deletes = append(m.Deletes, where)
	kept := m.records[:0]
	var removed int64
	for _, rec := range m.records {
		if rec.matches(where) {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	m.records = kept
	return removed, nil
}

// Len returns the number of stored records.
func (m *MemoryCard) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

func (r memoryRecord) row() contract.Row {
	return contract.Row{
		contract.FieldID:     strconv.FormatInt(r.id, 10),
		contract.FieldName:   r.name,
		contract.FieldNumber: r.number,
	}
}

func (r memoryRecord) matches(where contract.Selection) bool {
	full := r.row()
	for i, field := range where.Fields {
		if full[field] != where.Args[i] {
			return false
		}
	}
	return true
}
