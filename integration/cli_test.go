//go:build basic

package integration

import (
	"encoding/json"
	"testing"

	"github.com/huangsam/simbook/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLIPhonebookLifecycle(t *testing.T) {
	home := t.TempDir()
	const serial = "8901260000000000042"

	_, err := runSimbook(t, home, nil, "card", "init", "--serial", serial, "--max-name-length", "12", "--capacity", "5")
	require.NoError(t, err)

	// First capacity lookup probes the card
	out, err := runSimbook(t, home, nil, "capacity", "show", "--output", "json")
	require.NoError(t, err)
	var report schema.CapacityReport
	require.NoError(t, json.Unmarshal(extractJSON(t, out), &report))
	assert.Equal(t, 12, report.MaxNameLength)
	assert.Equal(t, schema.ProbeSource, report.Source)
	assert.Equal(t, 41, report.Attempts)

	// A new process reads it from the cache
	out, err = runSimbook(t, home, nil, "capacity", "show", "--output", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(extractJSON(t, out), &report))
	assert.Equal(t, schema.CacheSource, report.Source)
	assert.Zero(t, report.Attempts)

	_, err = runSimbook(t, home, nil, "contacts", "add", "Bartholomew-Jacobson", "555-012-3456")
	require.NoError(t, err)

	out, err = runSimbook(t, home, nil, "contacts", "list", "--output", "json")
	require.NoError(t, err)
	var contacts []schema.Contact
	require.NoError(t, json.Unmarshal(extractJSON(t, out), &contacts))
	require.Len(t, contacts, 1, "probe records must be cleaned up")
	assert.Equal(t, "Bartholomew-", contacts[0].Name)
	assert.Equal(t, "5550123456", contacts[0].Number)

	_, err = runSimbook(t, home, nil, "contacts", "delete", "Bartholomew-", "5550123456")
	require.NoError(t, err)

	out, err = runSimbook(t, home, nil, "cache", "list", "--output", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, serial+",12,")

	_, err = runSimbook(t, home, nil, "cache", "clear")
	require.NoError(t, err)

	out, err = runSimbook(t, home, nil, "capacity", "show", "--output", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(extractJSON(t, out), &report))
	assert.Equal(t, schema.ProbeSource, report.Source, "cleared cache forces a new probe")
}

func TestCLIUnprovisionedCard(t *testing.T) {
	home := t.TempDir()
	out, err := runSimbook(t, home, nil, "capacity", "show")
	assert.Error(t, err)
	assert.Contains(t, out, "simbook card init")
}

func TestCLIInvalidContact(t *testing.T) {
	home := t.TempDir()
	_, err := runSimbook(t, home, nil, "card", "init")
	require.NoError(t, err)

	out, err := runSimbook(t, home, nil, "contacts", "add", "Ann", "call-me")
	assert.Error(t, err)
	assert.Contains(t, out, "digits and dashes")
}
