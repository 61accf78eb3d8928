package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidDatabaseBackends(t *testing.T) {
	for _, b := range []DatabaseBackend{SQLiteBackend, MySQLBackend, PostgreSQLBackend, RedisBackend, NoneBackend} {
		_, ok := ValidDatabaseBackends[b]
		assert.True(t, ok, "backend %s should be valid", b)
	}
	_, ok := ValidDatabaseBackends["mongo"]
	assert.False(t, ok)
}

func TestContactValidate(t *testing.T) {
	tests := []struct {
		name    string
		contact Contact
		wantErr string
	}{
		{name: "valid", contact: Contact{Name: "Ann", Number: "555-012-3456"}},
		{name: "valid international", contact: Contact{Name: "Ann", Number: "+4915112345678"}},
		{name: "missing name", contact: Contact{Number: "5550123"}, wantErr: "name is required"},
		{name: "missing number", contact: Contact{Name: "Ann"}, wantErr: "number is required"},
		{name: "letters in number", contact: Contact{Name: "Ann", Number: "555-CALL"}, wantErr: "digits and dashes"},
		{name: "plus in the middle", contact: Contact{Name: "Ann", Number: "55+5"}, wantErr: "digits and dashes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.contact.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestContactValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		contact Contact
		wantErr string
	}{
		{name: "service code", contact: Contact{Name: "Voicemail", Number: "*100#"}},
		{name: "spaces in number", contact: Contact{Name: "Ann", Number: "555 012 3456"}},
		{name: "missing name", contact: Contact{Number: "*100#"}, wantErr: "name is required"},
		{name: "missing number", contact: Contact{Name: "Voicemail"}, wantErr: "number is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.contact.ValidateKey()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				assert.Error(t, tt.contact.Validate(), "new contacts still need a dialable number")
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
