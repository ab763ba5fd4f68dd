package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentityDocument_Validate(t *testing.T) {
	tests := []struct {
		name     string
		document IdentityDocument
		valid    bool
	}{
		{name: "valid DNI", document: IdentityDocument{Type: DocumentDNI, Value: "45678912"}, valid: true},
		{name: "DNI too short", document: IdentityDocument{Type: DocumentDNI, Value: "4567891"}, valid: false},
		{name: "DNI too long", document: IdentityDocument{Type: DocumentDNI, Value: "456789123"}, valid: false},
		{name: "DNI with letters", document: IdentityDocument{Type: DocumentDNI, Value: "4567891A"}, valid: false},
		{name: "valid CE", document: IdentityDocument{Type: DocumentCE, Value: "001234567"}, valid: true},
		{name: "valid long CE", document: IdentityDocument{Type: DocumentCE, Value: "CE1234567890"}, valid: true},
		{name: "CE too short", document: IdentityDocument{Type: DocumentCE, Value: "00123456"}, valid: false},
		{name: "CE with symbols", document: IdentityDocument{Type: DocumentCE, Value: "00123456-7"}, valid: false},
		{name: "valid passport", document: IdentityDocument{Type: DocumentPS, Value: "AB123456"}, valid: true},
		{name: "passport too short", document: IdentityDocument{Type: DocumentPS, Value: "AB123"}, valid: false},
		{name: "unknown type", document: IdentityDocument{Type: "RUC", Value: "20123456789"}, valid: false},
		{name: "empty value", document: IdentityDocument{Type: DocumentDNI, Value: ""}, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.document.Validate())
			assert.Equal(t, tt.valid, tt.document.IsValid)
		})
	}
}
