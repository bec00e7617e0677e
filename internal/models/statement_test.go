package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentTypeValid(t *testing.T) {
	assert.True(t, ContentTypeSpreadsheet.Valid())
	assert.True(t, ContentTypePDF.Valid())
	assert.False(t, ContentType("xlsx").Valid())
	assert.False(t, ContentType("").Valid())
}

func TestRawStatementInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   RawStatementInput
		wantErr bool
	}{
		{
			name:  "spreadsheet with rows",
			input: RawStatementInput{ContentType: ContentTypeSpreadsheet, Rows: []string{"a", "b"}},
		},
		{
			name:  "empty spreadsheet",
			input: RawStatementInput{ContentType: ContentTypeSpreadsheet},
		},
		{
			name:  "pdf with text",
			input: RawStatementInput{ContentType: ContentTypePDF, Text: "some statement text"},
		},
		{
			name:    "unknown content type",
			input:   RawStatementInput{ContentType: "word"},
			wantErr: true,
		},
		{
			name:    "spreadsheet with text set",
			input:   RawStatementInput{ContentType: ContentTypeSpreadsheet, Text: "oops"},
			wantErr: true,
		},
		{
			name:    "pdf with rows set",
			input:   RawStatementInput{ContentType: ContentTypePDF, Rows: []string{"oops"}},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.input.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
