package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type generateRequest struct {
	TableName string `json:"table_name" validate:"required"`
	QueryType string `json:"query_type" validate:"omitempty,oneof=select insert"`
}

type pairRequest struct {
	ConnectionString string `json:"connection_string" validate:"required"`
	TableName        string `json:"table_name" validate:"required"`
}

func (pairRequest) ValidationMessage() string {
	return "Connection string and table name are required"
}

func TestValidateRequiredMessage(t *testing.T) {
	err := Validate(&generateRequest{})
	require.Error(t, err)
	assert.Equal(t, "Table name is required", err.Error())
}

func TestValidateOneOf(t *testing.T) {
	err := Validate(&generateRequest{TableName: "users", QueryType: "merge"})
	require.Error(t, err)
	assert.Equal(t, "Query type must be one of select insert", err.Error())
}

func TestValidateMessager(t *testing.T) {
	err := Validate(&pairRequest{TableName: "users"})
	require.Error(t, err)
	assert.Equal(t, "Connection string and table name are required", err.Error())
}

func TestDecodeOrReject(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantOK  bool
		wantErr string
	}{
		{"valid", `{"table_name":"users"}`, true, ""},
		{"missing", `{}`, false, "Table name is required"},
		{"bad json", `{`, false, "invalid JSON body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var v generateRequest
			ok := DecodeOrReject(rec, req, &v)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				return
			}
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantErr, body["error"])
		})
	}
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Table name", Humanize("table_name"))
	assert.Equal(t, "Search term", Humanize("search_term"))
	assert.Equal(t, "", Humanize(""))
}
