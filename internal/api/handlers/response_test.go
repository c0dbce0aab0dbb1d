package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondErrors(t *testing.T) {
	tests := []struct {
		name       string
		respond    func(w http.ResponseWriter)
		wantStatus int
		wantCode   string
	}{
		{"bad request", func(w http.ResponseWriter) { RespondBadRequest(w, "x") }, http.StatusBadRequest, CodeInvalidRequest},
		{"unauthorized", func(w http.ResponseWriter) { RespondUnauthorized(w, "x") }, http.StatusUnauthorized, CodeUnauthorized},
		{"forbidden", func(w http.ResponseWriter) { RespondForbidden(w, "x") }, http.StatusForbidden, CodeForbidden},
		{"not found", func(w http.ResponseWriter) { RespondNotFound(w, "x") }, http.StatusNotFound, CodeNotFound},
		{"slot taken", func(w http.ResponseWriter) { RespondConflict(w, CodeSlotTaken, "x") }, http.StatusConflict, CodeSlotTaken},
		{"unavailable", RespondServiceUnavailable, http.StatusServiceUnavailable, CodeServiceUnavailable},
		{"internal", RespondInternalError, http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.respond(rec)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"name":"Thabo"}`, false},
		{"empty", ``, true},
		{"malformed", `{"name":`, true},
		{"unknown field", `{"name":"Thabo","age":3}`, true},
		{"trailing object", `{"name":"a"}{"name":"b"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst payload
			err := DecodeJSON(req, &dst)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Thabo", dst.Name)
		})
	}
}
