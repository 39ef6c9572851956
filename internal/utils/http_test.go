package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name   string
		data   any
		status int
		want   string
	}{
		{name: "object", data: map[string]int64{"fee": 1000}, status: http.StatusOK, want: `{"fee":1000}`},
		{name: "created", data: struct {
			Address string `json:"address"`
		}{"zs1a"}, status: http.StatusCreated, want: `{"address":"zs1a"}`},
		{name: "empty slice", data: []string{}, status: http.StatusOK, want: `[]`},
		{name: "nil", data: nil, status: http.StatusOK, want: `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			n, err := WriteJSON(w, tt.data, tt.status)

			require.NoError(t, err)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, tt.want, w.Body.String())
			assert.Equal(t, len(tt.want), n)
		})
	}
}

func TestWriteJSON_UnmarshalableData(t *testing.T) {
	w := httptest.NewRecorder()

	_, err := WriteJSON(w, make(chan int), http.StatusOK)

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "error writing data to JSON", body.Error)
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()

	WriteError(w, `engine send: Error: "insufficient funds"`, http.StatusBadGateway)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"engine send: Error: \"insufficient funds\""}`, w.Body.String())
}
