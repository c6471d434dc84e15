package api

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageParams(t *testing.T) {
	tests := []struct {
		name                        string
		page, limit                 int
		wantPage, wantLimit, offset int
	}{
		{"defaults applied", 0, 0, 1, 25, 0},
		{"negative values normalized", -3, -1, 1, 25, 0},
		{"second page", 2, 10, 2, 10, 10},
		{"deep page", 5, 20, 5, 20, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit, offset := PageParams(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.offset, offset)
		})
	}
}

func TestPageLinks(t *testing.T) {
	t.Run("single page has no links", func(t *testing.T) {
		assert.Nil(t, PageLinks(1, 25, 10))
	})

	t.Run("first page of many has next only", func(t *testing.T) {
		links := PageLinks(1, 10, 25)
		require.NotNil(t, links)
		require.NotNil(t, links.Next)
		assert.Equal(t, 2, links.Next.Page)
		assert.Nil(t, links.Prev)
	})

	t.Run("middle page has both", func(t *testing.T) {
		links := PageLinks(2, 10, 25)
		require.NotNil(t, links)
		require.NotNil(t, links.Next)
		require.NotNil(t, links.Prev)
		assert.Equal(t, 3, links.Next.Page)
		assert.Equal(t, 1, links.Prev.Page)
	})

	t.Run("last page has prev only", func(t *testing.T) {
		links := PageLinks(3, 10, 25)
		require.NotNil(t, links)
		assert.Nil(t, links.Next)
		require.NotNil(t, links.Prev)
		assert.Equal(t, 2, links.Prev.Page)
	})
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, 404, "Order not found")

	assert.Equal(t, 404, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Order not found", body.Message)
}

func TestWriteList(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteList(rec, 200, []string{"a", "b"}, 2, PageLinks(1, 2, 5))

	var envelope struct {
		Success    bool        `json:"success"`
		Data       []string    `json:"data"`
		Count      *int        `json:"count"`
		Pagination *Pagination `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, []string{"a", "b"}, envelope.Data)
	require.NotNil(t, envelope.Count)
	assert.Equal(t, 2, *envelope.Count)
	require.NotNil(t, envelope.Pagination)
	require.NotNil(t, envelope.Pagination.Next)
	assert.Equal(t, 2, envelope.Pagination.Next.Page)
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("valid body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"ok"}`))

		var dst payload
		require.True(t, DecodeJSON(rec, req, &dst))
		assert.Equal(t, "ok", dst.Name)
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"ok","extra":1}`))

		var dst payload
		assert.False(t, DecodeJSON(rec, req, &dst))
		assert.Equal(t, 400, rec.Code)
	})

	t.Run("trailing data rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"ok"}{"name":"again"}`))

		var dst payload
		assert.False(t, DecodeJSON(rec, req, &dst))
		assert.Equal(t, 400, rec.Code)
	})

	t.Run("malformed body rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":`))

		var dst payload
		assert.False(t, DecodeJSON(rec, req, &dst))
		assert.Equal(t, 400, rec.Code)
	})
}
