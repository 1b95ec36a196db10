// File: services/backend/client_test.go
package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookview/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", zap.NewNop()), srv
}

func TestClient_ListBusinesses(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/businesses/", r.URL.Path)
		json.NewEncoder(w).Encode([]models.Business{
			{ID: "a", Name: "Alpha Cuts", Address: "1 Alpha St", Categories: []string{"X"}},
		})
	})

	got, err := client.ListBusinesses(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Alpha Cuts", got[0].Name)
	assert.Equal(t, []string{"X"}, got[0].Categories)
}

func TestClient_ListCategories(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/categories/", r.URL.Path)
		json.NewEncoder(w).Encode([]models.Category{{ID: "1", Name: "X"}})
	})

	got, err := client.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "X", got[0].Name)
}

func TestClient_AISearch(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/businesses/ai-search", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "haircut", body["query"])

		json.NewEncoder(w).Encode([]models.Business{{ID: "c", Name: "Gamma Barber"}})
	})

	got, err := client.AISearch(context.Background(), "haircut")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].ID)
}

func TestClient_SendChat(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chatbot/chat", r.URL.Path)
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req models.ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "biz-1", req.BusinessID)
		assert.Equal(t, "hola", req.Message)
		require.Len(t, req.History, 1)
		assert.Equal(t, "model", req.History[0].Role)

		json.NewEncoder(w).Encode(models.ChatReply{
			Response: "confirmed",
			Action:   models.ActionBookingSuccess,
			PDFURL:   "/appointments/abc/pdf",
		})
	})

	reply, err := client.SendChat(context.Background(), "token-1", models.ChatRequest{
		BusinessID: "biz-1",
		History:    []models.WireMessage{{Role: "model", Parts: []string{"hi"}}},
		Message:    "hola",
	})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", reply.Response)
	assert.Equal(t, models.ActionBookingSuccess, reply.Action)
	assert.Equal(t, "/appointments/abc/pdf", reply.PDFURL)
}

func TestClient_NonSuccessStatusIsTyped(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.ListBusinesses(context.Background())
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.Status)
}

func TestClient_FetchDocument(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/appointments/abc/pdf", r.URL.Path)
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.5"))
	})

	doc, err := client.FetchDocument(context.Background(), "token-1", "/appointments/abc/pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.Equal(t, []byte("%PDF-1.5"), doc.Data)
}

func TestClient_FetchDocument_DefaultsContentType(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// An empty Content-Type from the backend defaults to PDF.
		w.Header()["Content-Type"] = nil
		w.Write([]byte("%PDF"))
	})

	doc, err := client.FetchDocument(context.Background(), "t", "/appointments/x/pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", doc.ContentType)
}

func TestClient_FetchDocument_NonSuccessStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.FetchDocument(context.Background(), "t", "/appointments/x/pdf")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.Status)
}
