package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientdesk/clientdesk/internal/shared/logger"
)

func TestGeminiProvider_ListModelsFollowsPages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-goog-api-key"))

		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("pageToken") == "" {
			_, _ = w.Write([]byte(`{"models":[{"name":"models/gemini-pro","supportedGenerationMethods":["generateContent"]}],"nextPageToken":"p2"}`))
			return
		}
		_, _ = w.Write([]byte(`{"models":[{"name":"models/gemini-2.0-flash","supportedGenerationMethods":["generateContent"]}]}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider(srv.URL, "secret", time.Second, logger.NewNopLogger())
	models, err := p.ListModels(context.Background())
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, "models/gemini-2.0-flash", models[1].Name)
	assert.True(t, models[1].SupportsGeneration())
}

func TestGeminiProvider_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", r.URL.Path)

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.SystemInstruction)
		assert.Equal(t, "be brief", req.SystemInstruction.Parts[0].Text)
		assert.Equal(t, "hi", req.Contents[0].Parts[0].Text)

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Hello "},{"text":"there"}]}}]}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider(srv.URL, "k", time.Second, logger.NewNopLogger())
	text, err := p.Generate(context.Background(), "gemini-2.0-flash", "be brief", "hi")
	require.NoError(t, err)
	assert.Equal(t, "Hello there", text)
}

func TestGeminiProvider_ErrorMessageIsSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":404,"message":"models/old is not found for API version v1beta","status":"NOT_FOUND"}}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider(srv.URL, "k", time.Second, logger.NewNopLogger())
	_, err := p.Generate(context.Background(), "models/old", "", "hi")
	require.Error(t, err)
	assert.True(t, IsModelUnavailable(err))

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, http.StatusNotFound, gwErr.Status)
}

func TestGeminiProvider_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	p := NewGeminiProvider(srv.URL, "k", 20*time.Millisecond, logger.NewNopLogger())
	_, err := p.Generate(context.Background(), "models/x", "", "hi")
	require.Error(t, err)
	assert.False(t, IsModelUnavailable(err))
}

func TestIsModelUnavailable(t *testing.T) {
	assert.False(t, IsModelUnavailable(nil))
	assert.False(t, IsModelUnavailable(&GatewayError{Op: "generate", Err: assert.AnError}))
	assert.True(t, IsModelUnavailable(&GatewayError{Op: "http", Status: 400, Err: errString("Model is Not Supported")}))
}

type errString string

func (e errString) Error() string { return string(e) }
