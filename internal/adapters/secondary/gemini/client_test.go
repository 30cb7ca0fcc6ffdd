package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/lessondeck/internal/domain/entities"
)

type recordedRequest struct {
	path   string
	apiKey string
	body   map[string]interface{}
}

func newFakeGemini(t *testing.T, status int, reply string) (*httptest.Server, func() recordedRequest) {
	t.Helper()

	var (
		mu   sync.Mutex
		last recordedRequest
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &body))

		mu.Lock()
		last = recordedRequest{path: r.URL.Path, apiKey: r.Header.Get("x-goog-api-key"), body: body}
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(server.Close)

	return server, func() recordedRequest {
		mu.Lock()
		defer mu.Unlock()
		return last
	}
}

func testModelConfig(baseURL string) entities.ModelConfig {
	return entities.ModelConfig{
		Name:           "gemini-2.0-flash",
		BaseURL:        baseURL,
		Temperature:    0.7,
		TopP:           0.8,
		TopK:           40,
		CandidateCount: 1,
		StopSequences:  []string{"],"},
	}
}

func TestNewClient(t *testing.T) {
	t.Run("requires an api key", func(t *testing.T) {
		_, err := NewClient(context.Background(), testModelConfig(""), "  ")
		assert.ErrorIs(t, err, ErrMissingAPIKey)
	})

	t.Run("keeps the model name", func(t *testing.T) {
		client, err := NewClient(context.Background(), testModelConfig(""), "test-key")
		require.NoError(t, err)
		assert.Equal(t, "gemini-2.0-flash", client.Model())
	})
}

func TestClient_Generate(t *testing.T) {
	t.Run("sends prompt and sampling settings", func(t *testing.T) {
		reply := `{"candidates":[{"content":{"role":"model","parts":[{"text":"[{\"title\":\"A\"}"},{"text":"]"}]}}]}`
		server, last := newFakeGemini(t, http.StatusOK, reply)

		client, err := NewClient(context.Background(), testModelConfig(server.URL+"/"), "test-key")
		require.NoError(t, err)

		text, err := client.Generate(context.Background(), "Create an educational presentation about Volcanoes")
		require.NoError(t, err)
		assert.Equal(t, `[{"title":"A"}]`, text)

		req := last()
		assert.True(t, strings.HasSuffix(req.path, "models/gemini-2.0-flash:generateContent"), req.path)
		assert.Equal(t, "test-key", req.apiKey)

		contents, ok := req.body["contents"].([]interface{})
		require.True(t, ok)
		require.Len(t, contents, 1)
		raw, _ := json.Marshal(contents[0])
		assert.Contains(t, string(raw), "Create an educational presentation about Volcanoes")

		cfg, ok := req.body["generationConfig"].(map[string]interface{})
		require.True(t, ok)
		assert.InDelta(t, 0.7, cfg["temperature"], 0.001)
		assert.InDelta(t, 0.8, cfg["topP"], 0.001)
		assert.InDelta(t, 40, cfg["topK"], 0.001)
		assert.EqualValues(t, 1, cfg["candidateCount"])
		assert.Equal(t, []interface{}{"],"}, cfg["stopSequences"])
	})

	t.Run("no candidates yields empty text", func(t *testing.T) {
		server, _ := newFakeGemini(t, http.StatusOK, `{"candidates":[]}`)

		client, err := NewClient(context.Background(), testModelConfig(server.URL+"/"), "test-key")
		require.NoError(t, err)

		text, err := client.Generate(context.Background(), "prompt")
		require.NoError(t, err)
		assert.Empty(t, text)
	})

	t.Run("api errors are returned", func(t *testing.T) {
		server, _ := newFakeGemini(t, http.StatusBadRequest,
			`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`)

		client, err := NewClient(context.Background(), testModelConfig(server.URL+"/"), "test-key")
		require.NoError(t, err)

		_, err = client.Generate(context.Background(), "prompt")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "gemini.Generate")
	})
}
