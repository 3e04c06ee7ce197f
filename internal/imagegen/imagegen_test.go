package imagegen

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingua/internal/llm"
)

type fakeGenerator struct {
	name    ProviderName
	data    []byte
	err     error
	calls   atomic.Int32
	prompts []string
}

func (f *fakeGenerator) Name() ProviderName { return f.name }

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (Rendered, error) {
	f.calls.Add(1)
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return Rendered{}, f.err
	}
	return Rendered{Data: f.data}, nil
}

func quiet() Option {
	return WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func prefs(use bool, p ProviderName) Option {
	return WithPreferences(func() Preferences { return Preferences{UseImages: use, Provider: p} })
}

func TestSanitize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"gato", "gato"},
		{"buenos días", "buenos_días"},
		{"l'eau", "l_eau"},
		{"../etc/passwd", "___etc_passwd"},
		{"猫", "猫"},
	}
	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPrompt(t *testing.T) {
	assert.Equal(t, "Simple sketch of cat, minimalist line drawing style, black and white", Prompt("cat"))
}

func TestIsQuotaMessage(t *testing.T) {
	assert.True(t, isQuotaMessage("Billing hard limit has been reached"))
	assert.True(t, isQuotaMessage("status 429"))
	assert.True(t, isQuotaMessage("You exceeded your current QUOTA"))
	assert.False(t, isQuotaMessage("content policy violation"))
}

func TestGenerate_PrimaryProvider(t *testing.T) {
	dir := t.TempDir()
	oa := &fakeGenerator{name: ProviderOpenAI, data: []byte("jpeg")}
	gm := &fakeGenerator{name: ProviderGemini, data: []byte("png")}
	s := NewService(dir, quiet(), prefs(true, ProviderOpenAI), WithGenerators(oa, gm))

	img, err := s.GenerateFor(context.Background(), "perro", "dog")
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, img.Provider)
	assert.False(t, img.Cached)
	assert.Equal(t, filepath.Join(dir, "images", "perro.jpg"), img.Path)
	assert.Equal(t, "perro.jpg", img.File)
	assert.Equal(t, []string{Prompt("dog")}, oa.prompts)
	assert.Zero(t, gm.calls.Load())

	data, err := os.ReadFile(img.Path)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))
}

func TestGenerate_CacheHit(t *testing.T) {
	oa := &fakeGenerator{name: ProviderOpenAI, data: []byte("jpeg")}
	s := NewService(t.TempDir(), quiet(), WithGenerators(oa))

	_, err := s.Generate(context.Background(), "gato")
	require.NoError(t, err)
	img, err := s.Generate(context.Background(), "gato")
	require.NoError(t, err)
	assert.True(t, img.Cached)
	assert.Equal(t, int32(1), oa.calls.Load())
}

func TestGenerate_ConcurrentSameWordRendersOnce(t *testing.T) {
	oa := &fakeGenerator{name: ProviderOpenAI, data: []byte("jpeg")}
	s := NewService(t.TempDir(), quiet(), WithGenerators(oa))

	const n = 8
	var wg sync.WaitGroup
	paths := make([]string, n)
	errs := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			img, err := s.Generate(context.Background(), "lobo")
			paths[i], errs[i] = img.Path, err
		}()
	}
	wg.Wait()

	for i := range n {
		require.NoError(t, errs[i])
		assert.Equal(t, s.Path("lobo"), paths[i])
	}
	assert.Equal(t, int32(1), oa.calls.Load())
}

func TestGenerate_QuotaFallsBack(t *testing.T) {
	oa := &fakeGenerator{name: ProviderOpenAI, err: quotaError(ProviderOpenAI, 429, errors.New("too many"))}
	gm := &fakeGenerator{name: ProviderGemini, data: []byte("png")}
	s := NewService(t.TempDir(), quiet(), WithGenerators(oa, gm))

	img, err := s.Generate(context.Background(), "chat")
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, img.Provider)
}

func TestGenerate_GeminiPreferred(t *testing.T) {
	oa := &fakeGenerator{name: ProviderOpenAI, data: []byte("jpeg")}
	gm := &fakeGenerator{name: ProviderGemini, err: quotaError(ProviderGemini, 0, errors.New("RESOURCE_EXHAUSTED quota"))}
	s := NewService(t.TempDir(), quiet(), prefs(true, ProviderGemini), WithGenerators(oa, gm))

	img, err := s.Generate(context.Background(), "inu")
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, img.Provider)
	assert.Equal(t, int32(1), gm.calls.Load())
}

func TestGenerate_OtherErrorsDoNotSwitch(t *testing.T) {
	oa := &fakeGenerator{name: ProviderOpenAI, err: errors.New("content policy violation")}
	gm := &fakeGenerator{name: ProviderGemini, data: []byte("png")}
	s := NewService(t.TempDir(), quiet(), WithGenerators(oa, gm))

	_, err := s.Generate(context.Background(), "hund")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content policy")
	assert.Zero(t, gm.calls.Load())
}

func TestGenerate_MissingClientFallsBack(t *testing.T) {
	gm := &fakeGenerator{name: ProviderGemini, data: []byte("png")}
	s := NewService(t.TempDir(), quiet(), WithGenerators(gm))

	img, err := s.Generate(context.Background(), "neko")
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, img.Provider)
}

func TestGenerate_NoClients(t *testing.T) {
	s := NewService(t.TempDir(), quiet())
	_, err := s.Generate(context.Background(), "kalb")
	assert.ErrorIs(t, err, ErrNoClient)
}

func TestGenerate_BothQuota(t *testing.T) {
	oa := &fakeGenerator{name: ProviderOpenAI, err: quotaError(ProviderOpenAI, 429, errors.New("a"))}
	gm := &fakeGenerator{name: ProviderGemini, err: quotaError(ProviderGemini, 429, errors.New("b"))}
	s := NewService(t.TempDir(), quiet(), WithGenerators(oa, gm))

	_, err := s.Generate(context.Background(), "x")
	assert.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestGenerate_Disabled(t *testing.T) {
	oa := &fakeGenerator{name: ProviderOpenAI, data: []byte("jpeg")}
	s := NewService(t.TempDir(), quiet(), prefs(false, ProviderOpenAI), WithGenerators(oa))

	_, err := s.Generate(context.Background(), "gato")
	assert.ErrorIs(t, err, ErrImagesDisabled)
	assert.Zero(t, oa.calls.Load())

	_, err = NewService(t.TempDir(), quiet()).Generate(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyWord)
}

func TestGenerate_KeysBuildClients(t *testing.T) {
	var asked []ProviderName
	keys := func(_ context.Context, p ProviderName) (string, error) {
		asked = append(asked, p)
		return "", nil
	}
	s := NewService(t.TempDir(), quiet(), WithKeys(keys, ClientConfig{}))

	_, err := s.Generate(context.Background(), "gato")
	assert.ErrorIs(t, err, ErrNoClient)
	assert.Equal(t, []ProviderName{ProviderOpenAI, ProviderGemini}, asked)
}

func TestResolve(t *testing.T) {
	s := NewService(t.TempDir())
	p, err := s.Resolve("gato.jpg")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.Dir(), "gato.jpg"), p)

	for _, bad := range []string{"", "../gato.jpg", "a/b.jpg", "gato.png", ".jpg"} {
		_, err := s.Resolve(bad)
		assert.Error(t, err, "Resolve(%q)", bad)
	}
}

func TestOpenAIGenerator(t *testing.T) {
	var srvURL string
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/images/generations", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "dall-e-2", req["model"])
		assert.Equal(t, "256x256", req["size"])
		assert.Equal(t, "url", req["response_format"])
		json.NewEncoder(w).Encode(map[string]any{
			"created": 1,
			"data":    []map[string]any{{"url": srvURL + "/files/cat.png"}},
		})
	})
	mux.HandleFunc("/files/cat.png", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("image-bytes"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	srvURL = srv.URL

	g := NewOpenAIGenerator(llm.NewOpenAIClient("test-key", srv.URL+"/v1"), "", srv.Client())
	out, err := g.Generate(context.Background(), Prompt("cat"))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(out.Data))
	assert.Equal(t, srv.URL+"/files/cat.png", out.SourceURL)
}

func TestOpenAIGenerator_Quota(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Billing hard limit has been reached","type":"invalid_request_error","code":"billing_hard_limit_reached"}}`))
	}))
	t.Cleanup(srv.Close)

	g := NewOpenAIGenerator(llm.NewOpenAIClient("test-key", srv.URL+"/v1"), "", nil)
	_, err := g.Generate(context.Background(), "x")
	assert.ErrorIs(t, err, ErrQuotaExceeded)
}
