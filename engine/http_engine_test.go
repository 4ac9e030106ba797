package engine

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opensight/sift/config"
	"github.com/opensight/sift/models"
)

func testEngine(timeout time.Duration) *HTTPEngine {
	return NewHTTPEngine(config.FetchConfig{
		Timeout:        timeout,
		UserAgent:      "sift-test/1.0",
		TLSFingerprint: true,
	})
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	var pe *models.PipelineError
	require.True(t, errors.As(err, &pe), "expected *models.PipelineError, got %T: %v", err, err)
	assert.Equal(t, code, pe.Code)
}

func TestHTTPEngine_Fetch_Success(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><head><title> Jobs </title></head><body>Apply</body></html>"))
	}))
	defer srv.Close()

	res, err := testEngine(2*time.Second).Fetch(context.Background(), &FetchRequest{URL: srv.URL + "/jobs"})
	require.NoError(t, err)

	assert.Equal(t, "sift-test/1.0", gotUA)
	assert.Contains(t, res.HTML, "<body>Apply</body>")
	assert.Equal(t, srv.URL+"/jobs", res.URL)
	assert.Equal(t, srv.URL+"/jobs", res.FinalURL)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "http", res.EngineName)
}

func TestHTTPEngine_Fetch_RequestHeadersOverride(t *testing.T) {
	var gotLang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLang = r.Header.Get("Accept-Language")
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	_, err := testEngine(2*time.Second).Fetch(context.Background(), &FetchRequest{
		URL:     srv.URL,
		Headers: map[string]string{"Accept-Language": "de-DE"},
	})
	require.NoError(t, err)
	assert.Equal(t, "de-DE", gotLang)
}

func TestHTTPEngine_Fetch_FollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusFound)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("moved here"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	res, err := testEngine(2*time.Second).Fetch(context.Background(), &FetchRequest{URL: srv.URL + "/old"})
	require.NoError(t, err)
	assert.Equal(t, "moved here", res.HTML)
	assert.Equal(t, srv.URL+"/old", res.URL)
	assert.Equal(t, srv.URL+"/new", res.FinalURL)
}

func TestHTTPEngine_Fetch_NonSuccessStatus(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusForbidden, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		_, err := testEngine(2*time.Second).Fetch(context.Background(), &FetchRequest{URL: srv.URL})
		srv.Close()

		require.Error(t, err)
		requireCode(t, err, models.ErrCodeFetchStatus)
	}
}

func TestHTTPEngine_Fetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	start := time.Now()
	_, err := testEngine(50*time.Millisecond).Fetch(context.Background(), &FetchRequest{URL: srv.URL})
	require.Error(t, err)
	requireCode(t, err, models.ErrCodeFetchTimeout)
	assert.Less(t, time.Since(start), time.Second)
}

func TestHTTPEngine_Fetch_PerRequestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	_, err := testEngine(10*time.Second).Fetch(context.Background(), &FetchRequest{
		URL:     srv.URL,
		Timeout: 50 * time.Millisecond,
	})
	requireCode(t, err, models.ErrCodeFetchTimeout)
}

func TestHTTPEngine_Fetch_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	_, err := testEngine(2*time.Second).Fetch(context.Background(), &FetchRequest{URL: addr})
	require.Error(t, err)
	requireCode(t, err, models.ErrCodeFetchConnection)
}

func TestHTTPEngine_Fetch_UnsupportedScheme(t *testing.T) {
	_, err := testEngine(time.Second).Fetch(context.Background(), &FetchRequest{URL: "ftp://example.com/file"})
	require.Error(t, err)
	requireCode(t, err, models.ErrCodeFetchFailed)
}

func TestHTTPEngine_Fetch_BodyCap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", 4096)))
	}))
	defer srv.Close()

	eng := NewHTTPEngine(config.FetchConfig{Timeout: time.Second, MaxBodyBytes: 100})
	res, err := eng.Fetch(context.Background(), &FetchRequest{URL: srv.URL})
	require.NoError(t, err)
	assert.Len(t, res.HTML, 100)
}

func TestHTTPEngine_Fetch_FingerprintedTLSConcurrent(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body>secure " + r.URL.Path + "</body></html>"))
	}))
	defer srv.Close()

	eng := testEngine(5 * time.Second)
	pool := x509.NewCertPool()
	pool.AddCert(srv.Certificate())
	eng.rootCAs = pool
	require.NotNil(t, eng.client.Transport.(*http.Transport).DialTLSContext)

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			path := fmt.Sprintf("/page-%d", i)
			res, err := eng.Fetch(context.Background(), &FetchRequest{URL: srv.URL + path})
			if err != nil {
				errs <- err
				return
			}
			if !strings.Contains(res.HTML, "secure "+path) {
				errs <- fmt.Errorf("unexpected body for %s: %q", path, res.HTML)
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}
