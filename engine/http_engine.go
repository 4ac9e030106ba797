package engine

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"syscall"
	"time"

	tls "github.com/refraction-networking/utls"

	"github.com/opensight/sift/config"
	"github.com/opensight/sift/models"
)

// HTTPEngine fetches static markup with a single plain HTTP GET.
// It never executes JavaScript and never retries.
type HTTPEngine struct {
	client       *http.Client
	userAgent    string
	timeout      time.Duration
	maxBodyBytes int64

	// rootCAs overrides the system pool for fingerprinted dials; nil in
	// production.
	rootCAs *x509.CertPool
}

// newChromeH1Spec builds a Chrome-like TLS ClientHello with ALPN forced to
// http/1.1 only. utls mutates the spec's extensions while applying it, so
// every connection needs its own copy.
func newChromeH1Spec() (tls.ClientHelloSpec, error) {
	spec, err := tls.UTLSIdToSpec(tls.HelloChrome_Auto)
	if err != nil {
		return tls.ClientHelloSpec{}, err
	}
	// Go's http.Transport cannot speak HTTP/2 over a utls connection, so
	// only offer http/1.1.
	for _, ext := range spec.Extensions {
		if alpn, ok := ext.(*tls.ALPNExtension); ok {
			alpn.AlpnProtocols = []string{"http/1.1"}
			break
		}
	}
	return spec, nil
}

// NewHTTPEngine creates an HTTPEngine from the fetch configuration.
//
// When cfg.TLSFingerprint is set, HTTPS connections present a Chrome
// ClientHello (utls) so that fingerprinting bot filters let the request
// through. If the ClientHello cannot be built the engine dials with the
// standard library TLS stack. Redirects follow the transport default policy.
func NewHTTPEngine(cfg config.FetchConfig) *HTTPEngine {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		ForceAttemptHTTP2:   false,
		TLSHandshakeTimeout: cfg.Timeout,
	}
	if cfg.Proxy != "" {
		proxyURL, err := url.Parse(cfg.Proxy)
		if err == nil && (proxyURL.Scheme == "http" || proxyURL.Scheme == "https") {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 10 << 20
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = config.DefaultUserAgent
	}

	e := &HTTPEngine{
		client:       &http.Client{Transport: transport},
		userAgent:    userAgent,
		timeout:      cfg.Timeout,
		maxBodyBytes: maxBody,
	}
	if cfg.TLSFingerprint {
		if _, err := newChromeH1Spec(); err == nil {
			transport.DialTLSContext = e.dialTLSChrome
		} else {
			slog.Warn("chrome TLS fingerprint unavailable, using standard TLS", "error", err)
		}
	}
	return e
}

// dialTLSChrome establishes a TLS connection using a fresh Chrome http/1.1
// ClientHello.
func (e *HTTPEngine) dialTLSChrome(ctx context.Context, network, addr string) (net.Conn, error) {
	spec, err := newChromeH1Spec()
	if err != nil {
		return nil, fmt.Errorf("http_engine: build tls spec: %w", err)
	}

	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}
	host, _, _ := net.SplitHostPort(addr)
	tlsConn := tls.UClient(conn, &tls.Config{ServerName: host, RootCAs: e.rootCAs}, tls.HelloCustom)
	if err := tlsConn.ApplyPreset(&spec); err != nil {
		conn.Close()
		return nil, fmt.Errorf("http_engine: apply tls spec: %w", err)
	}
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return tlsConn, nil
}

func (e *HTTPEngine) Name() string { return "http" }

// Fetch performs one GET for req.URL. Failures are returned as
// *models.PipelineError with one of the FETCH_* codes.
func (e *HTTPEngine) Fetch(ctx context.Context, req *FetchRequest) (*FetchResult, error) {
	timeout := e.timeout
	if req.Timeout > 0 {
		timeout = req.Timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return nil, models.NewPipelineError(models.ErrCodeFetchFailed, "invalid request URL", err)
	}

	httpReq.Header.Set("User-Agent", e.userAgent)
	httpReq.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	httpReq.Header.Set("Accept-Language", "en-US,en;q=0.9")
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, models.NewPipelineError(
			models.ErrCodeFetchStatus,
			fmt.Sprintf("HTTP %d for %s", resp.StatusCode, req.URL),
			nil,
		)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, e.maxBodyBytes))
	if err != nil {
		return nil, classifyTransportError(fmt.Errorf("http_engine: read body: %w", err))
	}

	return &FetchResult{
		HTML:       string(body),
		URL:        req.URL,
		FinalURL:   resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
		EngineName: e.Name(),
	}, nil
}

// classifyTransportError sorts a transport failure into timeout,
// connection or generic fetch failure.
func classifyTransportError(err error) *models.PipelineError {
	if errors.Is(err, context.DeadlineExceeded) {
		return models.NewPipelineError(models.ErrCodeFetchTimeout, "request timed out", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return models.NewPipelineError(models.ErrCodeFetchTimeout, "request timed out", err)
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return models.NewPipelineError(models.ErrCodeFetchConnection, "host lookup failed", err)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return models.NewPipelineError(models.ErrCodeFetchConnection, "connection failed", err)
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return models.NewPipelineError(models.ErrCodeFetchConnection, "connection failed", err)
	}

	return models.NewPipelineError(models.ErrCodeFetchFailed, "request failed", err)
}
