package driver

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/http"
	"os"
	"time"
)

// newHTTPClient builds an HTTP client honoring the per-upstream TLS policy:
// verification can be disabled outright, or a custom CA bundle can extend the
// system roots for instances behind internal PKI.
func newHTTPClient(timeout time.Duration, verifySSL bool, caBundle string) (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if !verifySSL {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	} else if caBundle != "" {
		pool, err := x509.SystemCertPool()
		if err != nil {
			pool = x509.NewCertPool()
		}

		pem, err := os.ReadFile(caBundle)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA bundle %s: %w", caBundle, err)
		}

		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates found in CA bundle %s", caBundle)
		}

		transport.TLSClientConfig = &tls.Config{RootCAs: pool}
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}, nil
}
