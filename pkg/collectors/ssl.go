// Package collectors holds the network-bound infrastructure signal
// collectors: certificate inspection and domain registration age. Both
// run under short timeouts and degrade to neutral signals on failure so
// a slow or broken network never fails an analysis.
package collectors

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
)

// SSLStatus summarizes the TLS posture of a host.
type SSLStatus struct {
	HasSSL     bool   `json:"has_ssl"`
	Valid      bool   `json:"ssl_valid"`
	Issuer     string `json:"ssl_issuer,omitempty"`
	ExpiryDays int    `json:"ssl_expiry_days"`
}

// CertificateInspector fetches the TLS status of a host.
type CertificateInspector interface {
	Inspect(ctx context.Context, host string) (*SSLStatus, error)
}

// TLSInspector dials port 443 directly and examines the served
// certificate chain.
type TLSInspector struct {
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewTLSInspector returns an inspector with the given dial timeout.
func NewTLSInspector(timeout time.Duration, logger *zap.Logger) *TLSInspector {
	if timeout <= 0 {
		timeout = 4 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TLSInspector{Timeout: timeout, Logger: logger}
}

// Inspect implements CertificateInspector. The handshake skips built-in
// verification so invalid certificates can still be reported; validity is
// established afterward against the system roots.
func (t *TLSInspector) Inspect(ctx context.Context, host string) (*SSLStatus, error) {
	dialCtx, cancel := context.WithTimeout(ctx, t.Timeout)
	defer cancel()

	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: t.Timeout},
		Config: &tls.Config{
			ServerName:         host,
			InsecureSkipVerify: true, // validity checked manually below
		},
	}

	conn, err := dialer.DialContext(dialCtx, "tcp", net.JoinHostPort(host, "443"))
	if err != nil {
		t.Logger.Debug("tls dial failed", zap.String("host", host), zap.Error(err))
		return &SSLStatus{HasSSL: false}, nil
	}
	defer conn.Close()

	tlsConn, ok := conn.(*tls.Conn)
	if !ok {
		return &SSLStatus{HasSSL: false}, fmt.Errorf("unexpected connection type %T", conn)
	}

	certs := tlsConn.ConnectionState().PeerCertificates
	if len(certs) == 0 {
		return &SSLStatus{HasSSL: true, Valid: false}, nil
	}
	leaf := certs[0]

	status := &SSLStatus{
		HasSSL:     true,
		Issuer:     leaf.Issuer.CommonName,
		ExpiryDays: int(time.Until(leaf.NotAfter).Hours() / 24),
	}

	intermediates := x509.NewCertPool()
	for _, cert := range certs[1:] {
		intermediates.AddCert(cert)
	}
	_, verifyErr := leaf.Verify(x509.VerifyOptions{
		DNSName:       host,
		Intermediates: intermediates,
	})
	status.Valid = verifyErr == nil

	return status, nil
}

// CertRisk converts an SSL status into a bounded risk contribution.
// Missing TLS weighs heaviest; a valid long-lived certificate adds
// nothing.
func CertRisk(status *SSLStatus) float64 {
	switch {
	case status == nil:
		return 0
	case !status.HasSSL:
		return 0.10
	case !status.Valid:
		return 0.08
	case status.ExpiryDays >= 0 && status.ExpiryDays < 14:
		return 0.05
	default:
		return 0
	}
}
