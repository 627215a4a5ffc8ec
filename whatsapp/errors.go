package whatsapp

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
)

// TransportCode classifies why an exchange never completed.
type TransportCode int

const (
	TransportUnknown TransportCode = iota
	TransportDNS
	TransportConnect
	TransportTLS
	TransportTimeout
	TransportCanceled
)

func (c TransportCode) String() string {
	switch c {
	case TransportDNS:
		return "dns"
	case TransportConnect:
		return "connect"
	case TransportTLS:
		return "tls"
	case TransportTimeout:
		return "timeout"
	case TransportCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// TransportError means the request never got a response: DNS, connection,
// TLS or stream failures.
type TransportError struct {
	Message string
	Code    TransportCode
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("whatsapp transport error (%s): %s", e.Code, e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RequestError means the gateway answered but rejected the request, either
// with an HTTP status >= 400 or with "status": false in the body.
type RequestError struct {
	Message    string
	StatusCode int
	Details    any
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("whatsapp request failed (HTTP %d): %s", e.StatusCode, e.Message)
}

// ConfigurationError reports a client that is missing or misconfigured.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return "whatsapp configuration error: " + e.Message
}

func newTransportError(err error) *TransportError {
	return &TransportError{
		Message: err.Error(),
		Code:    classifyTransport(err),
		Err:     err,
	}
}

func classifyTransport(err error) TransportCode {
	var (
		dnsErr      *net.DNSError
		netErr      net.Error
		opErr       *net.OpError
		recordErr   tls.RecordHeaderError
		unknownAuth x509.UnknownAuthorityError
		hostnameErr x509.HostnameError
		certErr     x509.CertificateInvalidError
	)

	switch {
	case errors.Is(err, context.Canceled):
		return TransportCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return TransportTimeout
	case errors.As(err, &dnsErr):
		return TransportDNS
	case errors.As(err, &recordErr), errors.As(err, &unknownAuth),
		errors.As(err, &hostnameErr), errors.As(err, &certErr):
		return TransportTLS
	case errors.As(err, &netErr) && netErr.Timeout():
		return TransportTimeout
	case errors.As(err, &opErr) && opErr.Op == "dial":
		return TransportConnect
	}
	return TransportUnknown
}
