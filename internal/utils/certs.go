package utils

import (
	"crypto/x509"
	"os"

	"github.com/rs/zerolog/log"
)

// LoadRootCAs reads a PEM root certificate and returns the system trust pool
// with that certificate appended. It is called once at startup and the result
// rides inside HTTPClientConfig for the process lifetime.
//
// Loading is best-effort: an unreadable or unparseable certificate must never
// fail a download, so every failure path deliberately returns nil and the
// client falls back to the default trust store.
func LoadRootCAs(path string) *x509.CertPool {
	if path == "" {
		return nil
	}
	pem, err := os.ReadFile(path)
	if err != nil {
		log.Debug().Str("op", "utils/certs").Err(err).Msg("Ignoring unreadable root certificate")
		return nil
	}
	pool, err := x509.SystemCertPool()
	if err != nil {
		pool = x509.NewCertPool()
	}
	if !pool.AppendCertsFromPEM(pem) {
		log.Debug().Str("op", "utils/certs").Str("path", path).Msg("Ignoring unparseable root certificate")
		return nil
	}
	return pool
}
