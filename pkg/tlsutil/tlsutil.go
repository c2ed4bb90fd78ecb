// Package tlsutil loads TLS credentials for the calculator gRPC server and
// its clients, and mints throwaway certificates for local runs.
package tlsutil

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"fmt"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"time"

	"google.golang.org/grpc/credentials"
)

// ServerTLSConfig loads TLS credentials for a gRPC server from cert and key
// files. When clientCAFile is set, clients must present a certificate signed
// by that CA.
func ServerTLSConfig(certFile, keyFile, clientCAFile string) (credentials.TransportCredentials, error) {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("tlsutil: load server key pair: %w", err)
	}

	tlsCfg := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}

	if clientCAFile != "" {
		pool, err := loadCertPool(clientCAFile)
		if err != nil {
			return nil, err
		}
		tlsCfg.ClientCAs = pool
		tlsCfg.ClientAuth = tls.RequireAndVerifyClientCert
	}

	return credentials.NewTLS(tlsCfg), nil
}

// ClientOptions selects the trust roots and the optional client identity of
// a gRPC client.
type ClientOptions struct {
	// CAFile replaces the system roots when set.
	CAFile string
	// CertFile and KeyFile present a client certificate for servers that
	// verify callers.
	CertFile string
	KeyFile  string
	// InsecureSkipVerify disables server verification. Development only.
	InsecureSkipVerify bool
}

// ClientTLSConfig builds TLS credentials for a gRPC client.
func ClientTLSConfig(opts ClientOptions) (credentials.TransportCredentials, error) {
	tlsCfg := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: opts.InsecureSkipVerify, //nolint:gosec // opt-in for dev use
	}

	if opts.CAFile != "" {
		pool, err := loadCertPool(opts.CAFile)
		if err != nil {
			return nil, err
		}
		tlsCfg.RootCAs = pool
	}

	if (opts.CertFile == "") != (opts.KeyFile == "") {
		return nil, errors.New("tlsutil: client cert and key must be set together")
	}
	if opts.CertFile != "" {
		cert, err := tls.LoadX509KeyPair(opts.CertFile, opts.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("tlsutil: load client key pair: %w", err)
		}
		tlsCfg.Certificates = []tls.Certificate{cert}
	}

	return credentials.NewTLS(tlsCfg), nil
}

func loadCertPool(caFile string) (*x509.CertPool, error) {
	caPEM, err := os.ReadFile(caFile) // #nosec G304 -- operator-supplied path
	if err != nil {
		return nil, fmt.Errorf("tlsutil: read CA file: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caPEM) {
		return nil, fmt.Errorf("tlsutil: failed to parse CA certificate from %s", caFile)
	}
	return pool, nil
}

// DevBundle lists the files written by GenerateDevBundle.
type DevBundle struct {
	CACert     string
	CAKey      string
	ServerCert string
	ServerKey  string
	ClientCert string
	ClientKey  string
}

// GenerateDevBundle writes a throwaway CA to outDir together with a server
// certificate for hosts and a client certificate, both signed by that CA.
func GenerateDevBundle(outDir string, hosts ...string) (DevBundle, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return DevBundle{}, fmt.Errorf("tlsutil: mkdir %s: %w", outDir, err)
	}
	b := DevBundle{
		CACert:     filepath.Join(outDir, "ca.pem"),
		CAKey:      filepath.Join(outDir, "ca-key.pem"),
		ServerCert: filepath.Join(outDir, "server.pem"),
		ServerKey:  filepath.Join(outDir, "server-key.pem"),
		ClientCert: filepath.Join(outDir, "client.pem"),
		ClientKey:  filepath.Join(outDir, "client-key.pem"),
	}

	now := time.Now()
	ca, err := issue(&x509.Certificate{
		Subject:               pkix.Name{CommonName: "calculator dev CA"},
		NotBefore:             now.Add(-time.Minute),
		NotAfter:              now.AddDate(1, 0, 0),
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageCRLSign,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}, nil)
	if err != nil {
		return DevBundle{}, fmt.Errorf("tlsutil: issue CA: %w", err)
	}

	server := &x509.Certificate{
		Subject:     pkix.Name{CommonName: "calculator-service"},
		NotBefore:   now.Add(-time.Minute),
		NotAfter:    now.AddDate(0, 1, 0),
		KeyUsage:    x509.KeyUsageDigitalSignature,
		ExtKeyUsage: []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}
	for _, h := range hosts {
		if ip := net.ParseIP(h); ip != nil {
			server.IPAddresses = append(server.IPAddresses, ip)
		} else {
			server.DNSNames = append(server.DNSNames, h)
		}
	}
	srv, err := issue(server, ca)
	if err != nil {
		return DevBundle{}, fmt.Errorf("tlsutil: issue server cert: %w", err)
	}

	cli, err := issue(&x509.Certificate{
		Subject:     pkix.Name{CommonName: "calculator-client"},
		NotBefore:   now.Add(-time.Minute),
		NotAfter:    now.AddDate(0, 1, 0),
		KeyUsage:    x509.KeyUsageDigitalSignature,
		ExtKeyUsage: []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth},
	}, ca)
	if err != nil {
		return DevBundle{}, fmt.Errorf("tlsutil: issue client cert: %w", err)
	}

	for _, out := range []struct {
		kp        *keyPair
		cert, key string
	}{
		{ca, b.CACert, b.CAKey},
		{srv, b.ServerCert, b.ServerKey},
		{cli, b.ClientCert, b.ClientKey},
	} {
		if err := out.kp.write(out.cert, out.key); err != nil {
			return DevBundle{}, err
		}
	}
	return b, nil
}

type keyPair struct {
	cert *x509.Certificate
	key  crypto.Signer
}

// issue signs tmpl with parent, or self-signs it when parent is nil.
func issue(tmpl *x509.Certificate, parent *keyPair) (*keyPair, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, err
	}
	if tmpl.SerialNumber, err = rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 127)); err != nil {
		return nil, err
	}

	signerCert, signerKey := tmpl, crypto.Signer(key)
	if parent != nil {
		signerCert, signerKey = parent.cert, parent.key
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, signerCert, key.Public(), signerKey)
	if err != nil {
		return nil, err
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, err
	}
	return &keyPair{cert: cert, key: key}, nil
}

func (kp *keyPair) write(certPath, keyPath string) error {
	keyDER, err := x509.MarshalPKCS8PrivateKey(kp.key)
	if err != nil {
		return fmt.Errorf("tlsutil: marshal key for %s: %w", certPath, err)
	}
	if err := writePEM(certPath, "CERTIFICATE", kp.cert.Raw); err != nil {
		return err
	}
	return writePEM(keyPath, "PRIVATE KEY", keyDER)
}

func writePEM(path, blockType string, data []byte) error {
	buf := pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: data})
	if err := os.WriteFile(path, buf, 0o600); err != nil {
		return fmt.Errorf("tlsutil: write %s: %w", path, err)
	}
	return nil
}
