package utils

import (
	"crypto/tls"
	"crypto/x509"
	"net/http"
	"net/url"
	"time"
)

type HTTPClientConfig struct {
	Timeout   time.Duration
	KATimeout time.Duration
	ProxyURL  string // explicit proxy; standard proxy env vars apply when empty
	UserAgent string
	Headers   map[string]string
	RootCAs   *x509.CertPool // nil means default trust store
}

type SnagHTTPClient struct {
	client *http.Client
	config HTTPClientConfig
}

func NewSnagHTTPClient(cfg HTTPClientConfig) *SnagHTTPClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 3 * time.Minute
	}
	if cfg.KATimeout == 0 {
		cfg.KATimeout = 90 * time.Second
	}
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		IdleConnTimeout:     cfg.KATimeout,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		DisableCompression:  true,
	}
	if cfg.ProxyURL != "" {
		proxyURL, err := url.Parse(cfg.ProxyURL)
		if err == nil {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}
	if cfg.RootCAs != nil {
		transport.TLSClientConfig = &tls.Config{RootCAs: cfg.RootCAs}
	}
	return &SnagHTTPClient{
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		config: cfg,
	}
}

func (s *SnagHTTPClient) Do(req *http.Request) (*http.Response, error) {
	if s.config.UserAgent != "" {
		req.Header.Set("User-Agent", s.config.UserAgent)
	} else {
		req.Header.Set("User-Agent", ToolUserAgent)
	}
	for k, v := range s.config.Headers {
		req.Header.Set(k, v)
	}
	return s.client.Do(req)
}
