package http

import "time"

type HttpOpts func(*httpConfig)

func WithConnTimeout(d time.Duration) HttpOpts {
	return func(cfg *httpConfig) {
		cfg.connClientTimeout = d
	}
}

func WithRequestTimeout(d time.Duration) HttpOpts {
	return func(cfg *httpConfig) {
		cfg.requestTimeout = d
	}
}

func WithKeepAlive(d time.Duration) HttpOpts {
	return func(cfg *httpConfig) {
		cfg.clientKeepAlive = d
	}
}

func WithTLSHandshakeTimeout(d time.Duration) HttpOpts {
	return func(cfg *httpConfig) {
		cfg.tlsHandshakeTimeout = d
	}
}

func WithResponseHeaderTimeout(d time.Duration) HttpOpts {
	return func(cfg *httpConfig) {
		cfg.responseHeaderTimeout = d
	}
}

func WithIdleConnTimeout(d time.Duration) HttpOpts {
	return func(cfg *httpConfig) {
		cfg.idleConnTimeout = d
	}
}

func WithMaxIdleConns(n int) HttpOpts {
	return func(cfg *httpConfig) {
		cfg.maxIdleConns = n
	}
}

func WithMaxIdleConnsPerHost(n int) HttpOpts {
	return func(cfg *httpConfig) {
		cfg.maxIdleConnsPerHost = n
	}
}

func WithTransport(fn TransportFunc) HttpOpts {
	return func(cfg *httpConfig) {
		cfg.transports = append(cfg.transports, fn)
	}
}
