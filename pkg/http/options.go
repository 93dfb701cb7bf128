package http

import "time"

type Option func(*httpConfig)

func WithConnTimeout(timeout time.Duration) Option {
	return func(c *httpConfig) {
		c.connTimeout = timeout
	}
}

func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *httpConfig) {
		c.requestTimeout = timeout
	}
}

func WithKeepAlive(keepAlive time.Duration) Option {
	return func(c *httpConfig) {
		c.keepAlive = keepAlive
	}
}

func WithTLSHandshakeTimeout(timeout time.Duration) Option {
	return func(c *httpConfig) {
		c.tlsHandshakeTimeout = timeout
	}
}

func WithResponseHeaderTimeout(timeout time.Duration) Option {
	return func(c *httpConfig) {
		c.responseHeaderTimeout = timeout
	}
}

func WithIdleConnTimeout(timeout time.Duration) Option {
	return func(c *httpConfig) {
		c.idleConnTimeout = timeout
	}
}

func WithMaxIdleConns(n int) Option {
	return func(c *httpConfig) {
		c.maxIdleConns = n
	}
}

func WithMaxIdleConnsPerHost(n int) Option {
	return func(c *httpConfig) {
		c.maxIdleConnsPerHost = n
	}
}

func WithTransport(fn TransportFunc) Option {
	return func(c *httpConfig) {
		c.transports = append(c.transports, fn)
	}
}

func WithInsecureSkipVerify(skip bool) Option {
	return func(c *httpConfig) {
		c.insecureSkipVerify = skip
	}
}
