package main

import (
	"net/url"
	"regexp"
)

const secretMask = "***"

var dsnPassword = regexp.MustCompile(`(?i)(password\s*=\s*)('(?:[^'\\]|\\.)*'|\S+)`)

// masked returns copy of options safe to be logged.
func (o options) masked() options {
	o.Postgres = maskDSN(o.Postgres)

	if o.RedisPassword != "" {
		o.RedisPassword = secretMask
	}

	if o.SentryDSN != "" {
		o.SentryDSN = secretMask
	}

	return o
}

// maskDSN hides password of both url and key=value forms of postgres dsn.
func maskDSN(dsn string) string {
	if u, err := url.Parse(dsn); err == nil && u.Scheme != "" {
		return u.Redacted()
	}

	return dsnPassword.ReplaceAllString(dsn, "${1}"+secretMask)
}
