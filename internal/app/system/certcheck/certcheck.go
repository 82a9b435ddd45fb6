package certcheck

import (
	"crypto/tls"
	"net"
	"net/url"
	"time"
)

// Info summarizes the TLS certificate presented at a base URL.
type Info struct {
	IsValid  bool
	DaysLeft int
	Error    string
}

const dialTimeout = 5 * time.Second

// Check connects to the host in baseURL and inspects its leaf
// certificate. Non-https URLs and connection failures report as not
// valid; callers treat the result as informational only.
func Check(baseURL string) Info {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme != "https" || u.Hostname() == "" {
		return Info{Error: "not an https url"}
	}

	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "443"
	}

	dialer := &net.Dialer{Timeout: dialTimeout}
	conn, err := tls.DialWithDialer(dialer, "tcp", net.JoinHostPort(host, port), &tls.Config{ServerName: host})
	if err != nil {
		return Info{Error: err.Error()}
	}
	defer conn.Close()

	certs := conn.ConnectionState().PeerCertificates
	if len(certs) == 0 {
		return Info{Error: "no certificate presented"}
	}

	leaf := certs[0]
	now := time.Now()
	daysLeft := int(leaf.NotAfter.Sub(now).Hours() / 24)
	return Info{
		IsValid:  now.After(leaf.NotBefore) && now.Before(leaf.NotAfter),
		DaysLeft: daysLeft,
	}
}
