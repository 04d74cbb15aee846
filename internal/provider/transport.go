package provider

import (
	"context"
	"net"
	"net/http"
	"time"
)

// NewHTTPClient builds an *http.Client that enforces a per-read inactivity
// deadline instead of a wall-clock deadline on the whole response: a
// connection that keeps delivering bytes (however unevenly spaced, since a
// model's "thinking" pause between deltas is legitimate) never times out,
// but one that goes dark for longer than idleTimeout fails the in-flight
// Read. http.Client.Timeout is deliberately left unset, since it bounds the
// entire request/response lifetime rather than the gaps between reads.
func NewHTTPClient(idleTimeout time.Duration) *http.Client {
	dialer := &net.Dialer{}
	transport := &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			conn, err := dialer.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			return &deadlineConn{Conn: conn, idleTimeout: idleTimeout}, nil
		},
	}
	return &http.Client{Transport: transport}
}

// deadlineConn resets the connection's read deadline before every Read, so
// the deadline always measures time since the last byte arrived rather than
// time since the connection opened.
type deadlineConn struct {
	net.Conn
	idleTimeout time.Duration
}

func (c *deadlineConn) Read(b []byte) (int, error) {
	if c.idleTimeout > 0 {
		if err := c.Conn.SetReadDeadline(time.Now().Add(c.idleTimeout)); err != nil {
			return 0, err
		}
	}
	return c.Conn.Read(b)
}
