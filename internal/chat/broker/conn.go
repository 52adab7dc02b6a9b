package broker

import (
	"bufio"
	"net"
	"strings"
	"sync"
	"time"
)

// Conn - line-oriented wrapper over a single accepted socket.
// Reading is exclusively owned by one goroutine, while writes may come
// from several broadcasting goroutines and are serialized with a mutex,
// so two writers never interleave their bytes within one line.
type Conn struct {
	id  ClientID
	raw net.Conn

	reader      *bufio.Reader
	readTimeout time.Duration

	writeMu      sync.Mutex
	writeTimeout time.Duration

	closeOnce sync.Once
}

func newConn(id ClientID, raw net.Conn, readTimeout, writeTimeout time.Duration) *Conn {
	return &Conn{
		id:           id,
		raw:          raw,
		reader:       bufio.NewReader(raw),
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

// ID - returns the client id assigned to the connection.
func (c *Conn) ID() ClientID {
	return c.id
}

// ReadLine - blocks until a complete delimiter-terminated line is available,
// the peer closes or a transport error occurs. The delimiter is stripped.
// An unterminated trailing fragment is never returned as a line.
func (c *Conn) ReadLine() (string, error) {
	c.raw.SetReadDeadline(time.Now().Add(c.readTimeout))
	line, err := c.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// WriteLine - writes one line, appending the delimiter when missing.
// Atomic with respect to other writers of the same connection.
// A failed write affects this connection only.
func (c *Conn) WriteLine(line string) error {
	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.raw.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	_, err := c.raw.Write([]byte(line))
	return err
}

// Close - idempotent; releases the socket. Safe to call from any goroutine,
// a blocked ReadLine returns an error instead of hanging.
func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		c.raw.Close()
	})
}
