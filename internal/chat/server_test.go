package chat

import (
	"bufio"
	"io"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mcastro/linechat/internal/chat/history"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startServer(t *testing.T, idleTimeout time.Duration, options ...serverOption) string {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	options = append([]serverOption{WithLogger(testLogger())}, options...)
	server, err := NewServer(DefaultBroker(idleTimeout, testLogger()), options...)
	require.NoError(t, err)

	go server.Serve(listener)
	t.Cleanup(func() {
		server.Shutdown(time.Second)
	})
	return listener.Addr().String()
}

type chatClient struct {
	t      *testing.T
	conn   net.Conn
	reader *bufio.Reader
}

func dial(t *testing.T, addr string) *chatClient {
	t.Helper()
	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	t.Cleanup(func() {
		conn.Close()
	})
	return &chatClient{t: t, conn: conn, reader: bufio.NewReader(conn)}
}

// id - the client id the server knows this connection under.
func (c *chatClient) id() string {
	return c.conn.LocalAddr().String()
}

func (c *chatClient) send(text string) {
	c.t.Helper()
	_, err := c.conn.Write([]byte(text + "\n"))
	require.NoError(c.t, err)
}

func (c *chatClient) readLine(timeout time.Duration) (string, error) {
	c.conn.SetReadDeadline(time.Now().Add(timeout))
	line, err := c.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\n"), nil
}

// waitFor - reads lines until one contains marker, skipping unrelated
// notices, and returns the matched line.
func (c *chatClient) waitFor(marker string) string {
	c.t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		line, err := c.readLine(time.Until(deadline))
		if err != nil {
			break
		}
		if strings.Contains(line, marker) {
			return line
		}
	}
	c.t.Fatalf("no line containing %q was received", marker)
	return ""
}

// collect - reads every line arriving within the window.
func (c *chatClient) collect(window time.Duration) []string {
	deadline := time.Now().Add(window)
	lines := []string{}
	for {
		line, err := c.readLine(time.Until(deadline))
		if err != nil {
			return lines
		}
		lines = append(lines, line)
	}
}

func TestServer_RelayTaggedToOthersOnly(t *testing.T) {
	req := require.New(t)
	addr := startServer(t, time.Minute)

	client1 := dial(t, addr)
	client2 := dial(t, addr)
	client1.waitFor("has joined") // client2 is registered now

	client1.send("a b c")

	line := client2.waitFor("a b c")
	req.Contains(line, client1.id(), "relayed line must be tagged with the sender id")

	for _, line := range client1.collect(300 * time.Millisecond) {
		req.NotContains(line, "a b c", "sender must not receive its own message")
	}
}

func TestServer_PerSenderOrderPreserved(t *testing.T) {
	req := require.New(t)
	addr := startServer(t, time.Minute)

	receiver := dial(t, addr)
	sender := dial(t, addr)
	receiver.waitFor("has joined") // sender is registered now

	sender.send("1")
	sender.send("2")
	sender.send("3")

	got := []string{}
	for _, line := range receiver.collect(time.Second) {
		if !strings.Contains(line, sender.id()) {
			continue
		}
		got = append(got, line[strings.LastIndex(line, " ")+1:])
		if len(got) == 3 {
			break
		}
	}
	req.Equal([]string{"1", "2", "3"}, got, "messages of one sender must arrive in sending order")
}

func TestServer_EarlyDisconnectIsHarmless(t *testing.T) {
	req := require.New(t)
	addr := startServer(t, time.Minute)

	ghost := dial(t, addr)
	ghost.conn.Close() // connects, then leaves before sending anything

	client1 := dial(t, addr)
	client2 := dial(t, addr)
	client1.waitFor("has joined")

	client1.send("anybody here?")
	line := client2.waitFor("anybody here?")
	req.Contains(line, client1.id())
	req.NotContains(line, ghost.id())
}

func TestServer_HistoryGreetsNewClient(t *testing.T) {
	req := require.New(t)
	greets, err := history.NewStack(10)
	req.NoError(err)
	addr := startServer(t, time.Minute, WithMessageHistory(greets, 2))

	early := dial(t, addr)
	peer := dial(t, addr)
	early.waitFor("has joined")

	early.send("for the record")
	peer.waitFor("for the record") // the line has passed the relay and the history

	late := dial(t, addr)
	line := late.waitFor("for the record")
	req.Contains(line, early.id(), "newcomer must receive recent history")
}

func TestServer_IdleClientTimedOut(t *testing.T) {
	req := require.New(t)
	addr := startServer(t, 300*time.Millisecond)

	silent := dial(t, addr)
	active := dial(t, addr)

	// keep the active client alive past the idle timeout of the silent one
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		for {
			select {
			case <-stop:
				return
			case <-time.After(50 * time.Millisecond):
				active.conn.Write([]byte("ping\n"))
			}
		}
	}()

	line := active.waitFor("has timed out")
	req.Contains(line, silent.id())
}
