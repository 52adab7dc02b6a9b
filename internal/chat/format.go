package chat

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/mcastro/linechat/internal/chat/broker"
)

// serverAuthor - author tag of notices generated by the server itself.
// It can not collide with a client id, which is always a network address.
const serverAuthor = "**SERVER**"

// formatMessage - formats one outbound chat line.
func formatMessage(t time.Time, author, body string) string {
	body = strings.TrimSuffix(body, "\n")
	return fmt.Sprintf("[%s] %s %s", t.Format("15:04:05"), author, body)
}

// serverNotice - formats a chat line generated on server.
func serverNotice(t time.Time, body string) string {
	return formatMessage(t, serverAuthor, body)
}

// formatPartAction - returns human readable representation of broker.PartAction.
func formatPartAction(a broker.PartAction) string {
	switch a {
	case broker.PartActionTimeout:
		return "timed out"
	case broker.PartActionLeft:
		fallthrough
	default:
		return "left"
	}
}

// formatAddress - formats specified network address for logging purposes.
func formatAddress(a net.Addr) string {
	return fmt.Sprintf("%s %s", a.Network(), a.String())
}
