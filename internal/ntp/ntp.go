// Package ntp sets the system clock from a network time server.
//
// based on https://github.com/tinygo-org/drivers/blob/release/examples/net/ntpclient/main.go
package ntp

import (
	"fmt"
	"io"
	"net"
	"runtime"
	"time"
)

const packetSize = 48

// Client issues SNTP requests against an ordered list of servers, falling back
// to the next host when one does not answer.
type Client struct {
	hosts []string
}

// NewClient takes "host:port" addresses, tried in order.
func NewClient(hosts ...string) *Client {
	return &Client{hosts: hosts}
}

// Sync queries the servers and, on the first response, shifts the time returned
// by time.Now to match. Returns the error from the last host when none answer.
func (c *Client) Sync() error {
	var err error
	for _, host := range c.hosts {
		if err = c.syncHost(host); err == nil {
			return nil
		}
	}
	return err
}

func (c *Client) syncHost(host string) error {
	conn, err := net.Dial("udp", host)
	if err != nil {
		return err
	}
	defer conn.Close()

	t, err := getCurrentTime(conn)
	if err != nil {
		return err
	}
	runtime.AdjustTimeOffset(-1 * int64(time.Since(t)))
	return nil
}

func getCurrentTime(conn net.Conn) (time.Time, error) {
	if err := sendPacket(conn); err != nil {
		return time.Time{}, err
	}

	response := make([]byte, packetSize)
	n, err := conn.Read(response)
	if err != nil && err != io.EOF {
		return time.Time{}, err
	}
	if n != packetSize {
		return time.Time{}, fmt.Errorf("expected NTP packet size of %d: %d", packetSize, n)
	}

	return parsePacket(response), nil
}

func sendPacket(conn net.Conn) error {
	var request = [packetSize]byte{
		0xe3, // LI, version, mode: client request
	}

	_, err := conn.Write(request[:])
	return err
}

func parsePacket(r []byte) time.Time {
	// the transmit timestamp starts at byte 40 of the received packet and is
	// four bytes of NTP time (seconds since Jan 1 1900):
	t := uint32(r[40])<<24 | uint32(r[41])<<16 | uint32(r[42])<<8 | uint32(r[43])
	const seventyYears = 2208988800
	return time.Unix(int64(t-seventyYears), 0)
}
