// Package udp periodically emits the current fix as a JSON datagram to a
// configured destination, for consumers like moving-map displays.
package udp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"time"
)

type udpConn interface {
	Write(p []byte) (int, error)
	Close() error
}

type Broadcaster struct {
	dest string
	conn udpConn
}

func NewBroadcaster(dest string) (*Broadcaster, error) {
	return newBroadcaster(dest, net.ResolveUDPAddr,
		func(network string, laddr, raddr *net.UDPAddr) (udpConn, error) {
			return net.DialUDP(network, laddr, raddr)
		})
}

func newBroadcaster(dest string,
	resolve func(network, address string) (*net.UDPAddr, error),
	dial func(network string, laddr, raddr *net.UDPAddr) (udpConn, error),
) (*Broadcaster, error) {
	addr, err := resolve("udp", dest)
	if err != nil {
		return nil, fmt.Errorf("resolve dest: %w", err)
	}

	// Dialing selects a suitable local address automatically.
	conn, err := dial("udp", nil, addr)
	if err != nil {
		return nil, fmt.Errorf("dial udp: %w", err)
	}

	return &Broadcaster{
		dest: dest,
		conn: conn,
	}, nil
}

func (b *Broadcaster) Send(payload []byte) error {
	if len(payload) == 0 {
		return nil
	}
	_, err := b.conn.Write(payload)
	return err
}

// Run sends one JSON-encoded payload per interval until ctx is done.
// Send errors are logged and do not stop the loop; UDP consumers come
// and go.
func (b *Broadcaster) Run(ctx context.Context, interval time.Duration, payload func() any) error {
	if interval <= 0 {
		interval = time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			buf, err := json.Marshal(payload())
			if err != nil {
				log.Printf("udp: marshal: %v", err)
				continue
			}
			buf = append(buf, '\n')
			if err := b.Send(buf); err != nil {
				log.Printf("udp: send to %s: %v", b.dest, err)
			}
		}
	}
}

func (b *Broadcaster) Close() error {
	if b.conn == nil {
		return nil
	}
	return b.conn.Close()
}
