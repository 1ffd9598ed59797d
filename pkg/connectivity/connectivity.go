// Package connectivity reports whether the host currently has a usable
// network path. Checks are synchronous, cheap, and never perform network I/O
// themselves.
package connectivity

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	gopsnet "github.com/shirou/gopsutil/v3/net"
)

// Checker is consulted before every fetch. Implementations must be safe for
// concurrent use.
type Checker interface {
	IsOnline() bool
}

// Func adapts a plain function to the Checker interface.
type Func func() bool

// IsOnline implements Checker.
func (f Func) IsOnline() bool { return f() }

// Static is a Checker whose answer is set explicitly. Useful for tests and for
// callers that learn about connectivity from somewhere else.
type Static struct {
	online atomic.Bool
}

// NewStatic returns a Static checker with the given initial state.
func NewStatic(online bool) *Static {
	s := &Static{}
	s.online.Store(online)
	return s
}

// IsOnline implements Checker.
func (s *Static) IsOnline() bool { return s.online.Load() }

// Set changes the reported state.
func (s *Static) Set(online bool) { s.online.Store(online) }

// interfaceLister is the slice of gopsutil used by Interfaces.
type interfaceLister func() (gopsnet.InterfaceStatList, error)

// Interfaces reports online when at least one interface is up, is not a
// loopback device, and has an address assigned. The interface table is
// cached for TTL so repeated checks stay cheap.
type Interfaces struct {
	ttl    time.Duration
	list   interfaceLister
	logger zerolog.Logger

	mu        sync.Mutex
	checkedAt time.Time
	online    bool
}

// DefaultInterfacesTTL is how long an interface scan is reused.
const DefaultInterfacesTTL = 2 * time.Second

// NewInterfaces creates an interface-table based checker.
func NewInterfaces(ttl time.Duration, logger zerolog.Logger) *Interfaces {
	if ttl < 0 {
		ttl = 0
	}
	return &Interfaces{
		ttl:    ttl,
		list:   gopsnet.Interfaces,
		logger: logger,
	}
}

// IsOnline implements Checker.
func (c *Interfaces) IsOnline() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.checkedAt.IsZero() && time.Since(c.checkedAt) < c.ttl {
		return c.online
	}

	ifaces, err := c.list()
	if err != nil {
		c.logger.Warn().Err(err).Msg("Interface scan failed, reporting offline")
		c.online = false
	} else {
		c.online = hasUsableInterface(ifaces)
	}
	c.checkedAt = time.Now()

	c.logger.Debug().
		Bool("online", c.online).
		Int("interfaces", len(ifaces)).
		Msg("Connectivity checked")

	return c.online
}

func hasUsableInterface(ifaces gopsnet.InterfaceStatList) bool {
	for _, iface := range ifaces {
		if !hasFlag(iface.Flags, "up") || hasFlag(iface.Flags, "loopback") {
			continue
		}
		if len(iface.Addrs) > 0 {
			return true
		}
	}
	return false
}

func hasFlag(flags []string, want string) bool {
	for _, f := range flags {
		if strings.EqualFold(f, want) {
			return true
		}
	}
	return false
}
