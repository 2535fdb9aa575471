// Package discover locates a PhoneConnect gateway on the local network
// through mDNS service discovery.
package discover

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fctx"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/grandcat/zeroconf"
	"github.com/phoneconnect/dial/api/errorkinds"
	"github.com/rs/zerolog"
)

// Service is the DNS-SD service type advertised by the gateway.
const (
	Service = "_phoneconnect._tcp"
	Domain  = "local."
)

// Gateway is a resolved gateway address.
type Gateway struct {
	URL  string
	Host string
	Port int
}

// InterfaceLister returns the network interfaces to browse on.
// An empty list means every multicast-capable interface.
type InterfaceLister func() []net.Interface

type options struct {
	log        zerolog.Logger
	interfaces InterfaceLister
}

// Option configures a discovery.
type Option func(*options)

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// WithInterfaces sets the interface lister. By default the interfaces that
// NetworkManager reports as activated are used.
func WithInterfaces(l InterfaceLister) Option {
	return func(o *options) {
		o.interfaces = l
	}
}

// Find browses for the gateway and returns the first resolved instance with
// a usable address. It fails with errorkinds.ErrGatewayNotFound if nothing
// answers within timeout.
func Find(ctx context.Context, timeout time.Duration, opts ...Option) (Gateway, error) {
	o := options{
		log:        zerolog.Nop(),
		interfaces: ActiveInterfaces,
	}
	for _, opt := range opts {
		opt(&o)
	}

	ctx = fctx.WithMeta(ctx, "service", Service, "timeout", timeout.String())

	var clientOpts []zeroconf.ClientOption
	if ifaces := o.interfaces(); len(ifaces) > 0 {
		clientOpts = append(clientOpts, zeroconf.SelectIfaces(ifaces))
		for _, iface := range ifaces {
			o.log.Debug().Str("iface", iface.Name).Msg("browsing")
		}
	}

	resolver, err := zeroconf.NewResolver(clientOpts...)
	if err != nil {
		return Gateway{}, fault.Wrap(err,
			fctx.With(ctx),
			ftag.With(ftag.Internal),
			fmsg.With("Cannot start mDNS resolver"),
		)
	}

	browseCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	if err := resolver.Browse(browseCtx, Service, Domain, entries); err != nil {
		return Gateway{}, fault.Wrap(err,
			fctx.With(ctx),
			ftag.With(ftag.Internal),
			fmsg.With("Cannot browse for the gateway"),
		)
	}

	for {
		select {
		case entry, ok := <-entries:
			if !ok {
				return Gateway{}, notFound(ctx, timeout)
			}

			gw, ok := fromEntry(entry)
			if !ok {
				continue
			}

			o.log.Debug().Str("instance", entry.Instance).Str("url", gw.URL).Msg("gateway resolved")

			return gw, nil

		case <-browseCtx.Done():
			if ctx.Err() != nil {
				return Gateway{}, fault.Wrap(ctx.Err(), fctx.With(ctx), ftag.With(ftag.Cancelled))
			}

			return Gateway{}, notFound(ctx, timeout)
		}
	}
}

func notFound(ctx context.Context, timeout time.Duration) error {
	return fault.Wrap(errorkinds.ErrGatewayNotFound,
		fctx.With(ctx),
		ftag.With(ftag.NotFound),
		fmsg.WithDesc("gateway not found",
			"No gateway found on LAN within "+timeout.String()+
				". Make sure the server is running on the same network."),
	)
}

func fromEntry(entry *zeroconf.ServiceEntry) (Gateway, bool) {
	if entry == nil || entry.Port <= 0 {
		return Gateway{}, false
	}

	ip := pickAddress(append(append([]net.IP(nil), entry.AddrIPv4...), entry.AddrIPv6...))
	if ip == nil {
		return Gateway{}, false
	}

	host := ip.String()

	return Gateway{
		URL:  "http://" + net.JoinHostPort(host, strconv.Itoa(entry.Port)),
		Host: host,
		Port: entry.Port,
	}, true
}

// pickAddress prefers a routable IPv4 address, then any non-loopback
// address, then whatever comes first.
func pickAddress(addrs []net.IP) net.IP {
	for _, a := range addrs {
		if a.To4() != nil && !a.IsLoopback() && !a.IsLinkLocalUnicast() {
			return a
		}
	}
	for _, a := range addrs {
		if !a.IsLoopback() {
			return a
		}
	}
	if len(addrs) > 0 {
		return addrs[0]
	}

	return nil
}
