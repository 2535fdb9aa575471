package linux

import (
	"context"
	"strings"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/phoneconnect/dial/api/config"
	"github.com/phoneconnect/dial/linux/internal/commands"
)

const (
	bluezBusName     = "org.bluez"
	bluezDeviceIface = "org.bluez.Device1"
	objManagerIface  = "org.freedesktop.DBus.ObjectManager"
)

// AliasResolver looks up the friendly name of a Bluetooth device.
type AliasResolver interface {
	// Alias returns the friendly name of the device with the given address,
	// or an empty string when no information is available.
	Alias(ctx context.Context, address string) string
}

// managedObjects is the reply of ObjectManager.GetManagedObjects.
type managedObjects = map[dbus.ObjectPath]map[string]map[string]dbus.Variant

// bluezAliases resolves aliases from the BlueZ daemon over the system bus.
type bluezAliases struct {
	conn *dbus.Conn
	err  error
	once sync.Once
}

// NewBluezAliases returns a resolver backed by the BlueZ D-Bus API.
// The system bus connection is opened on first use.
func NewBluezAliases() AliasResolver {
	return &bluezAliases{}
}

func (b *bluezAliases) bus() (*dbus.Conn, error) {
	b.once.Do(func() {
		b.conn, b.err = dbus.SystemBus()
	})

	return b.conn, b.err
}

// Alias returns the Alias (or Name) property of the matching org.bluez.Device1 object.
func (b *bluezAliases) Alias(ctx context.Context, address string) string {
	conn, err := b.bus()
	if err != nil {
		return ""
	}

	var objects managedObjects
	if err := conn.Object(bluezBusName, "/").
		CallWithContext(ctx, objManagerIface+".GetManagedObjects", 0).
		Store(&objects); err != nil {
		return ""
	}

	return aliasFromObjects(objects, address)
}

func aliasFromObjects(objects managedObjects, address string) string {
	for _, ifaces := range objects {
		props, ok := ifaces[bluezDeviceIface]
		if !ok {
			continue
		}

		addr, _ := props["Address"].Value().(string)
		if !strings.EqualFold(addr, address) {
			continue
		}

		for _, key := range []string{"Alias", "Name"} {
			if v, ok := props[key].Value().(string); ok && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		}
	}

	return ""
}

// bluetoothctlAliases resolves aliases by parsing `bluetoothctl info`.
type bluetoothctlAliases struct {
	runner commands.Runner
	tools  config.Tools
}

func (b *bluetoothctlAliases) Alias(ctx context.Context, address string) string {
	out, err := commands.DeviceInfo(b.tools, address).OutputWith(ctx, b.runner)
	if err != nil && len(out) == 0 {
		return ""
	}

	return aliasFromInfo(out)
}

// aliasFromInfo returns the value of the first non-empty Alias or Name line of
// `bluetoothctl info`, whichever comes first.
func aliasFromInfo(out []byte) string {
	for _, line := range strings.Split(string(out), "\n") {
		t := strings.TrimSpace(line)

		rest, ok := strings.CutPrefix(t, "Alias:")
		if !ok {
			rest, ok = strings.CutPrefix(t, "Name:")
		}
		if ok && strings.TrimSpace(rest) != "" {
			return strings.TrimSpace(rest)
		}
	}

	return ""
}

// chainedAliases returns the first non-empty alias from its resolvers.
type chainedAliases []AliasResolver

func (c chainedAliases) Alias(ctx context.Context, address string) string {
	for _, r := range c {
		if r == nil {
			continue
		}
		if alias := r.Alias(ctx, address); alias != "" {
			return alias
		}
	}

	return ""
}
