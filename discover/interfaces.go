package discover

import (
	"net"

	"github.com/Wifx/gonetworkmanager"
)

// ActiveInterfaces returns the interfaces NetworkManager reports as
// activated. Without NetworkManager it returns nil.
func ActiveInterfaces() []net.Interface {
	nm, err := gonetworkmanager.NewNetworkManager()
	if err != nil {
		return nil
	}

	devices, err := nm.GetPropertyAllDevices()
	if err != nil {
		return nil
	}

	var names []string
	for _, d := range devices {
		state, err := d.GetPropertyState()
		if err != nil || state != gonetworkmanager.NmDeviceStateActivated {
			continue
		}

		name, err := d.GetPropertyIpInterface()
		if err != nil || name == "" {
			name, err = d.GetPropertyInterface()
		}
		if err == nil && name != "" {
			names = append(names, name)
		}
	}

	all, err := net.Interfaces()
	if err != nil {
		return nil
	}

	return selectInterfaces(all, names)
}

// selectInterfaces keeps the multicast-capable, up, non-loopback interfaces
// whose names are listed.
func selectInterfaces(all []net.Interface, names []string) []net.Interface {
	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[n] = struct{}{}
	}

	var selected []net.Interface
	for _, iface := range all {
		if _, ok := wanted[iface.Name]; !ok {
			continue
		}
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagMulticast == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		selected = append(selected, iface)
	}

	return selected
}
