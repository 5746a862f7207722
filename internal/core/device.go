package core

import (
	"fmt"
	"net"

	"github.com/cespare/xxhash/v2"
)

// DeriveDeviceID hashes the machine's primary MAC address into a
// stable per-machine identifier of the form "device-<16 hex>". The
// same machine yields the same id across restarts since it depends
// only on hardware that doesn't change between runs.
func DeriveDeviceID() (string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "", errInvalidWorkspace("could not enumerate network interfaces", err)
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		if len(iface.HardwareAddr) == 0 || isZeroMAC(iface.HardwareAddr) {
			continue
		}
		sum := xxhash.Sum64(iface.HardwareAddr)
		return fmt.Sprintf("device-%016x", sum), nil
	}
	return "", errInvalidWorkspace("no network interface with a MAC address was found", nil)
}

func isZeroMAC(mac net.HardwareAddr) bool {
	for _, b := range mac {
		if b != 0 {
			return false
		}
	}
	return true
}
