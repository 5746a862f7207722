package core

import (
	"regexp"
	"testing"
)

var deviceIDPattern = regexp.MustCompile(`^device-[0-9a-f]{16}$`)

func TestDeriveDeviceIDStableAndFormatted(t *testing.T) {
	id1, err := DeriveDeviceID()
	if err != nil {
		t.Skipf("no network interface available in this environment: %v", err)
	}
	id2, err := DeriveDeviceID()
	if err != nil {
		t.Fatalf("DeriveDeviceID (2nd call): %v", err)
	}
	if id1 != id2 {
		t.Errorf("device id not stable across calls: %q vs %q", id1, id2)
	}
	if !deviceIDPattern.MatchString(id1) {
		t.Errorf("device id %q does not match %s", id1, deviceIDPattern)
	}
}
