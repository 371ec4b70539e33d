package biometric

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnavailableDevice(t *testing.T) {
	var device Device = UnavailableDevice{}

	_, err := device.Capture(context.Background())
	assert.ErrorIs(t, err, ErrDeviceUnavailable)

	_, err = device.Compare(Template("a"), Template("b"))
	assert.ErrorIs(t, err, ErrDeviceUnavailable)
}
