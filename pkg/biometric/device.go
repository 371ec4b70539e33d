package biometric

import (
	"context"
	"errors"
)

// Template is an opaque biometric template produced by a capture device.
type Template []byte

// Device abstracts a fingerprint capture/matching integration. Matching is
// supplied by an external device SDK collaborator; this service only carries
// the capability boundary.
type Device interface {
	Capture(ctx context.Context) (Template, error)
	// Compare returns a similarity score in [0,1].
	Compare(a, b Template) (float64, error)
}

var ErrDeviceUnavailable = errors.New("biometric device unavailable")

// UnavailableDevice is the default wiring when no device integration is
// configured.
type UnavailableDevice struct{}

func (UnavailableDevice) Capture(context.Context) (Template, error) {
	return nil, ErrDeviceUnavailable
}

func (UnavailableDevice) Compare(Template, Template) (float64, error) {
	return 0, ErrDeviceUnavailable
}
