// Package assets holds the static resources compiled into the binary.
package assets

import (
	"embed"
	"fmt"

	"chatmux/errors"

	"github.com/gabriel-vasile/mimetype"
)

//go:embed logo.png
var files embed.FS

// Logo returns the branding image served by the admin surface.
func Logo() ([]byte, error) {
	data, err := files.ReadFile("logo.png")
	if err != nil {
		return nil, fmt.Errorf("%w: logo.png: %v", errors.ErrMissingResource, err)
	}
	return data, nil
}

// Check verifies the embedded resources at boot. A build that ships a
// corrupt or swapped asset fails fast instead of serving garbage.
func Check() error {
	data, err := Logo()
	if err != nil {
		return err
	}
	kind := mimetype.Detect(data)
	if !kind.Is("image/png") {
		return fmt.Errorf("%w: logo.png is %s, expected image/png",
			errors.ErrMissingResource, kind.String())
	}
	return nil
}
