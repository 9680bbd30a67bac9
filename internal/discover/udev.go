// Package discover locates the transceiver's serial device node by USB
// vendor/product ID instead of requiring a hardcoded /dev path.
package discover

import (
	"fmt"

	"github.com/jochenvg/go-udev"
)

// VendorProduct finds the devnode of the first tty device whose parent USB
// device matches vendorID:productID (lowercase hex, no "0x" prefix, as
// reported by lsusb).
func VendorProduct(vendorID, productID string) (string, error) {
	u := udev.Udev{}
	enum := u.NewEnumerate()

	if err := enum.AddMatchSubsystem("tty"); err != nil {
		return "", fmt.Errorf("discover: match subsystem: %w", err)
	}

	devices, err := enum.Devices()
	if err != nil {
		return "", fmt.Errorf("discover: enumerate: %w", err)
	}

	for _, dev := range devices {
		usb := dev.ParentWithSubsystemDevtype("usb", "usb_device")
		if usb == nil {
			continue
		}
		if usb.PropertyValue("ID_VENDOR_ID") == vendorID && usb.PropertyValue("ID_MODEL_ID") == productID {
			if node := dev.Devnode(); node != "" {
				return node, nil
			}
		}
	}

	return "", fmt.Errorf("discover: no tty device matches %s:%s", vendorID, productID)
}
