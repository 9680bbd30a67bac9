// Package config merges a YAML configuration file with command-line flag
// overrides into the settings culd needs to start a Receiver.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/cul-go/rfdemod/rfcore"
)

// Config is the on-disk/CLI-overridable configuration for culd.
type Config struct {
	Device       string   `yaml:"device"`
	Baud         int      `yaml:"baud"`
	GPIOChip     string   `yaml:"gpio_chip"`
	GPIOLine     int      `yaml:"gpio_line"`
	USBVendorID  string   `yaml:"usb_vendor_id"`
	USBProductID string   `yaml:"usb_product_id"`
	GIRA         bool     `yaml:"gira"`
	Report       []string `yaml:"report"`
	HouseCode    uint16   `yaml:"fht_house_code"`
	Advertise    bool     `yaml:"advertise"`
}

var reportBits = map[string]rfcore.ReportFlag{
	"known":    rfcore.ReportKnown,
	"repeated": rfcore.ReportRepeated,
	"fht":      rfcore.ReportFHTProto,
	"rssi":     rfcore.ReportRSSI,
	"monitor":  rfcore.ReportMonitor,
	"bintime":  rfcore.ReportBinTime,
	"bits":     rfcore.ReportBits,
	"lcdmon":   rfcore.ReportLCDMon,
}

// ReportFlags translates the configured report name list into rfcore's
// bitmask, rejecting unknown names.
func (c Config) ReportFlags() (rfcore.ReportFlag, error) {
	var flags rfcore.ReportFlag
	for _, name := range c.Report {
		bit, ok := reportBits[name]
		if !ok {
			return 0, fmt.Errorf("config: unknown report flag %q", name)
		}
		flags |= bit
	}
	return flags, nil
}

// Load reads path as YAML (if it exists) and layers flags registered on fs
// over it. fs must already have been parsed.
func Load(path string, fs *pflag.FlagSet) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	if fs.Changed("device") {
		cfg.Device, _ = fs.GetString("device")
	}
	if fs.Changed("baud") {
		cfg.Baud, _ = fs.GetInt("baud")
	}
	if fs.Changed("gpio-chip") {
		cfg.GPIOChip, _ = fs.GetString("gpio-chip")
	}
	if fs.Changed("gpio-line") {
		cfg.GPIOLine, _ = fs.GetInt("gpio-line")
	}
	if fs.Changed("gira") {
		cfg.GIRA, _ = fs.GetBool("gira")
	}
	if fs.Changed("advertise") {
		cfg.Advertise, _ = fs.GetBool("advertise")
	}
	if fs.Changed("report") {
		cfg.Report, _ = fs.GetStringSlice("report")
	}

	if cfg.Baud == 0 {
		cfg.Baud = 9600
	}

	return cfg, nil
}

// RegisterFlags adds culd's overridable flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("device", "", "serial device path (overrides usb_vendor_id/usb_product_id discovery)")
	fs.Int("baud", 9600, "serial baud rate")
	fs.String("gpio-chip", "", "gpiochip device carrying the demodulated data-out line")
	fs.Int("gpio-line", 0, "line offset on gpio-chip")
	fs.Bool("gira", false, "decode ESA frames using the wider GIRA layout")
	fs.Bool("advertise", false, "advertise this receiver over mDNS")
	fs.StringSlice("report", nil, "report flags to enable: known,repeated,fht,rssi,monitor,bintime,bits,lcdmon")
}
