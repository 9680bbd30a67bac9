// Command culd is the RF pulse demodulator daemon: it drives a GPIO line
// carrying a transceiver's demodulated data-out pin, decodes frames for the
// supported home-automation protocols, and exposes them on a pty a client
// can open as if it were the transceiver's own serial port.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/brutella/dnssd"
	"github.com/creack/pty"
	"github.com/spf13/pflag"

	"github.com/cul-go/rfdemod/internal/config"
	"github.com/cul-go/rfdemod/internal/discover"
	"github.com/cul-go/rfdemod/internal/edgesrc"
	"github.com/cul-go/rfdemod/internal/ioline"
	"github.com/cul-go/rfdemod/internal/logsink"
	"github.com/cul-go/rfdemod/rfcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "culd:", err)
		os.Exit(1)
	}
}

func run() error {
	fs := pflag.NewFlagSet("culd", pflag.ContinueOnError)
	configPath := fs.String("config", "", "path to a YAML config file")
	config.RegisterFlags(fs)
	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath, fs)
	if err != nil {
		return err
	}

	device := cfg.Device
	if device == "" && cfg.USBVendorID != "" {
		device, err = discover.VendorProduct(cfg.USBVendorID, cfg.USBProductID)
		if err != nil {
			return err
		}
	}

	ptyMaster, ptySlave, err := pty.Open()
	if err != nil {
		return fmt.Errorf("open pty: %w", err)
	}
	defer ptyMaster.Close()
	defer ptySlave.Close()
	fmt.Fprintf(os.Stderr, "culd: decoded frames available on %s\n", ptySlave.Name())

	sink, err := logsink.New(ptyMaster, "")
	if err != nil {
		return fmt.Errorf("build log sink: %w", err)
	}

	report, err := cfg.ReportFlags()
	if err != nil {
		return err
	}

	recv := rfcore.NewReceiver(rfcore.Config{Report: report, GIRA: cfg.GIRA}, sink, tickClock())

	// A resolved serial device (explicit or USB-discovered) means the
	// transceiver's demodulated data-out is bridged through a UART front-end
	// rather than exposed on a host GPIO pin; that takes priority over a
	// configured GPIO chip, since the two are mutually exclusive wiring of
	// the same radio.
	var closeSrc func() error
	switch {
	case device != "":
		src, err := ioline.OpenEdgeSource(device, cfg.Baud, recv)
		if err != nil {
			return fmt.Errorf("open serial edge source: %w", err)
		}
		closeSrc = src.Close

	case cfg.GPIOChip != "":
		src, err := edgesrc.Open(cfg.GPIOChip, cfg.GPIOLine, recv)
		if err != nil {
			return fmt.Errorf("open gpio line: %w", err)
		}
		closeSrc = src.Close

	default:
		return fmt.Errorf("no serial device or gpio-chip configured")
	}
	defer closeSrc()

	var responder dnssd.Responder
	if cfg.Advertise {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		responder, err = dnssd.NewResponder()
		if err != nil {
			return fmt.Errorf("dnssd responder: %w", err)
		}
		svc, err := dnssd.NewService(dnssd.Config{
			Name: "culd",
			Type: "_culd._tcp",
			Port: 0,
		})
		if err != nil {
			return fmt.Errorf("dnssd service: %w", err)
		}
		if _, err := responder.Add(svc); err != nil {
			return fmt.Errorf("dnssd add: %w", err)
		}
		go responder.Respond(ctx)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	return nil
}

// tickClock returns a ~8ms tick counter for the dedup window, grounded on
// the firmware's free-running tick source. It is derived from the wall
// clock (nowMillis), so a wall-clock step also moves the counter.
func tickClock() func() uint32 {
	start := nowMillis()
	return func() uint32 {
		return uint32((nowMillis() - start) / 8)
	}
}
