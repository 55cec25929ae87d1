// Command aircarbon estimates the per-passenger CO2 of a flight journey.
//
//	aircarbon -from London -via Singapore -to Sydney -v
//
// Cities not given as flags are prompted for on stdin.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"flight-carbon-service/internal/app"
	"flight-carbon-service/internal/config"
	"flight-carbon-service/internal/platform/obs"
	"flight-carbon-service/internal/report"
	"flight-carbon-service/internal/services"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("aircarbon", flag.ContinueOnError)
	fs.SetOutput(stderr)
	from := fs.String("from", "", "city of departure")
	via := fs.String("via", "", "city of layover (empty, none or direct for a direct flight)")
	to := fs.String("to", "", "city of arrival")
	verbose := fs.Bool("v", cfg.Verbose, "narrate each calculation step")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger, err := obs.NewLogger(stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx)

	req, prompted, err := readRequest(stdin, stdout, *from, *via, *to, isFlagSet(fs, "via"))
	if err != nil {
		return err
	}
	if prompted && *verbose {
		fmt.Fprintln(stdout, report.Separator)
	}

	a, err := app.New(ctx, cfg, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	j, err := a.Journeys.Estimate(ctx, req)
	if err != nil {
		return err
	}

	return report.Write(stdout, j, *verbose)
}

func isFlagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// readRequest fills in missing cities by prompting on stdin. The layover is
// prompted for only when departure or arrival is also missing and -via was not given.
func readRequest(stdin io.Reader, stdout io.Writer, from, via, to string, viaSet bool) (services.JourneyRequest, bool, error) {
	req := services.JourneyRequest{Departure: from, Layover: via, Arrival: to}
	if strings.TrimSpace(from) != "" && strings.TrimSpace(to) != "" {
		return req, false, nil
	}

	sc := bufio.NewScanner(stdin)
	prompt := func(label string) (string, error) {
		fmt.Fprint(stdout, label)
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", fmt.Errorf("read %s: %w", strings.TrimSuffix(label, ": "), err)
			}
			return "", nil
		}
		return strings.TrimSpace(sc.Text()), nil
	}

	var err error
	if strings.TrimSpace(req.Departure) == "" {
		if req.Departure, err = prompt("City of Departure: "); err != nil {
			return req, true, err
		}
	}
	if !viaSet {
		if req.Layover, err = prompt("City of Layover: "); err != nil {
			return req, true, err
		}
	}
	if strings.TrimSpace(req.Arrival) == "" {
		if req.Arrival, err = prompt("City of Arrival: "); err != nil {
			return req, true, err
		}
	}

	if strings.TrimSpace(req.Departure) == "" || strings.TrimSpace(req.Arrival) == "" {
		return req, true, errors.New("departure and arrival are required")
	}
	return req, true, nil
}
