package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/ntarasov/equiptrack/internal/cache"
	"github.com/ntarasov/equiptrack/internal/config"
	"github.com/ntarasov/equiptrack/internal/domain/models"
	devicesvc "github.com/ntarasov/equiptrack/internal/service/devices"
	inventorysvc "github.com/ntarasov/equiptrack/internal/service/inventory"
	"github.com/ntarasov/equiptrack/pkg/clients/backend"
	"github.com/ntarasov/equiptrack/pkg/logger"
)

// scanctl is the terminal companion for stocktaking: log in, pick an active
// session, then feed it inventory numbers from a barcode scanner wedge or
// the keyboard. Running statistics print after every accepted scan.
func main() {
	fs := flag.NewFlagSet("scanctl", flag.ContinueOnError)

	var envFile string
	fs.StringVar(&envFile, "env", "", "")
	fs.StringVar(&envFile, "e", "", "")

	var username string
	fs.StringVar(&username, "user", "", "")
	fs.StringVar(&username, "u", "", "")

	var sessionID int64
	fs.Int64Var(&sessionID, "session", 0, "")
	fs.Int64Var(&sessionID, "s", 0, "")

	fs.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: scanctl [flags]

Flags:
  -e, -env <path>        env file to load (default: environment only)
  -u, -user <name>       backend username (prompted when omitted)
  -s, -session <id>      inventory session to scan into (picked interactively when omitted)
  -h, -help              show this help and exit
`)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	cfg, err := config.Load(envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := logger.Must(logger.New())
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := backend.New(cfg.Backend, log.Named("clients.backend"))

	if _, err := client.Ping(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "backend unreachable:", err)
		os.Exit(1)
	}

	if err := login(ctx, client, username); err != nil {
		fmt.Fprintln(os.Stderr, "login failed:", err)
		os.Exit(1)
	}

	queryCache := cache.New(cfg.Cache.TTL)
	inventory := inventorysvc.NewService(client, queryCache, log.Named("svc.inventory"))
	devices := devicesvc.NewService(client, queryCache, log.Named("svc.devices"))

	session, err := pickSession(ctx, inventory, sessionID)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("Scanning into session %d (%s). Enter inventory numbers, empty line or Ctrl-D to finish.\n",
		session.ID, session.Name)

	scanLoop(ctx, inventory, devices, session.ID)
}

func login(ctx context.Context, client *backend.Client, username string) error {
	reader := bufio.NewReader(os.Stdin)

	if username == "" {
		fmt.Print("Username: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		username = strings.TrimSpace(line)
	}

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return err
	}

	return client.Login(ctx, username, string(password))
}

func pickSession(ctx context.Context, inventory *inventorysvc.Service, id int64) (*models.InventorySession, error) {
	if id != 0 {
		return inventory.GetSession(ctx, id)
	}

	active := models.SessionActive
	sessions, err := inventory.ListSessions(ctx, &active)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	if len(sessions) == 0 {
		return nil, errors.New("no active inventory sessions, create one first")
	}

	fmt.Println("Active sessions:")
	for _, s := range sessions {
		fmt.Printf("  %d  %s (started %s)\n", s.ID, s.Name, s.CreatedAt.Format("2006-01-02"))
	}
	fmt.Print("Session ID: ")

	var picked int64
	if _, err := fmt.Scanln(&picked); err != nil {
		return nil, errors.New("invalid session id")
	}
	return inventory.GetSession(ctx, picked)
}

func scanLoop(ctx context.Context, inventory *inventorysvc.Service, devices *devicesvc.Service, sessionID int64) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		number := strings.TrimSpace(scanner.Text())
		if number == "" {
			break
		}

		device, err := devices.FindByInventoryNumber(ctx, number)
		if err != nil {
			reportScanError(number, err)
			continue
		}

		if _, err := inventory.CheckDevice(ctx, sessionID, device.ID, true, ""); err != nil {
			reportScanError(number, err)
			if errors.Is(err, inventorysvc.ErrSessionClosed) {
				return
			}
			continue
		}

		stats, err := inventory.Statistics(ctx, sessionID)
		if err != nil {
			fmt.Printf("checked %s (statistics unavailable: %v)\n", number, err)
			continue
		}
		fmt.Printf("checked %s  [%d/%d, %.2f%%]\n",
			number, stats.CheckedDevices, stats.TotalDevices, stats.ProgressPercent)
	}

	stats, err := inventory.Statistics(ctx, sessionID)
	if err == nil {
		fmt.Printf("Done: %d of %d checked (%.2f%%), %d remaining.\n",
			stats.CheckedDevices, stats.TotalDevices, stats.ProgressPercent, stats.RemainingDevices)
	}
}

func reportScanError(number string, err error) {
	switch {
	case errors.Is(err, backend.ErrNotFound):
		fmt.Printf("not found: %s\n", number)
	case errors.Is(err, inventorysvc.ErrSessionClosed):
		fmt.Println("session is no longer active")
	case errors.Is(err, backend.ErrNetwork):
		fmt.Printf("backend unreachable, %s not recorded\n", number)
	default:
		fmt.Printf("error on %s: %v\n", number, err)
	}
}
