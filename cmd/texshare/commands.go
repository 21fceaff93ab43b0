package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/zimwip/texshare"
)

// server is one row of the listing.
type server struct {
	Kind    string
	ID      string
	Name    string
	AppName string
	Detail  string
}

var filterFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "name",
		Usage: "only servers with this name",
	},
	&cli.StringFlag{
		Name:  "app",
		Usage: "only servers of this application",
	},
}

var listCommand = &cli.Command{
	Name:   "list",
	Usage:  "list published servers and senders",
	Flags:  filterFlags,
	Action: runList,
}

var watchCommand = &cli.Command{
	Name:  "watch",
	Usage: "print servers as they appear and retire",
	Flags: append([]cli.Flag{
		&cli.DurationFlag{
			Name:  "interval",
			Usage: "poll interval (default from config)",
		},
	}, filterFlags...),
	Action: runWatch,
}

var infoCommand = &cli.Command{
	Name:      "info",
	Usage:     "show details of a server or sender",
	ArgsUsage: "NAME",
	Action:    runInfo,
}

func filters(c *cli.Context) (name, app string) {
	cfg := configOf(c)

	name, app = cfg.Client.Name, cfg.Client.AppName
	if c.IsSet("name") {
		name = c.String("name")
	}
	if c.IsSet("app") {
		app = c.String("app")
	}

	return name, app
}

func runList(c *cli.Context) error {
	name, app := filters(c)

	servers := collect(name, app)
	printTable(os.Stdout, servers)

	return nil
}

func runWatch(c *cli.Context) error {
	name, app := filters(c)

	interval := configOf(c).Client.PollInterval
	if c.IsSet("interval") {
		interval = c.Duration("interval")
	}
	if interval <= 0 {
		return cli.Exit("interval must be positive", 2)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watch(ctx, os.Stdout, interval, func() []server {
		return collect(name, app)
	})
}

func watch(ctx context.Context, w io.Writer, interval time.Duration, poll func() []server) error {
	known := make(map[string]server)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		seen := make(map[string]bool)
		for _, s := range poll() {
			key := watchKey(s)
			seen[key] = true
			if prev, ok := known[key]; !ok {
				fmt.Fprintf(w, "+ %s %s %q %s\n", s.Kind, s.ID, s.Name, s.AppName)
			} else if prev != s {
				fmt.Fprintf(w, "~ %s %s %q %s\n", s.Kind, s.ID, s.Name, s.AppName)
			}
			known[key] = s
		}
		for key, s := range known {
			if !seen[key] {
				fmt.Fprintf(w, "- %s %s %q %s\n", s.Kind, s.ID, s.Name, s.AppName)
				delete(known, key)
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// watchKey identifies a server across polls. Servers
// without an id are told apart by name.
func watchKey(s server) string {
	id := s.ID
	if id == "" {
		id = "name:" + s.Name
	}

	return s.Kind + "/" + id
}

func runInfo(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("info takes exactly one NAME", 2)
	}
	name := c.Args().First()

	found := false
	for _, s := range collect(name, "") {
		found = true
		fmt.Fprintf(os.Stdout, "kind:    %s\nid:      %s\nname:    %s\napp:     %s\n", s.Kind, s.ID, s.Name, s.AppName)
		if s.Detail != "" {
			fmt.Fprintf(os.Stdout, "detail:  %s\n", s.Detail)
		}
		fmt.Fprintln(os.Stdout)
	}
	if !found {
		return cli.Exit(fmt.Sprintf("no server named %q", name), 1)
	}

	return nil
}

// collect gathers servers from every framework
// present on this platform.
func collect(name, app string) []server {
	servers := syphonServers(name, app)
	if app == "" {
		servers = append(servers, spoutSenders(name)...)
	}

	return servers
}

func syphonServers(name, app string) []server {
	dir, err := texshare.SharedDirectory()
	if err != nil {
		logUnavailable("syphon", err)
		return nil
	}

	match, err := dir.ServersMatching(name, app)
	if err != nil {
		texshare.Logger().Warn("directory query failed", zap.Error(err))
		return nil
	}
	defer match.Close()

	var servers []server
	match.Each(func(desc *texshare.ServerDescription) bool {
		id, _ := desc.ID()
		n, _ := desc.Name()
		a, _ := desc.AppName()
		servers = append(servers, server{Kind: "syphon", ID: id, Name: n, AppName: a})
		return true
	})

	return servers
}

func spoutSenders(name string) []server {
	// Spout discovery needs no GL context but does
	// touch thread-affine DirectX state.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	receiver, err := texshare.NewSpoutReceiver("")
	if err != nil {
		logUnavailable("spout", err)
		return nil
	}
	defer receiver.Close()

	var servers []server
	for _, sender := range receiver.SenderNames() {
		if name != "" && sender != name {
			continue
		}

		s := server{Kind: "spout", ID: sender, Name: sender}
		if info, ok := receiver.SenderInfo(sender); ok {
			s.Detail = fmt.Sprintf("%dx%d format %d", info.Width, info.Height, info.Format)
		}
		servers = append(servers, s)
	}

	return servers
}

func logUnavailable(framework string, err error) {
	if errors.Is(err, texshare.ErrUnavailable) {
		texshare.Logger().Debug("framework not present", zap.String("framework", framework))
		return
	}

	texshare.Logger().Warn("framework failed", zap.String("framework", framework), zap.Error(err))
}

const (
	headerOn  = "\033[1m"
	headerOff = "\033[0m"
)

func printTable(w io.Writer, servers []server) {
	header := fmt.Sprintf("%-7s %-38s %-24s %s", "KIND", "ID", "NAME", "APP")
	if interactive() {
		header = headerOn + header + headerOff
	}
	fmt.Fprintln(w, header)

	for _, s := range servers {
		fmt.Fprintf(w, "%-7s %-38s %-24s %s\n", s.Kind, s.ID, s.Name, s.AppName)
	}
}
