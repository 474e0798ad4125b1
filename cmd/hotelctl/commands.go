package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/hotel-management/pkg/client"
	"github.com/oksasatya/hotel-management/pkg/navigation"
)

const usage = `usage: hotelctl [-url URL] [-token TOKEN] [-routes FILE] [-v] <command> [args]

commands:
  probe                     show the current session
  check <path>              decide whether the session may open a dashboard path
  nav                       list the menu entries visible to the session
  breadcrumbs <path>        resolve the breadcrumb trail of a path
  notifications [-unread] [-follow]
                            list notifications, or tail them until interrupted
  login -email E [-password P]
                            sign in and print the access token`

var errUsage = errors.New(usage)

type app struct {
	out     io.Writer
	log     *logrus.Logger
	client  *client.Client
	manager *navigation.Manager
	poll    time.Duration
}

func run(ctx context.Context, args []string, out io.Writer) error {
	cfg := client.LoadConfig()

	fs := flag.NewFlagSet("hotelctl", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	baseURL := fs.String("url", cfg.BaseURL, "API base URL (HOTEL_API_URL)")
	token := fs.String("token", cfg.Token, "bearer token (HOTEL_TOKEN)")
	routes := fs.String("routes", os.Getenv("NAV_ROUTES_FILE"), "YAML route table replacing the built-in one")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() == 0 {
		return errUsage
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	cfg.BaseURL, cfg.Token = *baseURL, *token
	c, err := client.NewFromConfig(cfg, client.WithLogger(logger))
	if err != nil {
		return err
	}
	m := navigation.Default()
	if *routes != "" {
		rs, err := navigation.LoadRoutesFile(*routes)
		if err != nil {
			return fmt.Errorf("load routes: %w", err)
		}
		m = navigation.NewManager(rs)
	}

	a := &app{out: out, log: logger, client: c, manager: m, poll: cfg.PollInterval}
	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "probe":
		return a.probe(ctx)
	case "check":
		return a.check(ctx, rest)
	case "nav":
		return a.nav(ctx)
	case "breadcrumbs":
		return a.breadcrumbs(rest)
	case "notifications":
		return a.notifications(ctx, rest)
	case "login":
		return a.login(ctx, rest)
	}
	return fmt.Errorf("unknown command %q\n%w", cmd, errUsage)
}

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) probe(ctx context.Context) error {
	return a.print(a.client.Probe(ctx))
}

func (a *app) check(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	d, _ := client.NewGuard(a.client, a.manager).Check(ctx, args[0])
	return a.print(d)
}

func (a *app) nav(ctx context.Context) error {
	routes, _ := client.NewGuard(a.client, a.manager).Menu(ctx)
	return a.print(routes)
}

func (a *app) breadcrumbs(args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	return a.print(a.manager.Breadcrumbs(args[0]))
}

func (a *app) notifications(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("notifications", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	unread := fs.Bool("unread", false, "only unread")
	follow := fs.Bool("follow", false, "keep streaming")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if !*follow {
		list, err := a.client.Notifications(ctx, *unread)
		if err != nil {
			return err
		}
		return a.print(list)
	}

	n := client.NewNotifier(a.client, client.WithPollInterval(a.poll))
	var mu sync.Mutex
	seen := map[string]bool{}
	n.OnChange(func(s client.State) {
		mu.Lock()
		defer mu.Unlock()
		for i := len(s.Notifications) - 1; i >= 0; i-- {
			item := s.Notifications[i]
			if seen[item.ID] || (*unread && item.Read) {
				continue
			}
			seen[item.ID] = true
			fmt.Fprintf(a.out, "%s  [%s] %s\n", item.CreatedAt.Local().Format(time.DateTime), item.Type, item.Message)
		}
	})
	err := n.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	email := fs.String("email", os.Getenv("HOTEL_EMAIL"), "account email (HOTEL_EMAIL)")
	password := fs.String("password", os.Getenv("HOTEL_PASSWORD"), "account password (HOTEL_PASSWORD)")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if *email == "" || *password == "" {
		return errors.New("login needs -email and -password (or HOTEL_EMAIL / HOTEL_PASSWORD)")
	}
	u, err := a.client.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	a.log.WithFields(logrus.Fields{"user_id": u.ID, "role": u.Role}).Info("signed in")
	if tok := a.client.Cookie("access_token"); tok != "" {
		fmt.Fprintf(a.out, "export HOTEL_TOKEN=%s\n", tok)
	}
	return nil
}
