package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"supportdesk/internal/auth"
	"supportdesk/internal/config"
	"supportdesk/internal/routes"
	"supportdesk/internal/theme"
	"supportdesk/internal/ui"
	"supportdesk/internal/web"
)

const version = "v1.0.0"

func main() {
	// Load .env file if it exists
	// Production relies on real environment variables, so a missing file is fine
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		ui.LogStatus("error", err.Error())
		os.Exit(1)
	}

	ui.SetBrand(cfg.BrandColor)
	ui.PrintBanner(version)

	if cfg.Env.IsDevelopment() {
		ui.LogStatus("info", "Environment: "+ui.Warn("DEVELOPMENT"))
	} else {
		ui.LogStatus("info", "Environment: "+ui.Success("PRODUCTION"))
	}

	if err := cfg.Validate(); err != nil {
		ui.LogStatus("error", err.Error())
		os.Exit(1)
	}

	// Theme is computed once for the lifetime of the process
	sheet := theme.Global()
	sheet.Install(cfg.BrandColor)
	logPalette(sheet.Palette())
	logRoutes()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sessions := auth.NewSessions(auth.SessionConfig{
		Secret:     cfg.SessionSecret,
		TTL:        cfg.SessionTTL(),
		CookieName: cfg.CookieName,
		Secure:     cfg.Env.SecureCookies,
	})
	provider := auth.NewProvider(cfg.UsersFile, sessions)
	provider.Start(ctx)
	go awaitUsers(ctx, provider)
	go reloadOnHangup(ctx, provider)

	metrics := web.NewMetricsServer(cfg.MetricsListen)
	metrics.Start()
	ui.LogStatus("info", "Metrics: http://localhost"+cfg.MetricsListen+"/metrics")

	go func() {
		<-ctx.Done()
		ui.LogGracefulShutdown()
		metrics.Stop(context.Background())
	}()

	srv, err := web.NewServer(cfg, provider, sheet, version)
	if err != nil {
		ui.LogStatus("error", err.Error())
		os.Exit(1)
	}
	if err := srv.Start(ctx); err != nil {
		ui.LogStatus("error", "Server failed: "+err.Error())
		os.Exit(1)
	}
}

// awaitUsers reports the outcome of the first agent load
func awaitUsers(ctx context.Context, provider *auth.Provider) {
	waitCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := provider.Wait(waitCtx); err != nil {
		ui.LogStatus("error", "Agents not loaded, sign-in disabled: "+err.Error())
		return
	}
	if store := provider.Store(); store != nil {
		ui.LogStatus("success", "Loaded agents: "+strconv.Itoa(store.GetUserCount()))
	}
}

// reloadOnHangup re-reads users.json on SIGHUP
func reloadOnHangup(ctx context.Context, provider *auth.Provider) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			if err := provider.Reload(); err != nil {
				ui.LogStatus("error", "Reload agents: "+err.Error())
				continue
			}
			ui.LogStatus("success", "Reloaded agents: "+strconv.Itoa(provider.Store().GetUserCount()))
		}
	}
}

func logPalette(p theme.Palette) {
	ui.LogSection("Theme")
	for _, v := range p.Variables() {
		ui.LogGroupItem(v.Name, v.Value)
	}
}

func logRoutes() {
	columns := []ui.TableColumn{
		{Key: "table", Header: "Table"},
		{Key: "path", Header: "Path"},
		{Key: "view", Header: "View"},
	}
	var rows []map[string]string
	for _, t := range []routes.Table{routes.Public, routes.Private} {
		for _, r := range t.Routes {
			rows = append(rows, map[string]string{"table": t.Name, "path": r.Pattern, "view": string(r.View)})
		}
		rows = append(rows, map[string]string{"table": t.Name, "path": "*", "view": "→ " + t.Fallback("{path}")})
	}

	ui.LogSection("Routes")
	ui.PrintBlock(ui.RenderTable(columns, rows))
}
