// SPDX-FileCopyrightText: 2025 The Nerd Fonts Manager Authors
// SPDX-License-Identifier: EUPL-1.2

// Package cli provides the command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	cli "github.com/urfave/cli/v3"

	"github.com/dahromy/nerd-fonts-manager/internal/backup"
	"github.com/dahromy/nerd-fonts-manager/internal/catalog"
	"github.com/dahromy/nerd-fonts-manager/internal/config"
	"github.com/dahromy/nerd-fonts-manager/internal/console"
	"github.com/dahromy/nerd-fonts-manager/internal/domain"
	"github.com/dahromy/nerd-fonts-manager/internal/installer"
	"github.com/dahromy/nerd-fonts-manager/internal/logging"
	"github.com/dahromy/nerd-fonts-manager/internal/network"
	"github.com/dahromy/nerd-fonts-manager/internal/platform"
	"github.com/dahromy/nerd-fonts-manager/internal/preview"
	"github.com/dahromy/nerd-fonts-manager/internal/profiles"
	"github.com/dahromy/nerd-fonts-manager/internal/selection"
	"github.com/dahromy/nerd-fonts-manager/internal/selfupdate"
	"github.com/dahromy/nerd-fonts-manager/internal/uninstall"
	"github.com/dahromy/nerd-fonts-manager/internal/update"
)

// Version is set at build time via -ldflags.
var Version = "dev" //nolint:gochecknoglobals

// CLI wires the components behind the command tree. Flags bind directly
// into the struct via Destination; each action resolves platform, config
// and logging once up front so the rest of the run sees the same setup.
type CLI struct {
	app *cli.Command

	plat     platform.Platform
	cfg      *config.Config
	log      *logging.Logger
	registry *profiles.Registry

	// Flag destinations.
	fontsCSV    string
	all         bool
	profileName string
	parallel    int
	dir         string
	noBackup    bool
	proxy       string
	logPath     string
	force       bool
	verify      bool
	previewText string
	configPath  string
	saveConfig  bool
	selfUpdate  bool
	verbose     bool
	plain       bool
	yes         bool
}

// NewCLI creates the CLI application.
func NewCLI() *CLI {
	app := &CLI{}

	app.app = &cli.Command{
		Name:    "nfm",
		Usage:   "Download, install and manage patched Nerd Fonts",
		Version: Version,
		Suggest: true,
		Description: `Installs curated monospace Nerd Fonts from the official release feed.

ESSENTIAL COMMANDS:
  install --fonts FiraCode,Hack   Install specific fonts
  install --profile coding        Install a curated font set
  list                            Show fonts available in the latest release
  uninstall --fonts Hack          Remove an installed font

QUICK START:
  nfm                             # Interactive selection from the catalog
  nfm install --all               # Install every font in the release
  nfm update                      # Refresh installed fonts to the latest release`,
		Flags:    app.globalFlags(),
		Action:   app.runInstall,
		Commands: app.createCommands(),
	}

	return app
}

// Run executes the CLI application.
func (app *CLI) Run(ctx context.Context, args []string) error {
	return app.app.Run(ctx, args)
}

func (app *CLI) globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "fonts",
			Usage:       "comma-separated list of fonts to act on",
			Destination: &app.fontsCSV,
		},
		&cli.BoolFlag{
			Name:        "all",
			Usage:       "act on every font in the catalog",
			Destination: &app.all,
		},
		&cli.StringFlag{
			Name:        "profile",
			Usage:       "act on a named font profile",
			Destination: &app.profileName,
		},
		&cli.IntFlag{
			Name:        "parallel",
			Usage:       "number of concurrent installations",
			Destination: &app.parallel,
		},
		&cli.StringFlag{
			Name:        "dir",
			Usage:       "custom fonts directory",
			Destination: &app.dir,
		},
		&cli.BoolFlag{
			Name:        "no-backup",
			Usage:       "skip the pre-install backup snapshot",
			Destination: &app.noBackup,
		},
		&cli.StringFlag{
			Name:        "proxy",
			Usage:       "proxy URL for downloads",
			Destination: &app.proxy,
		},
		&cli.StringFlag{
			Name:        "log",
			Usage:       "log file path",
			Destination: &app.logPath,
		},
		&cli.BoolFlag{
			Name:        "force",
			Usage:       "reinstall fonts even when already present",
			Destination: &app.force,
		},
		&cli.BoolFlag{
			Name:        "verify",
			Usage:       "validate every extracted font file",
			Destination: &app.verify,
		},
		&cli.StringFlag{
			Name:        "preview-text",
			Usage:       "sample text for preview images",
			Destination: &app.previewText,
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "config file path",
			Destination: &app.configPath,
		},
		&cli.BoolFlag{
			Name:        "save-config",
			Usage:       "persist the effective settings back to the config file",
			Destination: &app.saveConfig,
		},
		&cli.BoolFlag{
			Name:        "update",
			Usage:       "replace this executable with the latest release",
			Destination: &app.selfUpdate,
		},
		&cli.BoolFlag{
			Name:        "verbose",
			Aliases:     []string{"v"},
			Usage:       "show progress messages to stderr",
			Destination: &app.verbose,
		},
		&cli.BoolFlag{
			Name:        "plain",
			Usage:       "output plain text without formatting for scripts",
			Destination: &app.plain,
		},
		&cli.BoolFlag{
			Name:        "yes",
			Aliases:     []string{"y"},
			Usage:       "automatically answer yes to all prompts",
			Destination: &app.yes,
		},
	}
}

func (app *CLI) createCommands() []*cli.Command {
	// Every command carries the full flag set so flags work both before
	// and after the command word. Destinations are shared, so whichever
	// instance parses last wins.
	return []*cli.Command{
		{
			Name:   "install",
			Usage:  "Download and install fonts",
			Flags:  app.globalFlags(),
			Action: app.runInstall,
		},
		{
			Name:   "uninstall",
			Usage:  "Remove installed fonts",
			Flags:  app.globalFlags(),
			Action: app.runUninstall,
		},
		{
			Name:   "update",
			Usage:  "Refresh installed fonts to the latest release",
			Flags:  app.globalFlags(),
			Action: app.runUpdate,
		},
		{
			Name:   "preview",
			Usage:  "Render preview images for fonts",
			Flags:  app.globalFlags(),
			Action: app.runPreview,
		},
		{
			Name:   "list",
			Usage:  "List available fonts, or a profile's fonts with --profile",
			Flags:  app.globalFlags(),
			Action: app.runList,
		},
		{
			Name:   "profile",
			Usage:  "Show the available font profiles",
			Flags:  app.globalFlags(),
			Action: app.runProfiles,
		},
	}
}

// initRuntime resolves platform, config, logging and profiles. Every
// action calls it first, after its flags have been parsed.
func (app *CLI) initRuntime() error {
	console.DefaultOutput.SetMode(app.verbose, app.plain)

	plat, err := platform.Detect()
	if err != nil {
		return err
	}

	app.plat = plat

	configPath := app.configPath
	if configPath == "" {
		configPath = platform.DefaultConfigPath()
	}

	cfg, err := config.Load(configPath, plat)
	if err != nil {
		return err
	}

	// CLI flags override loaded settings.
	if app.dir != "" {
		cfg.FontsDir = platform.ExpandPath(app.dir)
	}

	if app.parallel > 0 {
		cfg.Parallel = app.parallel
	}

	if app.proxy != "" {
		cfg.Proxy = app.proxy
	}

	app.cfg = cfg

	if app.saveConfig {
		if err := cfg.Save(configPath); err != nil {
			return err
		}

		console.DefaultOutput.Successf("Saved config to %s", configPath)
	}

	logPath := app.logPath
	if logPath == "" {
		logPath = platform.DefaultLogPath()
	}

	log, err := logging.Open(logPath)
	if err != nil {
		return err
	}

	app.log = log

	registry, err := profiles.NewRegistryWithUserFile(platform.DefaultProfilesPath())
	if err != nil {
		return err
	}

	app.registry = registry

	return nil
}

// checkDependencies verifies the platform's external tools before any
// mutating command, listing every missing tool with an install hint.
func (app *CLI) checkDependencies() error {
	runner := platform.NewCommandRunner(app.verbose)

	var missing []string

	for _, tool := range app.plat.RequiredTools() {
		if !runner.CommandExists(tool) {
			missing = append(missing, fmt.Sprintf("%s (%s)", tool, platform.DependencyHint(tool)))
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrMissingDependency, strings.Join(missing, ", "))
	}

	return nil
}

func (app *CLI) networkClient() (domain.NetworkClient, error) {
	return network.NewHTTPClient(network.DefaultTimeout, app.cfg.Proxy)
}

// resolveCatalog queries the release feed once per invocation.
func (app *CLI) resolveCatalog(ctx context.Context) (*domain.Catalog, *catalog.Client, error) {
	httpClient, err := platform.HTTPClient(app.cfg.Proxy)
	if err != nil {
		return nil, nil, err
	}

	httpClient.Timeout = 30 * time.Second

	client := catalog.NewClient(httpClient, platform.CacheDir())

	cat, err := client.Resolve(ctx)
	if err != nil {
		return nil, nil, err
	}

	return cat, client, nil
}

func (app *CLI) selectionOptions() selection.Options {
	return selection.Options{
		Fonts:   splitCSV(app.fontsCSV),
		All:     app.all,
		Profile: app.profileName,
	}
}

// runInstall is the default action: resolve, select, back up, dispatch.
func (app *CLI) runInstall(ctx context.Context, cmd *cli.Command) error {
	if err := app.initRuntime(); err != nil {
		return err
	}

	if app.selfUpdate {
		return app.runSelfUpdate(ctx, cmd)
	}

	if err := app.checkDependencies(); err != nil {
		return err
	}

	cat, catClient, err := app.resolveCatalog(ctx)
	if err != nil {
		return err
	}

	fonts, err := selection.Resolve(cat, app.registry, app.selectionOptions(), nil)
	if err != nil {
		return err
	}

	request := domain.InstallationRequest{
		Fonts:    fonts,
		Force:    app.force,
		Verify:   app.verify,
		NoBackup: app.noBackup,
		Parallel: app.cfg.Parallel,
	}

	if !request.NoBackup {
		if _, err := backup.NewManager(app.log).Snapshot(app.cfg.FontsDir); err != nil {
			console.DefaultOutput.Warningf("Backup failed: %v", err)
			app.log.Warnf("Backup failed: %v", err)
		}
	}

	client, err := app.networkClient()
	if err != nil {
		return err
	}

	results := app.dispatchInstall(ctx, client, catClient, cat.Tag, request)

	app.refreshFontCache(ctx)

	return app.reportResults(results, "installed")
}

// dispatchInstall fans the installer out over the request's font list.
func (app *CLI) dispatchInstall(ctx context.Context, client domain.NetworkClient, catClient domain.CatalogClient, tag string, request domain.InstallationRequest) []domain.InstallResult {
	inst := installer.New(installer.Options{
		Platform: app.plat,
		Client:   client,
		Catalog:  catClient,
		Runner:   platform.NewCommandRunner(app.verbose),
		Log:      app.log,
		FontsDir: app.cfg.FontsDir,
		CacheDir: platform.CacheDir(),
		Tag:      tag,
		Force:    request.Force,
		Verify:   request.Verify,
	})

	return installer.Dispatch(ctx, request.Fonts, request.Parallel, inst.Install)
}

func (app *CLI) refreshFontCache(ctx context.Context) {
	refresh := app.plat.RefreshCommand()
	if refresh == nil {
		return
	}

	runner := platform.NewCommandRunner(app.verbose)
	if err := runner.Execute(ctx, refresh[0], refresh[1:]...); err != nil {
		console.DefaultOutput.Warningf("Font cache refresh failed: %v", err)
		app.log.Warnf("Font cache refresh failed: %v", err)
	}
}

// reportResults prints per-font outcomes and fails the invocation when any
// font failed, without having aborted the batch.
func (app *CLI) reportResults(results []domain.InstallResult, verb string) error {
	failed := 0

	for _, result := range results {
		switch result.Status {
		case domain.StatusSuccess:
			console.DefaultOutput.Successf("%s %s", strings.ToUpper(verb[:1])+verb[1:], result.Font)
		case domain.StatusSkipped:
			console.DefaultOutput.Progressf("Skipped %s (already installed)", result.Font)
		case domain.StatusFailed:
			failed++

			console.DefaultOutput.Errorf("%s: %v", result.Font, result.Err)
		}

		if console.DefaultOutput.Plain {
			console.DefaultOutput.PlainKeyValue(result.Font, string(result.Status))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d fonts not %s", failed, len(results), verb)
	}

	return nil
}

func (app *CLI) runUninstall(ctx context.Context, _ *cli.Command) error {
	if err := app.initRuntime(); err != nil {
		return err
	}

	fonts := splitCSV(app.fontsCSV)

	if app.all {
		fonts = uninstall.Installed(app.cfg.FontsDir)
		if len(fonts) == 0 {
			console.DefaultOutput.Result("No fonts installed")

			return nil
		}

		if !app.yes {
			confirmed, err := confirmRemoval(fonts)
			if err != nil {
				return err
			}

			if !confirmed {
				console.DefaultOutput.Result("Cancelled")

				return nil
			}
		}
	}

	if len(fonts) == 0 {
		return fmt.Errorf("%w: no fonts named", domain.ErrInvalidSelection)
	}

	runner := platform.NewCommandRunner(app.verbose)
	results := uninstall.NewUninstaller(app.plat, runner, app.log, app.cfg.FontsDir).Remove(ctx, fonts)

	return app.reportResults(results, "uninstalled")
}

func confirmRemoval(fonts []string) (bool, error) {
	confirmed := false

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Remove all %d installed fonts?", len(fonts))).
				Description(strings.Join(fonts, ", ")).
				Value(&confirmed),
		),
	)

	if err := form.Run(); err != nil {
		return false, err
	}

	return confirmed, nil
}

func (app *CLI) runUpdate(ctx context.Context, _ *cli.Command) error {
	if err := app.initRuntime(); err != nil {
		return err
	}

	if err := app.checkDependencies(); err != nil {
		return err
	}

	// Capture the last seen tag before resolving: Resolve overwrites the
	// version file with the fresh tag as a side effect.
	cachedTag := catalog.CachedReleaseTag(platform.CacheDir())

	cat, catClient, err := app.resolveCatalog(ctx)
	if err != nil {
		return err
	}

	client, err := app.networkClient()
	if err != nil {
		return err
	}

	results, outcome := update.Run(ctx, app.log, cachedTag, app.cfg.FontsDir, cat,
		func(ctx context.Context, fonts []string) []domain.InstallResult {
			request := domain.InstallationRequest{
				Fonts:    fonts,
				Force:    true,
				Verify:   app.verify,
				Parallel: app.cfg.Parallel,
			}

			return app.dispatchInstall(ctx, client, catClient, cat.Tag, request)
		})

	switch outcome {
	case update.UpToDate:
		console.DefaultOutput.Result("Fonts are up to date (release " + cat.Tag + ")")

		return nil
	case update.NothingToRefresh:
		console.DefaultOutput.Result("New release " + cat.Tag + " available but no installed fonts to update")

		return nil
	case update.Refreshed:
	}

	app.refreshFontCache(ctx)

	return app.reportResults(results, "updated")
}

func (app *CLI) runPreview(ctx context.Context, _ *cli.Command) error {
	if err := app.initRuntime(); err != nil {
		return err
	}

	fonts := splitCSV(app.fontsCSV)
	if len(fonts) == 0 {
		fonts = uninstall.Installed(app.cfg.FontsDir)
	}

	if len(fonts) == 0 {
		return fmt.Errorf("%w: no fonts to preview", domain.ErrInvalidSelection)
	}

	runner := platform.NewCommandRunner(app.verbose)
	generator := preview.NewGenerator(runner, app.log, platform.CacheDir(), app.previewText)

	for _, font := range fonts {
		path, err := generator.Generate(ctx, font)
		if err != nil {
			return err
		}

		console.DefaultOutput.Result(path)
	}

	return nil
}

// runList prints the catalog, or a profile's fonts when --profile is set.
// The profile path needs no network round trip.
func (app *CLI) runList(ctx context.Context, _ *cli.Command) error {
	if err := app.initRuntime(); err != nil {
		return err
	}

	if app.profileName != "" {
		fonts, ok := app.registry.Get(app.profileName)
		if !ok {
			return fmt.Errorf("%w: unknown profile %q", domain.ErrInvalidSelection, app.profileName)
		}

		console.DefaultOutput.PlainList(fonts)

		return nil
	}

	cat, _, err := app.resolveCatalog(ctx)
	if err != nil {
		return err
	}

	console.DefaultOutput.PlainList(cat.Fonts)

	return nil
}

func (app *CLI) runProfiles(_ context.Context, _ *cli.Command) error {
	if err := app.initRuntime(); err != nil {
		return err
	}

	for _, name := range app.registry.Names() {
		fonts, _ := app.registry.Get(name)
		console.DefaultOutput.Result(fmt.Sprintf("%s: %s", console.DefaultOutput.Bold(name), strings.Join(fonts, ", ")))
	}

	return nil
}

// runSelfUpdate swaps in the latest released executable and re-executes.
func (app *CLI) runSelfUpdate(ctx context.Context, _ *cli.Command) error {
	client, err := app.networkClient()
	if err != nil {
		return err
	}

	// Strip the --update flag so the restarted process runs normally.
	args := make([]string, 0, len(os.Args))

	for _, arg := range os.Args[1:] {
		if arg == "--update" || arg == "-update" {
			continue
		}

		args = append(args, arg)
	}

	return selfupdate.NewUpdater(client, app.log).Run(ctx, args)
}

func splitCSV(csv string) []string {
	if csv == "" {
		return nil
	}

	parts := strings.Split(csv, ",")
	fonts := make([]string, 0, len(parts))

	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			fonts = append(fonts, part)
		}
	}

	return fonts
}
