package daemon

import (
	"context"
	"log/slog"
	"os"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gio/v2"

	"github.com/filamentd/filament/internal/audio"
	"github.com/filamentd/filament/internal/config"
	"github.com/filamentd/filament/internal/dbus"
	"github.com/filamentd/filament/internal/display"
	"github.com/filamentd/filament/internal/layout"
)

// appID is the GApplication identifier for the daemon.
const appID = "org.filament.filamentd"

// Daemon is the long-running notification daemon. It owns the D-Bus
// server, the popup display manager and the audio manager, and keeps
// the configuration hot-reloaded while running.
type Daemon struct {
	logger   *slog.Logger
	cfgPath  string
	cfg      *config.Config
	app      *adw.Application
	server   *dbus.Server
	displays *display.Manager
	sounds   *audio.Manager
	loader   *layout.Loader
	watcher  *ConfigWatcher

	cancel context.CancelFunc
}

// New creates a daemon from an already loaded configuration. cfgPath is
// the file the configuration was loaded from and is watched for
// changes; it may point at a file that does not exist yet.
func New(cfg *config.Config, cfgPath string, logger *slog.Logger) *Daemon {
	if logger == nil {
		logger = slog.Default()
	}

	return &Daemon{
		logger:  logger,
		cfgPath: cfgPath,
		cfg:     cfg,
		loader:  layout.NewLoader(cfg.TemplatesDir()),
		server:  dbus.NewServer(logger),
		sounds:  audio.NewManager(cfg, logger),
		watcher: NewConfigWatcher(cfgPath, logger),
	}
}

// Run starts the daemon and blocks inside the GTK main loop until the
// context is cancelled or the application quits. The returned value is
// the process exit code.
func (d *Daemon) Run(ctx context.Context) int {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	defer cancel()

	d.app = adw.NewApplication(appID, gio.ApplicationFlagsNone)
	d.displays = display.NewManager(&d.app.Application, d.cfg, d.loader, d.logger)

	d.app.ConnectActivate(func() {
		// No initial window: the application stays alive for popups.
		d.app.Hold()

		if err := d.start(ctx); err != nil {
			d.logger.Error("failed to start daemon", "error", err)
			d.app.Quit()
		}
	})
	d.app.ConnectShutdown(func() {
		d.stop()
	})

	go func() {
		<-ctx.Done()
		glib.IdleAdd(func() {
			d.app.Quit()
		})
	}()

	return d.app.Run(nil)
}

// start wires the components together. Runs on the GTK main loop.
func (d *Daemon) start(ctx context.Context) error {
	d.displays.SetCloseCallback(func(busID uint32, reason dbus.CloseReason) {
		// CloseNotification emits its own signal before closing the
		// popup, so only still-active ids get one here.
		if !d.server.IsActive(busID) {
			return
		}
		if err := d.server.CloseWithReason(busID, reason); err != nil {
			d.logger.Warn("failed to signal notification close", "bus_id", busID, "error", err)
		}
	})

	d.server.SetNotifyHandler(d.handleNotify)
	d.server.SetCloseHandler(func(id uint32) {
		glib.IdleAdd(func() {
			d.displays.Close(id, dbus.CloseReasonClosed)
		})
	})

	if err := d.server.Start(); err != nil {
		return err
	}
	if err := d.sounds.Start(ctx); err != nil {
		d.logger.Warn("audio manager failed to start", "error", err)
	}
	if err := d.displays.Start(); err != nil {
		return err
	}

	d.watcher.SetChangeCallback(d.reloadConfig)
	if err := d.watcher.Start(ctx); err != nil {
		d.logger.Warn("config watcher failed to start", "error", err)
	}

	d.logger.Info("filamentd started",
		"config", d.cfgPath,
		"template", d.cfg.Layout.Template,
		"pid", os.Getpid(),
	)
	return nil
}

// handleNotify runs on the D-Bus dispatch goroutine. Popup creation is
// marshalled onto the GTK main loop.
func (d *Daemon) handleNotify(req *dbus.Request, id uint32) {
	n, err := req.ToModel(id)
	if err != nil {
		d.logger.Warn("rejected notification", "bus_id", id, "error", err)
		return
	}

	if err := d.sounds.PlayFor(n, req.SoundFile(), req.SuppressSound()); err != nil {
		d.logger.Warn("failed to play notification sound", "bus_id", id, "error", err)
	}

	glib.IdleAdd(func() {
		if err := d.displays.Show(n); err != nil {
			d.logger.Error("failed to show notification", "bus_id", id, "error", err)
		}
	})
}

// reloadConfig reloads the configuration file and pushes the new
// settings into the running components.
func (d *Daemon) reloadConfig() {
	cfg, err := config.Load(d.cfgPath)
	if err != nil {
		d.logger.Warn("config reload failed, keeping previous config", "error", err)
		return
	}

	d.cfg = cfg
	d.loader = layout.NewLoader(cfg.TemplatesDir())
	d.sounds.UpdateConfig(cfg)

	glib.IdleAdd(func() {
		d.displays.UpdateConfig(cfg, d.loader)
	})

	d.logger.Info("configuration reloaded", "path", d.cfgPath)
}

// stop tears the components down in reverse start order.
func (d *Daemon) stop() {
	if d.watcher != nil {
		d.watcher.Stop()
	}
	if d.displays != nil {
		d.displays.Stop()
	}
	if d.sounds != nil {
		d.sounds.Stop()
	}
	if d.server != nil {
		if err := d.server.Stop(); err != nil {
			d.logger.Warn("error stopping notification server", "error", err)
		}
	}
	if d.cancel != nil {
		d.cancel()
	}
	d.logger.Info("filamentd stopped")
}
