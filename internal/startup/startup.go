package startup

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"ffmpeg-gui/internal/logging"

	"github.com/gorilla/mux"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// Ports served by the display stack of the base image.
const (
	WebDisplayPort = "5800"
	VNCPort        = "5900"
)

// PassthroughVars configure the supervisor and display stack. They are
// logged for diagnostics and otherwise left alone.
var PassthroughVars = []string{
	"LANG",
	"TZ",
	"DISPLAY_WIDTH",
	"DISPLAY_HEIGHT",
	"KEEP_APP_RUNNING",
	"ENABLE_CJK_FONT",
	"APP_NAME",
}

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildTime string `json:"buildTime" yaml:"buildTime"`
	GoVersion string `json:"goVersion" yaml:"goVersion"`
	OS        string `json:"os" yaml:"os"`
	Arch      string `json:"arch" yaml:"arch"`
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// RouteInfo contains information about a registered route
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

// Config holds the bootstrap configuration
type Config struct {
	ConfigDir       string
	TemplatePath    string
	AppDir          string
	EntryPoint      string
	Interpreter     string
	JournalEnabled  bool
	MetricsTextfile string
	LogHealthChecks bool
	LogLevel        logging.LogLevel

	// Derived paths
	ConfigPath  string
	LogDir      string
	JournalPath string

	// Passthrough holds the set PassthroughVars, unset ones omitted
	Passthrough map[string]string
}

// FromEnv reads the configuration from environment variables without
// logging. guictl uses it directly; the launcher goes through LoadConfig.
func FromEnv() (*Config, error) {
	configDir, err := filepath.Abs(getEnv("CONFIG_DIR", "/config/ffmpeg-gui"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config directory path: %w", err)
	}
	templatePath, err := filepath.Abs(getEnv("CONFIG_TEMPLATE", "/app/config.json.template"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve template path: %w", err)
	}
	appDir, err := filepath.Abs(getEnv("APP_DIR", "/app"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve app directory path: %w", err)
	}

	level := logging.LevelInfo
	if name := os.Getenv("LOG_LEVEL"); name != "" {
		parsed, ok := logging.ParseLevel(name)
		if !ok {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q (use debug, info, warn or error)", name)
		}
		level = parsed
	}
	// DEBUG wins over LOG_LEVEL
	if getEnvBool("DEBUG", false) {
		level = logging.LevelDebug
	}

	config := &Config{
		ConfigDir:       configDir,
		TemplatePath:    templatePath,
		AppDir:          appDir,
		EntryPoint:      getEnv("APP_ENTRY", "ffmpeg_gui.py"),
		Interpreter:     getEnv("APP_INTERPRETER", ""),
		JournalEnabled:  getEnvBool("JOURNAL_ENABLED", true),
		MetricsTextfile: getEnv("METRICS_TEXTFILE", ""),
		LogHealthChecks: getEnvBool("LOG_HEALTH_CHECKS", false),
		LogLevel:        level,
		ConfigPath:      filepath.Join(configDir, "config.json"),
		LogDir:          filepath.Join(configDir, "logs"),
		JournalPath:     filepath.Join(configDir, "bootstrap.db"),
		Passthrough:     make(map[string]string),
	}

	if config.TemplatePath == config.ConfigPath {
		return nil, fmt.Errorf("CONFIG_TEMPLATE must not point at the config file itself (%s)", config.ConfigPath)
	}

	for _, key := range PassthroughVars {
		if value, ok := os.LookupEnv(key); ok {
			config.Passthrough[key] = value
		}
	}

	return config, nil
}

// LoadConfig prints the banner, loads the configuration from environment
// variables and logs it.
func LoadConfig() (*Config, error) {
	printBanner()
	logSystemInfo()

	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")

	config, err := FromEnv()
	if err != nil {
		return nil, err
	}
	logging.SetLevel(config.LogLevel)

	interpreter := config.Interpreter
	if interpreter == "" {
		interpreter = "(none, exec entry point directly)"
	}
	textfile := config.MetricsTextfile
	if textfile == "" {
		textfile = "(disabled)"
	}

	logging.Info("  CONFIG_DIR:          %s", config.ConfigDir)
	logging.Info("  CONFIG_TEMPLATE:     %s", config.TemplatePath)
	logging.Info("  APP_DIR:             %s", config.AppDir)
	logging.Info("  APP_ENTRY:           %s", config.EntryPoint)
	logging.Info("  APP_INTERPRETER:     %s", interpreter)
	logging.Info("  JOURNAL_ENABLED:     %v", config.JournalEnabled)
	logging.Info("  METRICS_TEXTFILE:    %s", textfile)
	logging.Info("  LOG_LEVEL:           %s", config.LogLevel)

	logPassthrough(config.Passthrough)

	return config, nil
}

func logPassthrough(values map[string]string) {
	if len(values) == 0 {
		return
	}
	logging.Info("")
	logging.Info("  Display environment (passed through):")
	for _, key := range PassthroughVars {
		if value, ok := values[key]; ok {
			logging.Info("    %-17s %s", key+":", value)
		}
	}
}

func enabledString(enabled bool) string {
	if enabled {
		return "ENABLED"
	}
	return "DISABLED"
}

// LogConfigStoreInit opens the config store section
func LogConfigStoreInit(path string) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION STORE")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Path: %s", path)
}

// LogConfigStoreReady logs the outcome of first-run initialization
func LogConfigStoreReady(state string, seeded bool, duration time.Duration) {
	logging.Info("  State found: %s", state)
	if seeded {
		logging.Info("  [OK] Seeded from template in %v", duration)
		return
	}
	logging.Info("  [OK] Existing configuration kept (%v)", duration)
}

// LogJournal logs the boot journal status
func LogJournal(enabled bool, path string, err error) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("BOOT JOURNAL")
	logging.Info("------------------------------------------------------------")
	if !enabled {
		logging.Info("  Journal: %s", enabledString(false))
		return
	}
	if err != nil {
		logging.Warn("  Journal unavailable: %v", err)
		logging.Warn("  Startup continues without a boot record")
		return
	}
	logging.Info("  [OK] Boot recorded in %s", path)
}

// LogHandoff logs the final hand-off to the application
func LogHandoff(args []string, dir string, startupDuration time.Duration) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("APPLICATION HAND-OFF")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Bootstrap time:  %v", startupDuration)
	logging.Info("  Command:         %s", strings.Join(args, " "))
	logging.Info("  Working dir:     %s", dir)
	logging.Info("")
	logging.Info("  Display endpoints (served by the supervisor):")
	logging.Info("    Web:           http://0.0.0.0:%s", WebDisplayPort)
	logging.Info("    VNC:           0.0.0.0:%s", VNCPort)
	logging.Info("------------------------------------------------------------")
	logging.Info("")
}

// GetRoutes extracts all registered routes from a mux.Router
func GetRoutes(router *mux.Router) ([]RouteInfo, error) {
	var routes []RouteInfo

	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err != nil {
			return err
		}

		methods, err := route.GetMethods()
		if err != nil {
			methods = []string{"*"}
		}

		for _, method := range methods {
			routes = append(routes, RouteInfo{
				Method: method,
				Path:   pathTemplate,
				Name:   route.GetName(),
			})
		}

		return nil
	})

	return routes, err
}

// LogHTTPRoutes logs the routes registered for guictl serve
func LogHTTPRoutes(router *mux.Router, logHealthChecks bool) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("STATUS SERVER SETUP")
	logging.Info("------------------------------------------------------------")

	if logging.IsDebugEnabled() {
		routes, err := GetRoutes(router)
		if err != nil {
			logging.Warn("error walking routes: %v", err)
		}

		sort.Slice(routes, func(i, j int) bool { return routes[i].Path < routes[j].Path })

		logging.Debug("  Registered routes (%d total):", len(routes))
		for _, route := range routes {
			logging.Debug("    %-6s %s", route.Method, route.Path)
		}
	}

	if logHealthChecks {
		logging.Info("  Health check logging: ON")
	} else {
		logging.Info("  Health check logging: OFF (set LOG_HEALTH_CHECKS=true to enable)")
	}
}

// LogServerStarted logs the listening address of guictl serve
func LogServerStarted(addr string, startupDuration time.Duration) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SERVER STARTED")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Startup time:    %v", startupDuration)
	logging.Info("  Listening on:    %s", addr)
	logging.Info("  Metrics:         %s/metrics", addr)
	logging.Info("")
	logging.Info("  Press Ctrl+C to stop the server")
	logging.Info("------------------------------------------------------------")
}

// LogShutdownInitiated logs shutdown start
func LogShutdownInitiated(signal string) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SHUTDOWN INITIATED (received %s)", signal)
	logging.Info("------------------------------------------------------------")
}

// LogShutdownStep logs a shutdown step
func LogShutdownStep(step string) {
	logging.Debug("  %s...", step)
}

// LogShutdownStepComplete logs a completed shutdown step
func LogShutdownStepComplete(step string) {
	logging.Info("  [OK] %s", step)
}

// LogShutdownComplete logs shutdown completion
func LogShutdownComplete() {
	logging.Info("  [OK] Shutdown complete")
}

// Helper functions

func printBanner() {
	banner := `
------------------------------------------------------------
    ________________  _______________     ________  ______
   / ____/ ____/  |/  / __ \/ ____/ /    / ____/ / / /  _/
  / /_  / /_  / /|_/ / /_/ / __/ / /    / / __/ / / // /
 / __/ / __/ / /  / / ____/ /___/ /___ / /_/ / /_/ // /
/_/   /_/   /_/  /_/_/   /_____/_____/ \____/\____/___/

------------------------------------------------------------`
	fmt.Println(banner)
	logging.Info("  Version:    %s", Version)
	logging.Info("  Commit:     %s", Commit)
	logging.Info("  Build Time: %s", BuildTime)
	logging.Info("  Started:    %s", time.Now().Format(time.RFC1123))
	logging.Info("")
}

func logSystemInfo() {
	logging.Info("------------------------------------------------------------")
	logging.Info("SYSTEM INFORMATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Go version:      %s", runtime.Version())
	logging.Info("  OS/Arch:         %s/%s", runtime.GOOS, runtime.GOARCH)
	logging.Info("  PID:             %d", os.Getpid())

	if logging.IsDebugEnabled() {
		if wd, err := os.Getwd(); err == nil {
			logging.Debug("  Working dir:     %s", wd)
		}

		if hostname, err := os.Hostname(); err == nil {
			logging.Debug("  Hostname:        %s", hostname)
		}

		logging.Debug("  UID/GID:         %d/%d", os.Getuid(), os.Getgid())
	}

	logging.Info("")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logging.Warn("Invalid boolean value for %s: %q, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
