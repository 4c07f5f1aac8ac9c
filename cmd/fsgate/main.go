package main

import (
	"context"
	"fmt"
	"os"

	"fsgate/internal/adapter/gateway"
	"fsgate/internal/adapter/tool"
	"fsgate/internal/domain"
	"fsgate/internal/infra/config"
	"fsgate/internal/infra/logger"
	"fsgate/internal/infra/tracer"
	"fsgate/internal/security"
)

const usage = `Usage: fsgate [flags] <allowed-directory> [additional-directories...]

Serves the listed directories to MCP clients over stdio. Each directory is
exposed under a virtual alias (/data/a, /data/b, ...) and every operation is
confined to the listed directories.

Flags:
  --config <file>      YAML config file (default: fsgate.yaml)
  --log-level <level>  debug, info, warn or error (overrides config)
  --version            print version and exit
  --help               print this help
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfgPath := "fsgate.yaml"
	logLevel := ""
	var dirs []string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--config":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "Error: --config requires a value")
				return 1
			}
			i++
			cfgPath = args[i]
		case "--log-level":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "Error: --log-level requires a value")
				return 1
			}
			i++
			logLevel = args[i]
		case "--version":
			fmt.Println(config.Defaults().Server.Version)
			return 0
		case "--help", "-h":
			fmt.Fprint(os.Stderr, usage)
			return 0
		default:
			dirs = append(dirs, args[i])
		}
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if logLevel != "" {
		cfg.Logger.Level = logLevel
	}
	dirs = append(dirs, cfg.AllowedDirs...)

	if len(dirs) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return 1
	}

	log, closeLog, err := logger.New(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	ctx := context.Background()
	shutdownTracer, err := tracer.Setup(ctx, cfg.Tracer)
	if err != nil {
		log.Error("tracer setup failed", "error", err)
		return 1
	}
	defer shutdownTracer(ctx)

	dirReg, err := security.NewRegistry(dirs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	resolver := security.NewResolver(dirReg)

	var audit security.AuditLogger = security.NopAuditLogger{}
	if cfg.Audit.Enabled {
		fileAudit, err := security.NewFileAuditLogger(cfg.Audit.Path)
		if err != nil {
			log.Error("audit logger setup failed", "error", err)
			return 1
		}
		defer fileAudit.Close()
		audit = fileAudit
	}

	deps := tool.Deps{
		Resolver: resolver,
		Backend:  tool.NewLocalFilesystemBackend(),
		Audit:    audit,
		Logger:   log,
	}

	reg := tool.NewRegistry(log)
	tools, err := registerTools(reg, deps, cfg.Limits)
	if err != nil {
		log.Error("tool registration failed", "error", err)
		return 1
	}

	for _, alias := range dirReg.Aliases() {
		real, _ := dirReg.RealDirFor(alias)
		log.Info("serving directory", "alias", alias, "dir", real)
	}
	log.Info("secure filesystem server running on stdio",
		"name", cfg.Server.Name, "version", cfg.Server.Version,
		"tools", len(tools), "dirs", len(dirReg.Dirs()))

	srv := gateway.NewServer(cfg.Server, tools, log)
	if err := gateway.ServeStdio(srv); err != nil {
		log.Error("server stopped", "error", err)
		return 1
	}
	return 0
}

// registerTools builds every filesystem tool against the shared dependencies
// and registers it, optionally gated behind a shared rate limiter. The
// returned slice preserves the AllTools order, with each entry in its final
// wrapped form, so clients see the canonical tool listing rather than the
// registry's sorted one.
func registerTools(reg *tool.Registry, deps tool.Deps, limits config.LimitsConfig) ([]domain.Tool, error) {
	var limiter *tool.RateLimiter
	if limits.RateLimit > 0 {
		limiter = tool.NewRateLimiter(limits.RateLimit, limits.RateWindow)
	}

	all := tool.AllTools(deps)
	ordered := make([]domain.Tool, 0, len(all))
	for _, t := range all {
		if limiter != nil {
			t = tool.WithRateLimit(t, limiter)
		}
		if err := reg.Register(t); err != nil {
			return nil, err
		}
		registered, err := reg.Get(t.Name())
		if err != nil {
			return nil, err
		}
		ordered = append(ordered, registered)
	}
	return ordered, nil
}
