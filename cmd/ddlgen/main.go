// Command ddlgen renders CREATE TABLE statements from a YAML request.
//
//	ddlgen -request tables.yaml -dialect postgresql
//	ddlgen -request tables.yaml -profiles profiles.yaml -profile legacy -out schema.sql
//	ddlgen -request tables.yaml -dialect mysql -upload ddl/schema.sql
//	ddlgen -serve :8080 -profiles profiles.yaml
//
// Uploads and the server's ?upload= option read the object store from the
// DDLGEN_S3_* environment variables.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/koustreak/ddlgen/internal/connection"
	"github.com/koustreak/ddlgen/internal/dialect"
	"github.com/koustreak/ddlgen/internal/errs"
	"github.com/koustreak/ddlgen/internal/filestore"
	"github.com/koustreak/ddlgen/internal/filestore/minio"
	"github.com/koustreak/ddlgen/internal/generator"
	"github.com/koustreak/ddlgen/internal/logger"
	"github.com/koustreak/ddlgen/internal/request"
	"github.com/koustreak/ddlgen/internal/server"
)

const version = "0.3.0"

type options struct {
	request   string
	profiles  string
	profile   string
	dialect   string
	dsn       string
	out       string
	upload    string
	serve     string
	logLevel  string
	logFormat string
	version   bool
}

// openStore is swapped in tests.
var openStore = func(ctx context.Context) (filestore.Store, string, error) {
	cfg, err := filestore.ConfigFromEnv()
	if err != nil {
		return nil, "", err
	}
	s, err := minio.New(ctx, cfg)
	if err != nil {
		return nil, "", err
	}
	return s, cfg.Bucket, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}
	if opts.version {
		fmt.Fprintf(stdout, "ddlgen version %s\n", version)
		return 0
	}

	log := logger.New(&logger.Config{Level: opts.logLevel, Format: opts.logFormat, Output: stderr})
	logger.SetGlobal(log)

	if err := execute(ctx, opts, stdout, log); err != nil {
		log.ErrorWith("ddlgen failed", err, map[string]interface{}{"kind": errs.KindOf(err).String()})
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("ddlgen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&o.request, "request", "", "YAML request file with the tables to render")
	fs.StringVar(&o.profiles, "profiles", "", "YAML file of named connection profiles")
	fs.StringVar(&o.profile, "profile", "", "profile to use (overrides the request's profile)")
	fs.StringVar(&o.dialect, "dialect", "", "target dialect (overrides request and profile)")
	fs.StringVar(&o.dsn, "dsn", "", "connection string in the dialect's driver format")
	fs.StringVar(&o.out, "out", "", "output file (default: stdout)")
	fs.StringVar(&o.upload, "upload", "", "also upload the SQL to bucket/key")
	fs.StringVar(&o.serve, "serve", "", "serve the HTTP API on this address instead of rendering")
	fs.StringVar(&o.logLevel, "log-level", "info", "debug, info, warn or error")
	fs.StringVar(&o.logFormat, "log-format", "console", "json or console")
	fs.BoolVar(&o.version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	return o, nil
}

func execute(ctx context.Context, o options, stdout io.Writer, log *logger.Logger) error {
	var profiles connection.Profiles
	if o.profiles != "" {
		ps, err := connection.LoadProfiles(o.profiles)
		if err != nil {
			return err
		}
		profiles = ps
	}

	if o.serve != "" {
		return serve(ctx, o, profiles, log)
	}
	if o.request == "" {
		return errs.New(errs.ErrKindInvalidInput, "-request is required (or -serve)")
	}

	req, err := request.Load(o.request)
	if err != nil {
		return err
	}
	if o.profile != "" {
		req.Profile = o.profile
	}
	if o.dialect != "" {
		d, err := dialect.Parse(o.dialect)
		if err != nil {
			return err
		}
		req.Dialect = d
	}
	if o.dsn != "" {
		req.DSN = o.dsn
	}

	d, conn, err := req.Resolve(profiles)
	if err != nil {
		return err
	}
	gen, err := generator.New(d, conn, generator.WithLogger(log))
	if err != nil {
		return err
	}
	sql, err := gen.BuildAll(req.Tables)
	if err != nil {
		return err
	}

	if o.out != "" {
		if err := os.WriteFile(o.out, []byte(sql+"\n"), 0o644); err != nil {
			return errs.Wrap(errs.ErrKindInvalidInput, "write "+o.out, err)
		}
		log.InfoWith("ddl written", map[string]interface{}{"file": o.out, "tables": len(req.Tables), "dialect": d.String()})
	} else {
		fmt.Fprintln(stdout, sql)
	}

	if o.upload != "" {
		return upload(ctx, o.upload, sql, log)
	}
	return nil
}

func upload(ctx context.Context, target, sql string, log *logger.Logger) error {
	store, bucket, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	loc, err := filestore.ParseLocation(target, bucket)
	if err != nil {
		return err
	}
	info, err := filestore.Publish(ctx, store, loc, sql)
	if err != nil {
		return err
	}
	log.InfoWith("ddl uploaded", map[string]interface{}{"object": loc.String(), "etag": info.ETag, "size": info.Size})
	return nil
}

func serve(ctx context.Context, o options, profiles connection.Profiles, log *logger.Logger) error {
	cfg := server.Config{Addr: o.serve, Profiles: profiles}
	if os.Getenv(filestore.EnvEndpoint) != "" {
		store, bucket, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()
		cfg.Store, cfg.DefaultBucket = store, bucket
	}
	return server.New(cfg, log).ListenAndServe(ctx)
}
