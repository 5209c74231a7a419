// labctl lists GitLab resources as JSON lines.
//
// Connection settings come from an optional YAML profile (--config), then
// LABCLIENT_* environment variables (a .env file in the working directory is
// loaded first), then flags.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/saturnines/labclient/pkg/config"
	"github.com/saturnines/labclient/pkg/gitlab"
	"github.com/saturnines/labclient/pkg/pagination"
)

const usage = `usage: labctl [flags] <command>

commands:
  projects             projects the token's user is a member of
  issues <project-id>  issues of one project
  users                users visible to the token
  groups               groups visible to the token
  whoami               the user owning the token

flags:
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type flags struct {
	configPath string
	host       string
	token      string
	debug      bool
	perPage    int
	limit      int
	search     string
	fields     string
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(stderr, ".env file not loaded:", err)
	}

	var f flags
	flagSet := pflag.NewFlagSet("labctl", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&f.configPath, "config", "c", "", "path to a YAML connection profile")
	flagSet.StringVar(&f.host, "host", "", "GitLab base URL, e.g. https://gitlab.example.com")
	flagSet.StringVar(&f.token, "token", "", "private token")
	flagSet.BoolVar(&f.debug, "debug", false, "log every request to stderr")
	flagSet.IntVar(&f.perPage, "per-page", 0, "page size requested from list endpoints")
	flagSet.IntVar(&f.limit, "limit", 0, "stop after this many items (0 lists everything)")
	flagSet.StringVar(&f.search, "search", "", "filter groups by name or path")
	flagSet.StringVar(&f.fields, "fields", "", "comma-separated dotted fields to print, e.g. id,namespace.full_path")
	flagSet.Usage = func() {
		fmt.Fprint(stderr, usage)
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return fmt.Errorf("missing command")
	}

	profile, err := loadProfile(f)
	if err != nil {
		return err
	}

	logger, err := newLogger(profile.Debug)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	client, err := gitlab.NewFromProfile(ctx, profile, gitlab.WithLogger(logger))
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(stdout)
	fields := parseFields(f.fields)
	out := func(item any) error {
		projected, err := fields.apply(item)
		if err != nil {
			return err
		}
		return encoder.Encode(projected)
	}
	command, rest := flagSet.Arg(0), flagSet.Args()[1:]

	switch command {
	case "projects":
		seq, err := client.Projects.Accessible()
		if err != nil {
			return err
		}
		return printAll(ctx, seq, out, f.limit)
	case "issues":
		if len(rest) != 1 {
			return fmt.Errorf("issues needs exactly one project id")
		}
		projectID, err := strconv.Atoi(rest[0])
		if err != nil {
			return fmt.Errorf("invalid project id %q", rest[0])
		}
		seq, err := client.Issues.ForProject(projectID)
		if err != nil {
			return err
		}
		return printAll(ctx, seq, out, f.limit)
	case "users":
		seq, err := client.Users.All()
		if err != nil {
			return err
		}
		return printAll(ctx, seq, out, f.limit)
	case "groups":
		var seq *pagination.Sequence[gitlab.Namespace]
		if f.search != "" {
			seq, err = client.Groups.Search(f.search)
		} else {
			seq, err = client.Groups.All()
		}
		if err != nil {
			return err
		}
		return printAll(ctx, seq, out, f.limit)
	case "whoami":
		user, err := client.Users.Current(ctx)
		if err != nil {
			return err
		}
		return out(user)
	default:
		flagSet.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

// loadProfile merges the YAML profile, the environment and the flags, in
// that order of increasing precedence, then validates the result.
func loadProfile(f flags) (*config.Profile, error) {
	profile := &config.Profile{Name: "labctl"}
	if f.configPath != "" {
		loaded, err := config.NewProfileLoader(&config.EnvExpander{}, nil).Load(f.configPath)
		if err != nil {
			return nil, err
		}
		profile = loaded
	}

	if err := config.ApplyEnv(profile); err != nil {
		return nil, err
	}

	if f.host != "" {
		profile.Host = f.host
	}
	if f.token != "" {
		profile.Auth = &config.Auth{Type: config.AuthTypePrivateToken, Token: f.token}
	}
	if f.perPage > 0 {
		profile.HTTP.PerPage = f.perPage
	}
	if f.debug {
		profile.Debug = true
	}

	(&config.ProfileDefaults{}).SetDefaults(profile)
	if err := config.DefaultLoader().Validate(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	loggerConfig := zap.NewProductionConfig()
	loggerConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if debug {
		loggerConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return loggerConfig.Build()
}

func printAll[T any](ctx context.Context, seq *pagination.Sequence[T], out func(any) error, limit int) error {
	printed := 0
	for item, err := range seq.All(ctx) {
		if err != nil {
			return err
		}
		if err := out(item); err != nil {
			return err
		}
		printed++
		if limit > 0 && printed >= limit {
			break
		}
	}
	return nil
}
