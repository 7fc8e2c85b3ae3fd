package main

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/docopt/docopt-go"
	"github.com/google/uuid"
	"github.com/reconquest/hippo-go"
	"github.com/reconquest/hippo-go/internal/builtin"
	"github.com/reconquest/karma-go"
	"github.com/reconquest/pkg/log"
	"github.com/reconquest/sign-go"
)

var usage = "hippo " + builtin.Version + `

Registers application revisions in the Hippo server.

Usage:
  hippo [options] register --app=<uuid> <revision>
  hippo [options] register --storage=<id> <revision>
  hippo [options] login
  hippo -h | --help
  hippo --version

Options:
  -h --help           Show this screen.
  --version           Show version.
  -c --config <path>  Use specified config.
                       [default: ` + DEFAULT_CONFIG_PATH + `]
  -k --insecure       Do not validate the server TLS certificate.
  --app=<uuid>        Application identifier.
  --storage=<id>      Application storage (bindle) identifier.
`

type commandLineOptions struct {
	ConfigPath string
	Insecure   bool

	Register  bool
	Login     bool
	AppID     string
	StorageID string
	Revision  string
}

func parseOptions(args docopt.Opts) (commandLineOptions, error) {
	var options commandLineOptions
	var err error

	options.ConfigPath, err = args.String("--config")
	if err != nil {
		return options, karma.Format(err, "invalid --config")
	}

	options.Insecure, _ = args.Bool("--insecure")
	options.Register, _ = args.Bool("register")
	options.Login, _ = args.Bool("login")

	if value, ok := args["--app"].(string); ok {
		options.AppID = value
	}

	if value, ok := args["--storage"].(string); ok {
		options.StorageID = value
	}

	if value, ok := args["<revision>"].(string); ok {
		options.Revision = value
	}

	return options, nil
}

func main() {
	args, err := docopt.ParseArgs(usage, nil, builtin.Version)
	if err != nil {
		log.Fatal(err)
	}

	options, err := parseOptions(args)
	if err != nil {
		log.Fatal(err)
	}

	config, err := LoadConfig(options.ConfigPath)
	if err != nil {
		if err == ErrorNotConfigured {
			ShowMessageNotConfigured(config, options.ConfigPath)
			os.Exit(1)
		}

		log.Fatal(err)
	}

	if config.Log.Debug {
		log.SetLevel(log.LevelDebug)
	}

	if config.Log.Trace {
		log.SetLevel(log.LevelTrace)
	}

	if options.Insecure {
		config.DangerAcceptInvalidCerts = true
	}

	if config.DangerAcceptInvalidCerts {
		log.Warningf(
			nil,
			"TLS certificate validation is disabled, "+
				"use it only with development servers",
		)
	}

	if config.Password == "" {
		config.Password, err = readPassword(os.Stdin, os.Stderr)
		if err != nil {
			log.Fatal(err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go sign.Notify(func(signal os.Signal) bool {
		log.Warningf(nil, "got signal: %s, canceling request", signal)
		cancel()
		return false
	}, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	err = run(ctx, config, options)
	if err != nil {
		if hippo.IsKind(err, hippo.KindUnauthorized) {
			log.Fatalf(err, "make sure you have passed correct username and password")
		}

		log.Fatal(err)
	}
}

func run(ctx context.Context, config *Config, options commandLineOptions) error {
	var applicationID uuid.UUID
	if options.AppID != "" {
		id, err := uuid.Parse(options.AppID)
		if err != nil {
			return karma.Format(err, "invalid application id: %q", options.AppID)
		}

		applicationID = id
	}

	client, err := hippo.New(
		ctx,
		config.URL,
		config.Username,
		config.Password,
		config.GetOptions(),
	)
	if err != nil {
		return err
	}

	switch {
	case options.Login:
		fmt.Println(client.Token())
		return nil

	case options.Register && options.AppID != "":
		return client.RegisterRevisionByApplication(
			ctx,
			applicationID,
			options.Revision,
		)

	case options.Register:
		return client.RegisterRevisionByStorageID(
			ctx,
			options.StorageID,
			options.Revision,
		)
	}

	return nil
}
