package main

import (
	"context"
	"errors"

	"github.com/goliatone/go-print"
	"github.com/goliatone/go-storefront"
	"github.com/goliatone/go-storefront/activitymap"
	"github.com/goliatone/go-storefront/apiclient"
	"github.com/goliatone/go-storefront/config"
	"github.com/goliatone/go-storefront/logging"
	"github.com/goliatone/go-storefront/tokenstore"
	"github.com/spf13/cobra"
)

// deps is the wired session layer shared by every command
type deps struct {
	cfg      *config.Config
	logger   *logging.Logger
	tokens   storefront.TokenStore
	api      storefront.API
	store    *storefront.SessionStore
	auther   *storefront.Auther
	restorer *storefront.Restorer
	guard    *storefront.RouteGuard
	ui       *storefront.UIStore
	closers  []func() error
}

// newDeps loads the config from the command flags and wires the layer.
// The caller must call close.
func newDeps(ctx context.Context, cmd *cobra.Command) (*deps, error) {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return nil, err
	}
	return wireDeps(ctx, cfg, nil)
}

// wireDeps builds the layer from cfg. A non nil api replaces the HTTP client.
func wireDeps(ctx context.Context, cfg *config.Config, api storefront.API) (*deps, error) {
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	tokens, closeTokens, err := tokenstore.Open(ctx, cfg.TokenOptions())
	if err != nil {
		logger.Sync()
		return nil, err
	}

	if api == nil {
		api = apiclient.New(apiclient.Config{
			BaseURL: cfg.GetAPIBaseURL(),
			Timeout: cfg.API.Timeout,
			Debug:   cfg.API.Debug,
			Tokens:  tokens,
			Logger:  logger.Named("api"),
		})
	}

	store := storefront.NewSessionStore().WithLogger(logger.Named("session"))

	d := &deps{
		cfg:     cfg,
		logger:  logger,
		tokens:  tokens,
		api:     api,
		store:   store,
		ui:      storefront.NewUIStore(),
		closers: []func() error{closeTokens},
	}

	d.auther = storefront.NewAuther(api, tokens, store).
		WithLogger(logger.Named("auth")).
		WithActivitySink(activityLogger(logger.Named("activity")))
	d.restorer = storefront.NewRestorer(api, tokens, store).
		WithLogger(logger.Named("restore")).
		WithActivitySink(activityLogger(logger.Named("activity")))
	d.guard = storefront.NewRouteGuard(store, tokens, cfg).
		WithLogger(logger.Named("guard"))

	return d, nil
}

func (d *deps) close() {
	for _, fn := range d.closers {
		if err := fn(); err != nil {
			d.logger.Warn("close failed", "error", err)
		}
	}
	d.logger.Sync()
}

// activityLogger records normalized auth events as info lines
func activityLogger(logger *logging.Logger) storefront.ActivitySink {
	return activitymap.Sink(func(_ context.Context, record activitymap.Normalized) error {
		logger.Info(record.Verb,
			"actor_id", record.ActorID,
			"object_id", record.ObjectID,
			"channel", record.Channel,
			"metadata", record.Metadata,
		)
		return nil
	}, activitymap.WithDefaultChannel("cli"))
}

// runWithSession restores the session and hands the wired layer to fn
func runWithSession(cmd *cobra.Command, fn func(ctx context.Context, d *deps) error) error {
	ctx := commandContext(cmd)

	d, err := newDeps(ctx, cmd)
	if err != nil {
		return err
	}
	defer d.close()

	outcome := d.restorer.Restore(ctx)
	d.logger.Debug("session restored", "outcome", outcome.String())

	return fn(ctx, d)
}

func printJSON(cmd *cobra.Command, v any) {
	cmd.Println(print.MaybePrettyJSON(v))
}

// describeFailure renders an action failure for the terminal
func describeFailure(err error) error {
	actionErr, ok := storefront.AsActionError(err)
	if !ok {
		return err
	}
	if actionErr.Kind == storefront.FailureValidation {
		return errors.New(actionErr.Error())
	}
	return errors.New(actionErr.FirstMessage())
}
