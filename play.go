package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/stackysides/internal/client"
	"github.com/rocketscienceinc/stackysides/internal/controller"
)

type playConfig struct {
	baseURL   string
	gameID    string
	create    bool
	againstAI bool
	logLevel  string
}

func (c *playConfig) validate() error {
	if c.create == (c.gameID != "") {
		return errors.New("exactly one of --new or --game must be provided")
	}
	if c.againstAI && !c.create {
		return errors.New("--ai only applies together with --new")
	}
	return nil
}

// runPlay joins a game, paints every update to out and reads "row col" moves from in.
// It returns when in is exhausted, the server closes the connection or ctx is done.
func runPlay(ctx context.Context, cfg *playConfig, logger *slog.Logger, in io.Reader, out io.Writer) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	httpClient, err := client.NewHTTPClient()
	if err != nil {
		return err
	}

	gameID := cfg.gameID
	if cfg.create {
		share, createErr := client.CreateGame(ctx, httpClient, cfg.baseURL, cfg.againstAI)
		if createErr != nil {
			return createErr
		}

		gameID = share.GameID
		fmt.Fprintf(out, "game created, share this link: %s\n", share.GameURL)
	}

	play, err := client.Bootstrap(ctx, httpClient, cfg.baseURL, gameID)
	if err != nil {
		return err
	}

	conn, err := client.Dial(ctx, httpClient, play.WSURL)
	if err != nil {
		return err
	}

	render := func(view controller.View) {
		if renderErr := client.Render(out, view); renderErr != nil {
			logger.Error("failed to render board", "error", renderErr)
		}
	}

	session, err := client.NewSession(logger, conn, play, client.WithOnUpdate(render))
	if err != nil {
		_ = conn.Close()
		return err
	}

	runErr := make(chan error, 1)
	go func() {
		runErr <- session.Run(ctx)
		cancel()
	}()

	if view, viewErr := session.View(ctx); viewErr == nil {
		render(view)
	}

	go func() {
		readMoves(ctx, session, in, out)
		cancel()
	}()

	<-ctx.Done()

	return <-runErr
}

func readMoves(ctx context.Context, session *client.Session, in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		row, col, err := client.ParseMove(scanner.Text())
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}

		ok, err := session.Select(ctx, row, col)
		if err != nil {
			return
		}

		if !ok {
			fmt.Fprintf(out, "cannot play (%d, %d) right now\n", row, col)
		}
	}
}
