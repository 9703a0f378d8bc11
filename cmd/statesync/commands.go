package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mmgblabel-png/bigharvestfarming/internal/bootstrap"
	"github.com/mmgblabel-png/bigharvestfarming/internal/codec"
	"github.com/mmgblabel-png/bigharvestfarming/internal/config"
	"github.com/mmgblabel-png/bigharvestfarming/internal/statesync"
)

var errRequestFailed = errors.New("request failed")

// App holds what every command needs
type App struct {
	cfg  *config.Config
	in   io.Reader
	out  io.Writer
	opts []statesync.Option
}

// Commands returns every statesync subcommand bound to a
func (a *App) Commands() []Command {
	return []Command{
		&FetchCommand{app: a},
		&SaveCommand{app: a},
		&ResetCommand{app: a},
		&HealthCommand{app: a},
		&MinimalCommand{app: a},
		&NormalizeCommand{app: a},
	}
}

// newClient creates a client on a fresh bus with outcome logging attached
func (a *App) newClient() (*statesync.Client, error) {
	bus, err := bootstrap.InitializeEventSystem()
	if err != nil {
		return nil, err
	}
	client := statesync.New(a.cfg.SyncConfig(), bus, a.opts...)
	bootstrap.RegisterOutcomeLogging(client)
	return client, nil
}

// readDocument reads a state document from the named file, or from stdin
// when the name is empty or "-"
func (a *App) readDocument(args []string) (string, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(a.in)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// outcome collects the single result a request publishes
type outcome struct {
	json string
	err  error
}

func (o *outcome) ok(json string) { o.json = json }

func (o *outcome) fail(message string) { o.err = fmt.Errorf("%w: %s", errRequestFailed, message) }

// FetchCommand prints the profile's state document
type FetchCommand struct{ app *App }

func (c *FetchCommand) Name() string        { return "fetch" }
func (c *FetchCommand) Description() string { return "Fetch the profile's state and print it" }

func (c *FetchCommand) Run(_ []string) error {
	client, err := c.app.newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	var res outcome
	client.OnFetchOk(res.ok)
	client.OnFetchError(res.fail)

	client.Fetch(context.Background())
	client.Wait()

	if res.err != nil {
		return res.err
	}
	fmt.Fprintln(c.app.out, res.json)
	return nil
}

// SaveCommand uploads a state document after checking it decodes
type SaveCommand struct{ app *App }

func (c *SaveCommand) Name() string        { return "save" }
func (c *SaveCommand) Description() string { return "Save a state document [file|-]" }

func (c *SaveCommand) Run(args []string) error {
	doc, err := c.app.readDocument(args)
	if err != nil {
		return err
	}
	if _, err := codec.Decode(doc); err != nil {
		return err
	}

	client, err := c.app.newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	var res outcome
	client.OnSaveOk(func() {})
	client.OnSaveError(res.fail)

	client.Save(context.Background(), doc)
	client.Wait()

	return res.err
}

// ResetCommand replaces the profile with a fresh state and prints it
type ResetCommand struct{ app *App }

func (c *ResetCommand) Name() string        { return "reset" }
func (c *ResetCommand) Description() string { return "Reset the profile to a fresh state" }

func (c *ResetCommand) Run(_ []string) error {
	client, err := c.app.newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	var res outcome
	client.OnResetOk(res.ok)
	client.OnResetError(res.fail)

	client.Reset(context.Background())
	client.Wait()

	if res.err != nil {
		return res.err
	}
	fmt.Fprintln(c.app.out, res.json)
	return nil
}

// HealthCommand checks that the backend answers
type HealthCommand struct{ app *App }

func (c *HealthCommand) Name() string        { return "health" }
func (c *HealthCommand) Description() string { return "Check backend health" }

func (c *HealthCommand) Run(_ []string) error {
	client, err := c.app.newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Health(context.Background()); err != nil {
		return err
	}
	fmt.Fprintln(c.app.out, "ok")
	return nil
}

// MinimalCommand prints a fresh state document without contacting the backend
type MinimalCommand struct{ app *App }

func (c *MinimalCommand) Name() string        { return "minimal" }
func (c *MinimalCommand) Description() string { return "Print a fresh state document [money] [xp]" }

func (c *MinimalCommand) Run(args []string) error {
	values := []int{0, 0}
	for i := 0; i < len(args) && i < len(values); i++ {
		v, err := strconv.Atoi(args[i])
		if err != nil {
			return fmt.Errorf("invalid number %q: %w", args[i], err)
		}
		values[i] = v
	}

	fmt.Fprintln(c.app.out, codec.MakeMinimal(values[0], values[1]))
	return nil
}

// NormalizeCommand decodes a document and prints its canonical encoding
type NormalizeCommand struct{ app *App }

func (c *NormalizeCommand) Name() string { return "normalize" }
func (c *NormalizeCommand) Description() string {
	return "Decode a state document and print it re-encoded [file|-]"
}

func (c *NormalizeCommand) Run(args []string) error {
	doc, err := c.app.readDocument(args)
	if err != nil {
		return err
	}

	state, err := codec.Decode(doc)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.app.out, codec.Encode(state))
	return nil
}
