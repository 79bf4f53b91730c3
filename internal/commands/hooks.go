package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskbridge/internal/auth"
	"taskbridge/internal/config"
	"taskbridge/internal/exitcode"
	"taskbridge/internal/output"
	"taskbridge/internal/remote"
	"taskbridge/internal/service"
	"taskbridge/internal/webhook"
)

func init() {
	Register(&HooksCmd{})
}

// HooksCmd implements the hooks command: webhook subscribe, unsubscribe and
// the recent task-due sample listing.
type HooksCmd struct {
	hookURL   string
	trigger   string
	spaceID   string
	projectID string
	hookID    string
}

func (c *HooksCmd) Name() string      { return "hooks" }
func (c *HooksCmd) Aliases() []string { return nil }
func (c *HooksCmd) Synopsis() string  { return "Manage webhook subscriptions" }
func (c *HooksCmd) Usage() string {
	return "taskbridge hooks subscribe --url <hook-url> [--trigger <type>] [--space <id>] [--project <id>] | unsubscribe --hook <id> | list [--space <id>] [--project <id>]"
}

// NeedsAuth is false because hooks talks to the webhook endpoints directly,
// not through the task service interface.
func (c *HooksCmd) NeedsAuth() bool { return false }

func (c *HooksCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.hookURL, "url", "", "")
	fs.StringVar(&c.trigger, "trigger", webhook.TriggerTaskDue, "")
	fs.StringVar(&c.spaceID, "space", "", "")
	fs.StringVar(&c.projectID, "project", "", "")
	fs.StringVar(&c.hookID, "hook", "", "")
}

func (c *HooksCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: subcommand required (subscribe, unsubscribe, list)")
		return exitcode.UserError
	}

	client, err := newWebhookClient(ctx, cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError
	}

	switch args[0] {
	case "subscribe":
		if c.hookURL == "" {
			fmt.Fprintln(errOut, "error: url required")
			return exitcode.UserError
		}
		sub, err := client.Subscribe(ctx, c.hookURL, c.trigger, c.spaceID, c.projectID)
		if err != nil {
			return reportError(errOut, err)
		}
		fmt.Fprintln(out, sub.HookID)
		return exitcode.Success

	case "unsubscribe":
		if c.hookID == "" {
			fmt.Fprintln(errOut, "error: hook required")
			return exitcode.UserError
		}
		if err := client.Unsubscribe(ctx, c.hookID); err != nil {
			return reportError(errOut, err)
		}
		if !cfg.Quiet {
			fmt.Fprintln(out, "ok")
		}
		return exitcode.Success

	case "list":
		results, err := client.ListTaskDue(ctx, c.spaceID, c.projectID)
		if err != nil {
			return reportError(errOut, err)
		}
		for i, record := range results {
			if i > 0 {
				fmt.Fprintln(out)
			}
			output.FormatFlat(out, flattenRecord(record))
		}
		return exitcode.Success

	default:
		fmt.Fprintf(errOut, "error: unknown subcommand: %s\n", args[0])
		return exitcode.UserError
	}
}

// newWebhookClient builds a webhook client carrying the stored credential.
func newWebhookClient(ctx context.Context, cfg *config.Config) (*webhook.Client, error) {
	oauthClient, err := cfg.LoadOAuthClient()
	if err != nil {
		return nil, err
	}
	token, err := auth.LoadToken(cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("not logged in (run: taskbridge login)")
	}
	manager := auth.NewManager(cfg.BaseURL, oauthClient, "")
	return webhook.New(cfg.BaseURL, manager.HTTPClient(ctx, token)), nil
}

// flattenRecord flattens nested sample payloads for display; records that
// are already flat pass through unchanged.
func flattenRecord(record map[string]any) map[string]any {
	flat := make(map[string]any, len(record))
	for key, value := range record {
		switch value.(type) {
		case map[string]any, []any:
			for nestedKey, nestedValue := range remote.FlattenValue(value) {
				flat[key+"__"+nestedKey] = nestedValue
			}
		default:
			flat[key] = value
		}
	}
	return flat
}
