package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/pgagent/internal/clipboard"
	"github.com/ziadkadry99/pgagent/internal/forms"
	"github.com/ziadkadry99/pgagent/internal/highlight"
	"github.com/ziadkadry99/pgagent/internal/logging"
	"github.com/ziadkadry99/pgagent/internal/view"
)

var (
	submitServer string
	submitFields []string
	submitCopy   bool
)

// formAliases maps short command-line names onto page form ids.
var formAliases = map[string]string{
	"query":  forms.QueryFormID,
	"error":  forms.ErrorFormID,
	"schema": forms.SchemaFormID,
	"docs":   forms.DocSearchFormID,
}

var submitCmd = &cobra.Command{
	Use:   "submit <query|error|schema|docs>",
	Short: "Submit one of the page forms to a running server",
	Long: `Submits a page form to a running pgagent server over HTTP and prints the
rendered result fragment. Fields are given as --field name=value.

Example:
  pgagent submit query --field query_type=select --field table_name=users --copy`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		f, err := lookupForm(args[0])
		if err != nil {
			return err
		}
		values, err := parseFields(submitFields)
		if err != nil {
			return err
		}
		base, err := submitBase(submitServer, cfg.BackendURL, cfg.Port)
		if err != nil {
			return err
		}

		var h highlight.Highlighter
		if cfg.Highlight.Enabled {
			h = highlight.NewChroma(cfg.Highlight.Style)
		}
		ctrl := forms.NewController(
			forms.WithDefaultRenderers(h),
			forms.WithBaseURL(base),
			forms.WithTimeout(cfg.RequestTimeout()),
			forms.WithLogger(logging.New("forms")),
		)

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		var out forms.Buffer
		button := forms.NewSubmitButton(f.SubmitLabel)
		status(color.FgCyan, "%s -> %s", f.SubmitLabel, base.ResolveReference(&url.URL{Path: f.Action}))

		outcome, err := ctrl.Submit(ctx, "cli", f, values, &out, button)
		fmt.Println(string(out.HTML()))

		switch outcome {
		case forms.OutcomeRendered:
			status(color.FgGreen, "✓ %s", outcome)
		case forms.OutcomeAppError:
			status(color.FgYellow, "⚠ %s", outcome)
		default:
			status(color.FgRed, "✗ %s", outcome)
		}
		if err != nil {
			return err
		}

		if submitCopy {
			return copyFirst(ctx, string(out.HTML()))
		}
		return nil
	},
}

// status writes a colored line to stderr, keeping stdout for the fragment.
func status(attr color.Attribute, format string, a ...any) {
	color.New(attr).Fprintf(os.Stderr, format+"\n", a...)
}

func lookupForm(name string) (forms.Form, error) {
	id := name
	if alias, ok := formAliases[name]; ok {
		id = alias
	}
	f, ok := view.PageForms[id]
	if !ok {
		names := make([]string, 0, len(formAliases))
		for k := range formAliases {
			names = append(names, k)
		}
		sort.Strings(names)
		return forms.Form{}, fmt.Errorf("unknown form %q (expected one of %s)", name, strings.Join(names, ", "))
	}
	return f, nil
}

// parseFields turns name=value pairs into form values. Repeated names
// keep every value; the submission keeps the last.
func parseFields(pairs []string) (url.Values, error) {
	values := url.Values{}
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid field %q: expected name=value", p)
		}
		values.Add(strings.TrimSpace(name), value)
	}
	return values, nil
}

// submitBase picks the server to submit to: the flag, then backend_url,
// then the local server on the configured port.
func submitBase(flag, backend string, port int) (*url.URL, error) {
	raw := flag
	if raw == "" {
		raw = backend
	}
	if raw == "" {
		raw = fmt.Sprintf("http://localhost:%d", port)
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return nil, fmt.Errorf("invalid server URL %q", raw)
	}
	return u, nil
}

// copyFirst places the first copy button's payload on the clipboard.
func copyFirst(ctx context.Context, fragment string) error {
	buttons, err := clipboard.FindButtons(fragment)
	if err != nil {
		return err
	}
	if len(buttons) == 0 {
		status(color.FgYellow, "nothing to copy")
		return nil
	}

	if err := buttons[0].Activate(ctx, clipboard.NewSystemWriter()); err != nil {
		if errors.Is(err, clipboard.ErrUnavailable) {
			fmt.Fprintln(os.Stderr, "no clipboard tool found (install wl-copy, xclip or xsel)")
		}
		return fmt.Errorf("copying: %w", err)
	}
	status(color.FgGreen, "✓ %s", buttons[0].Label())
	return nil
}

func init() {
	submitCmd.Flags().StringVar(&submitServer, "server", "", "pgagent server URL (default backend_url, then http://localhost:<port>)")
	submitCmd.Flags().StringArrayVarP(&submitFields, "field", "f", nil, "form field as name=value (repeatable)")
	submitCmd.Flags().BoolVar(&submitCopy, "copy", false, "copy the first copyable block to the clipboard")
	rootCmd.AddCommand(submitCmd)
}
