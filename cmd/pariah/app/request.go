package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ThalesGroup/pariah"
	"github.com/ThalesGroup/pariah/httpclient"
	"github.com/ansel1/merry"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	// ErrStatus is returned with --fail when the response status is not 2XX.
	ErrStatus = merry.New("unsuccessful status")

	// ErrNoBaseURL is returned when no base URL was configured.
	ErrNoBaseURL = merry.New("no base URL: pass --base-url, set PARIAH_BASE_URL, or set base-url in the config file")
)

// NewRequestCommand creates the subcommand sending v requests.
func NewRequestCommand(globalOpts *GlobalOptions, v pariah.Verb) *cobra.Command {
	name := strings.ToLower(v.String())
	return &cobra.Command{
		Use:   name + " <path-template> [key=value ...]",
		Short: "Send a " + v.String() + " request",
		Example: fmt.Sprintf(`  # fill :id from the params, and send page as a query param
  %s %s /users/:id :id=42 page=2`, cliName, name),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(cmd, globalOpts, v, args[0], args[1:])
		},
	}
}

func runRequest(cmd *cobra.Command, opts *GlobalOptions, v pariah.Verb, path string, args []string) error {
	if opts.BaseURL == "" {
		return ErrNoBaseURL
	}

	params, err := parseParams(args)
	if err != nil {
		return err
	}

	logger := newLogger(cmd, opts.Verbose)
	ctx := logger.WithContext(cmd.Context())

	options, err := requestOptions(cmd, opts, logger)
	if err != nil {
		return err
	}

	r, err := pariah.NewRequester(opts.BaseURL, v, options...)
	if err != nil {
		return err
	}

	data, err := r.RequestContext(ctx, path, params)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%d %s\n", data.Status, http.StatusText(data.Status))

	out := data.Raw
	if data.Decoded() {
		b, err := json.MarshalIndent(data.Payload, "", "  ")
		if err == nil {
			out = string(b)
		}
	}
	if out != "" {
		fmt.Fprintln(cmd.OutOrStdout(), out)
	}

	if opts.Fail && !data.OK() {
		return merry.Appendf(ErrStatus, "%d", data.Status)
	}
	return nil
}

func newLogger(cmd *cobra.Command, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}

// requestOptions translates the flags into pariah Options.
func requestOptions(cmd *cobra.Command, opts *GlobalOptions, logger zerolog.Logger) ([]pariah.Option, error) {
	var options []pariah.Option

	// the first value of a name replaces the defaults, repeats add to it
	seen := map[string]bool{}
	for _, h := range opts.Headers {
		name, value, ok := strings.Cut(h, ":")
		name = http.CanonicalHeaderKey(strings.TrimSpace(name))
		if !ok || name == "" {
			return nil, merry.Errorf("invalid header %q, expected \"Name: value\"", h)
		}
		if seen[name] {
			options = append(options, pariah.AddHeader(name, strings.TrimSpace(value)))
			continue
		}
		seen[name] = true
		options = append(options, pariah.Header(name, strings.TrimSpace(value)))
	}

	if opts.Data != "" {
		body := []byte(opts.Data)
		if strings.HasPrefix(opts.Data, "@") {
			b, err := os.ReadFile(opts.Data[1:])
			if err != nil {
				return nil, merry.Prepend(err, "reading body")
			}
			body = b
		}
		options = append(options, pariah.Body(body))
	}

	if opts.Timeout != "" {
		d, err := time.ParseDuration(opts.Timeout)
		if err != nil {
			return nil, merry.Prependf(err, "invalid timeout %q", opts.Timeout)
		}
		options = append(options, pariah.Timeout(d))
	}

	policy, err := pariah.ParseRedirectPolicy(opts.Redirect)
	if err != nil {
		return nil, err
	}
	options = append(options,
		pariah.Redirect(policy),
		pariah.MaxRedirects(opts.MaxRedirects),
		pariah.MaxResponseSize(opts.MaxSize),
	)

	var clientOpts []httpclient.Option
	if opts.Insecure {
		clientOpts = append(clientOpts, httpclient.SkipVerify(true))
	}
	if opts.Proxy != "" {
		clientOpts = append(clientOpts, httpclient.ProxyURL(opts.Proxy))
	}
	options = append(options, pariah.Client(clientOpts...))

	if opts.RequestID {
		options = append(options, pariah.RequestID())
	}
	if opts.Dump {
		options = append(options, pariah.Use(pariah.Dump(cmd.ErrOrStderr())))
	}
	if opts.Verbose {
		options = append(options, pariah.Use(pariah.LogTo(logger)))
	}
	return options, nil
}

// parseParams parses "key=value" args.  Keys starting with ":" are path
// params.
func parseParams(args []string) (pariah.Params, error) {
	params := pariah.Params{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" || key == ":" {
			return nil, merry.Errorf("invalid param %q, expected key=value or :key=value", arg)
		}
		params[key] = pariah.String(value)
	}
	return params, nil
}
