// Package app implements the pariah command line.
//
// The root command carries the connection flags.  There is one subcommand
// per HTTP verb, each taking a path template and params:
//
//	pariah [flags] <verb> <path-template> [key=value ...]
//
// Params whose key starts with ":" fill the placeholders of the template.
// The others are sent as query parameters.
package app

import (
	"strings"

	"github.com/ThalesGroup/pariah"
	"github.com/spf13/cobra"
)

const (
	cliName        = "pariah"
	cliDescription = "pariah - call JSON REST APIs"

	envPrefix      = "PARIAH"
	defaultEnvFile = ".env"
)

// GlobalOptions holds the flags shared by every request subcommand, after
// merging the config file and the environment.
type GlobalOptions struct {
	ConfigFile   string
	EnvFile      string
	BaseURL      string
	Headers      []string
	Data         string
	Timeout      string
	Redirect     string
	MaxRedirects int
	MaxSize      int64
	Insecure     bool
	Proxy        string
	Dump         bool
	Verbose      bool
	Fail         bool
	RequestID    bool
}

// NewPariahCommand creates the root command with one subcommand per verb.
func NewPariahCommand() *cobra.Command {
	opts := &GlobalOptions{}

	cmd := &cobra.Command{
		Use:   cliName,
		Short: cliDescription,
		Long: `pariah sends one request to a JSON REST API and prints the result.

The response status is printed to stderr.  The payload is printed to stdout,
indented if it's JSON, raw otherwise.

Flags can also be set in a config file (--config), or with PARIAH_*
environment variables, e.g. PARIAH_BASE_URL.  PARIAH_HEADER holds one
"Name: value" header per line.  Variables are also read from a dotenv file
(--env-file, .env by default).

A -H header replaces the default value of the same name.  Repeating a name
adds values.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(cmd, opts)
		},
	}

	addGlobalFlags(cmd.PersistentFlags(), opts)

	for _, v := range pariah.Verbs() {
		cmd.AddCommand(NewRequestCommand(opts, v))
	}
	cmd.AddCommand(NewVerbsCommand())

	return cmd
}

// NewVerbsCommand lists the supported verbs.
func NewVerbsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verbs",
		Short: "List the supported HTTP verbs",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, v := range pariah.Verbs() {
				cmd.Println(strings.ToLower(v.String()))
			}
		},
	}
}
