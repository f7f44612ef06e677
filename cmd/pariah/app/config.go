package app

import (
	"os"
	"strings"

	"github.com/ansel1/merry"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func addGlobalFlags(fs *pflag.FlagSet, opts *GlobalOptions) {
	fs.StringVar(&opts.ConfigFile, "config", "", "config file (yaml, json or toml)")
	fs.StringVar(&opts.EnvFile, "env-file", defaultEnvFile, "dotenv file to load PARIAH_* variables from, if it exists")
	fs.StringVar(&opts.BaseURL, "base-url", "", "base URL of the API")
	fs.StringArrayVarP(&opts.Headers, "header", "H", nil, `request header, as "Name: value" (repeatable)`)
	fs.StringVarP(&opts.Data, "data", "d", "", "raw request body, or @file to read it from a file")
	fs.StringVar(&opts.Timeout, "timeout", "", "request timeout, e.g. 10s")
	fs.StringVar(&opts.Redirect, "redirect", "follow", "redirect policy: follow, error or manual")
	fs.IntVar(&opts.MaxRedirects, "max-redirects", 0, "max redirects to follow (0 for the transport default)")
	fs.Int64Var(&opts.MaxSize, "max-size", 0, "max response body size in bytes (0 for unlimited)")
	fs.BoolVar(&opts.Insecure, "insecure", false, "skip TLS certificate verification")
	fs.StringVar(&opts.Proxy, "proxy", "", "proxy URL")
	fs.BoolVar(&opts.Dump, "dump", false, "dump requests and responses to stderr")
	fs.BoolVarP(&opts.Verbose, "verbose", "v", false, "log each exchange")
	fs.BoolVar(&opts.Fail, "fail", false, "exit with an error on non-2XX statuses")
	fs.BoolVar(&opts.RequestID, "request-id", false, "send a random X-Request-Id header")
}

// loadEnvFile loads a dotenv file into the environment.  Variables already
// set are kept.  A missing file is only an error if it was named explicitly.
func loadEnvFile(path string, explicit bool) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) && !explicit {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return merry.Prependf(err, "loading env file %s", path)
	}
	return nil
}

// loadConfig merges the config file and PARIAH_* environment variables
// under the flags.  Flags set on the command line win.  The env file is
// loaded into the environment first.
func loadConfig(cmd *cobra.Command, opts *GlobalOptions) error {
	if err := loadEnvFile(opts.EnvFile, cmd.Flags().Changed("env-file")); err != nil {
		return err
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return merry.Prepend(err, "binding flags")
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return merry.Prependf(err, "reading config file %s", opts.ConfigFile)
		}
	}

	opts.BaseURL = v.GetString("base-url")
	// viper splits slice flags on commas, which header values may contain
	if !cmd.Flags().Changed("header") {
		opts.Headers = headerValues(v)
	}
	opts.Data = v.GetString("data")
	opts.Timeout = v.GetString("timeout")
	opts.Redirect = v.GetString("redirect")
	opts.MaxRedirects = v.GetInt("max-redirects")
	opts.MaxSize = v.GetInt64("max-size")
	opts.Insecure = v.GetBool("insecure")
	opts.Proxy = v.GetString("proxy")
	opts.Dump = v.GetBool("dump")
	opts.Verbose = v.GetBool("verbose")
	opts.Fail = v.GetBool("fail")
	opts.RequestID = v.GetBool("request-id")
	return nil
}

// headerValues reads the header key.  A single string, as PARIAH_HEADER
// gives, holds one header per line.
func headerValues(v *viper.Viper) []string {
	s, ok := v.Get("header").(string)
	if !ok {
		return v.GetStringSlice("header")
	}
	var headers []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			headers = append(headers, line)
		}
	}
	return headers
}
