package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/jrsteele09/go-member-client/api"
	"github.com/jrsteele09/go-member-client/apiclient"
	"github.com/jrsteele09/go-member-client/internal/config"
	"github.com/jrsteele09/go-member-client/internal/errors"
	"github.com/jrsteele09/go-member-client/launch"
	"github.com/jrsteele09/go-member-client/locale"
	"github.com/jrsteele09/go-member-client/marquee"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newRootCommand(c config.Config) *cobra.Command {
	var (
		a     *app
		quiet bool
	)

	root := &cobra.Command{
		Use:           "member-client",
		Short:         "Command line client for the member center API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !quiet {
				displayAppname(c.GetAppName())
			}
			var err error
			a, err = newApp(cmd.Context(), c)
			return err
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a != nil {
				a.Close()
			}
		},
	}
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "do not print the banner")

	// commands resolve the app lazily because it only exists once the
	// pre-run hook has executed
	get := func() *app { return a }
	root.AddCommand(
		newConfigCommand(get),
		newLoginCommand(get),
		newMeCommand(get),
		newLogoutCommand(get),
		newLangCommand(get),
		newLaunchCommand(get),
		newCallCommand(get),
		newWinnersCommand(),
		newStatusCommand(get),
		newWatchCommand(get),
	)
	return root
}

func newConfigCommand(get func() *app) *cobra.Command {
	var sourceURL string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Load the site configuration and print a summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := get()
			_, err := apiclient.Retry(cmd.Context(), a.retryPolicy(), func(ctx context.Context) (struct{}, error) {
				return struct{}{}, a.site.LoadConfig(ctx, sourceURL)
			})
			if err != nil {
				if loadErr := a.site.LastError(); loadErr != nil {
					return fmt.Errorf("loading configuration: code %d: %s", loadErr.Code, loadErr.Message)
				}
				return err
			}

			theme := a.site.Theme()
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"site_name":            a.site.SiteName(),
				"site_logo":            a.site.SiteLogo(),
				"group_prefix":         a.site.GroupPrefix(),
				"customer_service_url": a.site.CustomerServiceURL(),
				"primary_color":        theme.Accent,
				"status_bar":           theme.StatusBar,
				"fields":               a.site.Config().Len(),
				"available":            a.site.IsConfigAvailable(),
			})
		},
	}
	cmd.Flags().StringVar(&sourceURL, "url", "", "page URL reported to the server (default $SOURCE_URL)")
	return cmd
}

func newLoginCommand(get func() *app) *cobra.Command {
	var name, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the credential",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = os.Getenv("MEMBER_PASSWORD")
			}
			if name == "" || password == "" {
				return fmt.Errorf("--name and --password (or $MEMBER_PASSWORD) are required")
			}
			a := get()
			if err := a.session.Login(cmd.Context(), name, password); err != nil {
				return err
			}
			p := a.session.GetProfile(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s\n", p.DisplayName())
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "account name")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func newMeCommand(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Refresh and print the signed-in profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := get()
			if a.session.GetCredential(cmd.Context()) == "" {
				return errors.ErrNotLoggedIn
			}
			if err := a.session.RefreshProfileFromServer(cmd.Context()); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), a.session.GetProfile(cmd.Context()))
		},
	}
}

func newLogoutCommand(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out on the server and forget local credentials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := get()
			if a.session.GetCredential(cmd.Context()) != "" {
				if err := a.api.Logout(cmd.Context()); err != nil {
					log.Warn().Err(err).Msg("server logout failed, clearing local session anyway")
				}
			}
			return a.session.Logout(cmd.Context())
		},
	}
}

func newLangCommand(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lang [alias]",
		Short: "Show or change the interface language",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			if len(args) == 1 && !a.locale.ApplyParam(cmd.Context(), args[0]) {
				return errors.Wrapf(errors.ErrUnsupportedLanguage, "%q (supported: %s)", args[0], supportedLocales())
			}
			current := a.locale.Current()
			fmt.Fprintf(cmd.OutOrStdout(), "%s (server code %s)\n", current, current.ServerCode())
			return nil
		},
	}
}

func supportedLocales() string {
	tags := make([]string, 0, len(locale.Supported))
	for _, t := range locale.Supported {
		tags = append(tags, string(t))
	}
	return strings.Join(tags, ", ")
}

func newLaunchCommand(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "launch <url>",
		Short: "Apply the lang and token parameters of a launch URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			res, err := launch.Apply(cmd.Context(), args[0], a.locale, a.session)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
}

func newCallCommand(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "call <route> [key=value...]",
		Short: "Call a member API route and print its data",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := api.Params{}
			for _, kv := range args[1:] {
				k, v, ok := strings.Cut(kv, "=")
				if !ok {
					return fmt.Errorf("parameter %q is not key=value", kv)
				}
				params.Add(k, v)
			}
			data, err := get().api.Call(cmd.Context(), args[0], params)
			if err != nil {
				return err
			}
			if data == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "null")
				return nil
			}
			return printJSON(cmd.OutOrStdout(), data)
		},
	}
}

func newWinnersCommand() *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "winners",
		Short: "Print a random winners marquee",
		// no app needed
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printJSON(cmd.OutOrStdout(), marquee.NewGenerator().Winners(count))
		},
	}
	cmd.Flags().IntVar(&count, "count", marquee.DefaultCount, "number of entries")
	return cmd
}

func newStatusCommand(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print connectivity, session and client metrics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := get()
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "api:           %s\n", a.config.GetAPIBaseURL())
			fmt.Fprintf(out, "online:        %t\n", a.client.NetworkStatus(ctx))
			fmt.Fprintf(out, "storage:       %s\n", a.config.GetStorageBackend())
			fmt.Fprintf(out, "language:      %s\n", a.locale.Current())
			fmt.Fprintf(out, "group prefix:  %s\n", a.site.GroupPrefix())
			fmt.Fprintf(out, "credential:    %t\n", a.session.HasValidCredential(ctx))
			fmt.Fprintf(out, "logged in:     %t\n", a.session.IsLoggedIn(ctx))
			return printMetrics(out, a)
		},
	}
}

func printMetrics(w io.Writer, a *app) error {
	families, err := a.registry.Gather()
	if err != nil {
		return err
	}
	sort.Slice(families, func(i, j int) bool { return families[i].GetName() < families[j].GetName() })
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "member_client_") {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, l.GetName()+"="+l.GetValue())
			}
			value := m.GetCounter().GetValue()
			if h := m.GetHistogram(); h != nil {
				value = float64(h.GetSampleCount())
			}
			fmt.Fprintf(w, "%s{%s} %g\n", mf.GetName(), strings.Join(labels, ","), value)
		}
	}
	return nil
}

func newWatchCommand(get func() *app) *cobra.Command {
	var interval time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Report connectivity changes until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if interval <= 0 {
				return fmt.Errorf("--interval must be positive, got %s", interval)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a := get()
			a.client.NetworkStatus(ctx)
			a.client.WatchConnectivity(ctx, interval)
			return nil
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", 5*time.Second, "probe interval")
	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
