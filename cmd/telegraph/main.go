// Package main is the telegraph command line client.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/flemzord/telegraph"
	"github.com/spf13/cobra"
)

// Set by goreleaser ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "telegraph",
		Short:         "Publish and manage Telegraph pages from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("config", "c", "", "Path to configuration file")
	root.PersistentFlags().String("token", "", "Access token (overrides configuration)")
	root.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	root.AddCommand(
		versionCmd(),
		accountCmd(),
		pageCmd(),
		viewsCmd(),
		uploadCmd(),
	)
	return root
}

// newClient builds a telegraph client from the config file and the
// persistent flag overrides.
func newClient(cmd *cobra.Command) (*telegraph.Client, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	required := cfgPath != ""
	if cfgPath == "" {
		cfgPath = defaultConfigPath()
	}

	cfg, err := loadConfig(cfgPath, required)
	if err != nil {
		return nil, err
	}

	if token, _ := cmd.Flags().GetString("token"); token != "" {
		cfg.AccessToken = token
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	return telegraph.NewClient(cfg)
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("telegraph %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account management",
	}

	create := &cobra.Command{
		Use:   "create <short-name>",
		Short: "Create a new account and print its access token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			authorName, _ := cmd.Flags().GetString("author-name")
			authorURL, _ := cmd.Flags().GetString("author-url")
			account, err := client.CreateAccount(cmd.Context(), telegraph.CreateAccountRequest{
				ShortName:  args[0],
				AuthorName: authorName,
				AuthorURL:  authorURL,
			})
			if err != nil {
				return err
			}
			return printJSON(account)
		},
	}
	create.Flags().String("author-name", "", "Default author name")
	create.Flags().String("author-url", "", "Default author profile link")

	info := &cobra.Command{
		Use:   "info",
		Short: "Show the account bound to the access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			account, err := client.GetAccountInfo(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(account)
		},
	}

	revoke := &cobra.Command{
		Use:   "revoke-token",
		Short: "Revoke the access token and print the replacement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			account, err := client.RevokeAccessToken(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(account)
		},
	}

	cmd.AddCommand(create, info, revoke)
	return cmd
}

func pageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Page publishing",
	}

	create := &cobra.Command{
		Use:   "create <title> <markdown-file>",
		Short: "Publish a Markdown file as a new page",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			source, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			page, err := client.CreatePageMarkdown(cmd.Context(), args[0], string(source), nil)
			if err != nil {
				return err
			}
			fmt.Println(page.URL)
			return nil
		},
	}

	edit := &cobra.Command{
		Use:   "edit <path> <title> <markdown-file>",
		Short: "Replace the title and content of an existing page",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			source, err := os.ReadFile(args[2])
			if err != nil {
				return err
			}
			page, err := client.EditPage(cmd.Context(), args[0], args[1],
				telegraph.ContentFromMarkdown(string(source)), nil)
			if err != nil {
				return err
			}
			fmt.Println(page.URL)
			return nil
		},
	}

	get := &cobra.Command{
		Use:   "get <path>",
		Short: "Fetch a page and print it as Markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			page, err := client.GetPage(cmd.Context(), args[0], true)
			if err != nil {
				return err
			}
			md, err := telegraph.ContentToMarkdown(page.Content)
			if err != nil {
				return err
			}
			fmt.Printf("# %s\n\n%s\n", page.Title, md)
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List the account's pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			offset, _ := cmd.Flags().GetInt("offset")
			limit, _ := cmd.Flags().GetInt("limit")
			pages, err := client.GetPageList(cmd.Context(), offset, limit)
			if err != nil {
				return err
			}
			return printJSON(pages)
		},
	}
	list.Flags().Int("offset", 0, "Pagination offset")
	list.Flags().Int("limit", 50, "Number of pages to return (max 200)")

	cmd.AddCommand(create, edit, get, list)
	return cmd
}

func viewsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "views <path>",
		Short: "Show view counts for a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			query := telegraph.ViewsQuery{}
			query.Year, _ = cmd.Flags().GetInt("year")
			query.Month, _ = cmd.Flags().GetInt("month")
			query.Day, _ = cmd.Flags().GetInt("day")
			if cmd.Flags().Changed("hour") {
				hour, _ := cmd.Flags().GetInt("hour")
				query.Hour = telegraph.Hour(hour)
			}
			views, err := client.GetViews(cmd.Context(), args[0], query)
			if err != nil {
				return err
			}
			fmt.Println(views.Views)
			return nil
		},
	}
	cmd.Flags().Int("year", 0, "Restrict to a year (2000-2100)")
	cmd.Flags().Int("month", 0, "Restrict to a month (1-12, requires --year)")
	cmd.Flags().Int("day", 0, "Restrict to a day (1-31, requires --month)")
	cmd.Flags().Int("hour", 0, "Restrict to an hour (0-24, requires --day)")
	return cmd
}

func uploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>...",
		Short: "Upload files to telegra.ph and print their URLs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			files := make([]telegraph.UploadFile, 0, len(args))
			handles := make([]*os.File, 0, len(args))
			defer func() {
				for _, f := range handles {
					_ = f.Close()
				}
			}()
			for _, name := range args {
				f, err := os.Open(name)
				if err != nil {
					return err
				}
				handles = append(handles, f)
				files = append(files, telegraph.UploadFile{Name: name, Data: f})
			}

			start := time.Now()
			results := client.UploadAll(cmd.Context(), files, func(done, total int, sent int64, res telegraph.UploadResult) {
				fmt.Fprintf(os.Stderr, "[%d/%d] %s (%d bytes, %s elapsed)\n",
					done, total, res.Name, sent, time.Since(start).Round(time.Millisecond))
			})

			var failed bool
			for _, res := range results {
				if res.Err != nil {
					failed = true
					fmt.Fprintf(os.Stderr, "%s: %v\n", res.Name, res.Err)
					continue
				}
				fmt.Println(res.URL)
			}
			if failed {
				return fmt.Errorf("some uploads failed")
			}
			return nil
		},
	}
}
