package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dyike/widgetchat/config"
	"github.com/dyike/widgetchat/internal/api"
	"github.com/dyike/widgetchat/internal/chat"
	"github.com/dyike/widgetchat/internal/logging"
	"github.com/dyike/widgetchat/internal/ui"
	"github.com/dyike/widgetchat/internal/widget"
)

// app bundles everything a command needs after configuration is resolved.
type app struct {
	cfg       config.Config
	manager   *config.Manager
	client    *api.Client
	chatSvc   *chat.Service
	widgetSvc *widget.Service
	logger    *zap.Logger
}

func buildApp(cmd *cobra.Command) (*app, error) {
	configPath, _ := cmd.Flags().GetString("config")
	mgr, err := config.NewManager(config.WithConfigPath(configPath))
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	cfg := mgr.Get()

	if server, _ := cmd.Flags().GetString("server"); server != "" {
		cfg.ServerURL = server
	}
	if user, _ := cmd.Flags().GetString("user"); user != "" {
		cfg.UserID = user
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Debug)
	if err != nil {
		logger = zap.NewNop()
	}

	client := api.NewClient(cfg.ServerURL, cfg.Timeout())
	return &app{
		cfg:       cfg,
		manager:   mgr,
		client:    client,
		chatSvc:   chat.NewService(client, cfg.UserID, logger),
		widgetSvc: widget.NewService(client, cfg.UserID, logger),
		logger:    logger,
	}, nil
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "widgetchat",
		Short: "widgetchat - conversational widget dashboard",
		Long: `widgetchat is a terminal client for the AI WidgetChat backend.
Chat naturally and get live widget cards (weather, stocks, news, clock,
banking) rendered inline in the conversation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd)
		},
	}

	// Add subcommands
	rootCmd.AddCommand(newSessionsCmd())
	rootCmd.AddCommand(newWidgetsCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "Configuration file path")
	rootCmd.PersistentFlags().String("server", "", "Backend server URL override")
	rootCmd.PersistentFlags().String("user", "", "User id override")

	return rootCmd
}

func runChat(cmd *cobra.Command) error {
	application, err := buildApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = application.logger.Sync() }()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Hot-reload external config edits while the TUI runs. Connection
	// settings apply to subsequent requests.
	err = application.manager.Watch(ctx, func(cfg config.Config) {
		application.logger.Info("configuration reloaded",
			zap.String("server_url", cfg.ServerURL),
			zap.Int("timeout_seconds", cfg.RequestTimeout))
		application.client.SetBaseURL(cfg.ServerURL)
		application.client.SetTimeout(cfg.Timeout())
	})
	if err != nil {
		application.logger.Warn("config watch unavailable", zap.Error(err))
	}

	model := ui.NewModel(application.chatSvc, application.widgetSvc, application.logger)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("chat ui: %w", err)
	}
	return nil
}

// newSessionsCmd creates the sessions command group
func newSessionsCmd() *cobra.Command {
	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage chat sessions",
	}

	sessionsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List your chat sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := buildApp(cmd)
			if err != nil {
				return err
			}
			sessions, err := application.chatSvc.ListSessions(cmd.Context())
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				fmt.Println("No sessions yet. Start one with: widgetchat")
				return nil
			}
			for _, session := range sessions {
				title := session.Title
				if title == "" {
					title = "(untitled)"
				}
				fmt.Printf("%6d  %-40s  %s\n", session.ID, title, session.UpdatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	})

	sessionsCmd.AddCommand(&cobra.Command{
		Use:   "delete [ID]",
		Short: "Delete a chat session and its messages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid session id %q", args[0])
			}
			application, err := buildApp(cmd)
			if err != nil {
				return err
			}
			if err := application.chatSvc.DeleteSession(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("Session %d deleted.\n", id)
			return nil
		},
	})

	return sessionsCmd
}

// newWidgetsCmd creates the widgets command group
func newWidgetsCmd() *cobra.Command {
	widgetsCmd := &cobra.Command{
		Use:   "widgets",
		Short: "Inspect and manage widgets",
	}

	widgetsCmd.AddCommand(&cobra.Command{
		Use:   "types",
		Short: "List widget types the backend advertises",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := buildApp(cmd)
			if err != nil {
				return err
			}
			types, err := application.widgetSvc.ListTypes(cmd.Context())
			if err != nil {
				return err
			}
			for _, widgetType := range types {
				fmt.Println(widgetType)
			}
			return nil
		},
	})

	dataCmd := &cobra.Command{
		Use:   "data [TYPE]",
		Short: "Fetch widget data for a type",
		Long: `Fetch widget data directly, outside a conversation.
Example: widgetchat widgets data weather --param location=Paris`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := buildApp(cmd)
			if err != nil {
				return err
			}
			pairs, _ := cmd.Flags().GetStringArray("param")
			params := map[string]any{}
			for _, pair := range pairs {
				key, value, found := strings.Cut(pair, "=")
				if !found {
					return fmt.Errorf("invalid --param %q, expected key=value", pair)
				}
				params[key] = value
			}
			resp, err := application.widgetSvc.FetchData(cmd.Context(), args[0], params)
			if err != nil {
				return err
			}
			printJSON(resp.WidgetData)
			if resp.Cached {
				note := "served from server cache"
				if resp.ExpiresAt != nil {
					note += ", expires " + resp.ExpiresAt.Format("15:04:05")
				}
				fmt.Fprintln(os.Stderr, note)
			}
			return nil
		},
	}
	dataCmd.Flags().StringArray("param", nil, "Widget parameter as key=value (repeatable)")
	widgetsCmd.AddCommand(dataCmd)

	refreshCmd := &cobra.Command{
		Use:   "refresh [WIDGET_ID]",
		Short: "Request server-side recomputation of a widget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := buildApp(cmd)
			if err != nil {
				return err
			}
			force, _ := cmd.Flags().GetBool("force")
			if err := application.widgetSvc.Refresh(cmd.Context(), args[0], force); err != nil {
				return err
			}
			fmt.Println("Refresh requested. Re-open the session to see updated data.")
			return nil
		},
	}
	refreshCmd.Flags().Bool("force", false, "Bypass the server cache")
	widgetsCmd.AddCommand(refreshCmd)

	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the server-side widget cache",
	}
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear the server-side widget cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := buildApp(cmd)
			if err != nil {
				return err
			}
			widgetType, _ := cmd.Flags().GetString("type")
			if err := application.widgetSvc.ClearCache(cmd.Context(), widgetType); err != nil {
				return err
			}
			fmt.Println("Cache cleared.")
			return nil
		},
	}
	clearCmd.Flags().String("type", "", "Limit to one widget type")
	cacheCmd.AddCommand(clearCmd)
	widgetsCmd.AddCommand(cacheCmd)

	widgetsCmd.AddCommand(newWidgetConfigCmd())

	return widgetsCmd
}

// newWidgetConfigCmd creates the widgets config command group
func newWidgetConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage stored widget configurations",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "default [TYPE]",
		Short: "Show the server default configuration for a widget type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := buildApp(cmd)
			if err != nil {
				return err
			}
			cfg, err := application.widgetSvc.DefaultConfig(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSONValue(cfg)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "validate [TYPE]",
		Short: "Check a configuration against the server rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := buildApp(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			widgetType := args[0]

			defaults, err := application.widgetSvc.DefaultConfig(ctx, widgetType)
			if err != nil {
				return err
			}
			cfg, err := PromptWidgetConfig(defaults)
			if err != nil {
				return err
			}

			valid, err := application.widgetSvc.ValidateConfig(ctx, widgetType, cfg)
			if err != nil {
				return err
			}
			if !valid {
				return fmt.Errorf("configuration is not valid for %s", widgetType)
			}
			fmt.Println("Configuration is valid.")
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "create [TYPE]",
		Short: "Create a widget configuration interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := buildApp(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			widgetType := args[0]

			defaults, err := application.widgetSvc.DefaultConfig(ctx, widgetType)
			if err != nil {
				return err
			}
			cfg, err := PromptWidgetConfig(defaults)
			if err != nil {
				return err
			}

			valid, err := application.widgetSvc.ValidateConfig(ctx, widgetType, cfg)
			if err != nil {
				return err
			}
			if !valid {
				return fmt.Errorf("server rejected the configuration for %s", widgetType)
			}

			record, err := application.widgetSvc.CreateConfig(ctx, widgetType, cfg)
			if err != nil {
				return err
			}
			fmt.Printf("Configuration %d created for %s.\n", record.ID, record.WidgetType)
			return nil
		},
	})

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored widget configurations",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := buildApp(cmd)
			if err != nil {
				return err
			}
			widgetType, _ := cmd.Flags().GetString("type")
			all, _ := cmd.Flags().GetBool("all")
			records, err := application.widgetSvc.ListConfigs(cmd.Context(), widgetType, !all)
			if err != nil {
				return err
			}
			for _, record := range records {
				fmt.Printf("%6d  %-20s  updated %s\n", record.ID, record.WidgetType, record.UpdatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
	listCmd.Flags().String("type", "", "Filter by widget type")
	listCmd.Flags().Bool("all", false, "Include configurations of all users")
	configCmd.AddCommand(listCmd)

	configCmd.AddCommand(&cobra.Command{
		Use:   "get [ID]",
		Short: "Show one stored configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid config id %q", args[0])
			}
			application, err := buildApp(cmd)
			if err != nil {
				return err
			}
			record, err := application.widgetSvc.GetConfig(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSONValue(record)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "update [ID]",
		Short: "Update a stored configuration interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid config id %q", args[0])
			}
			application, err := buildApp(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			record, err := application.widgetSvc.GetConfig(ctx, id)
			if err != nil {
				return err
			}
			cfg, err := PromptWidgetConfig(&record.Config)
			if err != nil {
				return err
			}

			valid, err := application.widgetSvc.ValidateConfig(ctx, record.WidgetType, cfg)
			if err != nil {
				return err
			}
			if !valid {
				return fmt.Errorf("server rejected the configuration for %s", record.WidgetType)
			}

			if _, err := application.widgetSvc.UpdateConfig(ctx, id, cfg); err != nil {
				return err
			}
			fmt.Printf("Configuration %d updated.\n", id)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "delete [ID]",
		Short: "Delete a stored configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid config id %q", args[0])
			}
			application, err := buildApp(cmd)
			if err != nil {
				return err
			}
			if err := application.widgetSvc.DeleteConfig(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("Configuration %d deleted.\n", id)
			return nil
		},
	})

	return configCmd
}

// newConfigCmd creates the client config command
func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show client configuration",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the resolved client configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := buildApp(cmd)
			if err != nil {
				return err
			}
			fmt.Printf("config file: %s\n", application.manager.Path())
			return printJSONValue(application.cfg)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "edit",
		Short: "Edit the client configuration interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := buildApp(cmd)
			if err != nil {
				return err
			}
			cfg, err := PromptClientConfig(application.manager.Get())
			if err != nil {
				return err
			}
			if err := application.manager.Update(cfg); err != nil {
				return err
			}
			fmt.Printf("Configuration written to %s\n", application.manager.Path())
			return nil
		},
	})

	return configCmd
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("widgetchat v1.0.0")
			fmt.Println("Terminal client for the AI WidgetChat backend")
		},
	}
}

func printJSON(raw json.RawMessage) {
	var buf map[string]any
	if err := json.Unmarshal(raw, &buf); err != nil {
		fmt.Println(string(raw))
		return
	}
	pretty, err := json.MarshalIndent(buf, "", "  ")
	if err != nil {
		fmt.Println(string(raw))
		return
	}
	fmt.Println(string(pretty))
}

func printJSONValue(v any) error {
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(pretty))
	return nil
}
