package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	soundboard "github.com/soundbored/soundbored-go"
	"github.com/soundbored/soundbored-go/keybind"
	"github.com/soundbored/soundbored-go/localstore"
	"github.com/soundbored/soundbored-go/state"
)

var (
	baseURL string
	token   string
	guildID string
	debug   bool
)

const requestTimeout = 30 * time.Second

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "soundboardctl",
		Short: "Control a soundbored server from the command line",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
			log.Logger = log.Output(zerolog.ConsoleWriter{
				Out:        os.Stderr,
				TimeFormat: "2006-01-02 15:04:05",
				NoColor:    true,
			})
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				_ = os.Setenv("SOUNDBOARD_DEBUG", "true")
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	cfg, err := soundboard.LoadEnvConfig()
	if err != nil {
		cfg = soundboard.EnvConfig{BaseURL: "http://localhost:8000"}
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", cfg.BaseURL, "Base URL of the soundboard server")
	rootCmd.PersistentFlags().StringVar(&token, "token", cfg.Token, "Automation token (bearer auth)")
	rootCmd.PersistentFlags().StringVarP(&guildID, "guild", "g", cfg.GuildID, "Guild id to act on")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable verbose debug output")

	rootCmd.AddCommand(newInfoCmd())
	rootCmd.AddCommand(newUserCmd())
	rootCmd.AddCommand(newSoundsCmd())
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newStopCmd())
	rootCmd.AddCommand(newJoinCmd())
	rootCmd.AddCommand(newLeaveCmd())
	rootCmd.AddCommand(newRecordingsCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newKeybindsCmd())
	return rootCmd
}

func newClient() *soundboard.Client {
	opts := []soundboard.Option{}
	if token != "" {
		opts = append(opts, soundboard.WithAuthToken(token))
	}
	return soundboard.New(baseURL, opts...)
}

func requireGuild() error {
	if guildID == "" {
		return fmt.Errorf("no guild selected: pass --guild or set SOUNDBOARD_GUILD_ID")
	}
	return nil
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show server build metadata",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()
			info, err := newClient().GetAppInfo(ctx)
			if err != nil {
				return err
			}
			return printJSON(info)
		},
	}
}

func newUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "user",
		Short: "Show the authenticated user and its guilds",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()
			user, err := newClient().GetUser(ctx)
			if err != nil {
				return err
			}
			return printJSON(user)
		},
	}
}

func newSoundsCmd() *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "sounds",
		Short: "List sounds, optionally fuzzy-filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()
			sounds, err := newClient().ListSounds(ctx)
			if err != nil {
				return err
			}

			catalog := state.NewSoundCatalog()
			catalog.SetSounds(sounds)
			catalog.SetFilterText(filter)
			for _, s := range catalog.Visible() {
				fmt.Printf("%-40s %-20s %s\n", s.ID, s.Category, s.Name)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "Fuzzy filter on name and category")
	return cmd
}

func newPlayCmd() *cobra.Command {
	var autojoin bool
	cmd := &cobra.Command{
		Use:   "play <sound-id>",
		Short: "Play a sound into the guild's voice channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireGuild(); err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()
			res, err := newClient().PlaySound(ctx, guildID, args[0], autojoin)
			if err != nil {
				fmt.Fprintln(os.Stderr, soundboard.PlayErrorMessage(err))
				return err
			}
			if res.SoundVolume != nil {
				log.Info().
					Float64("mean_volume", res.SoundVolume.MeanVolume).
					Float64("max_volume", res.SoundVolume.MaxVolume).
					Float64("adjustment", res.VolumeAdjustment).
					Msg("playing")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&autojoin, "autojoin", true, "Join your voice channel first if needed")
	return cmd
}

func newStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the guild's current playback",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireGuild(); err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()
			return newClient().StopPlayback(ctx, guildID)
		},
	}
}

func newJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join",
		Short: "Connect the bot to your current voice channel",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireGuild(); err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()
			if err := newClient().JoinChannel(ctx, guildID); err != nil {
				fmt.Fprintln(os.Stderr, soundboard.JoinErrorMessage(err))
				return err
			}
			return nil
		},
	}
}

func newLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave",
		Short: "Disconnect the bot from its voice channel",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireGuild(); err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()
			if err := newClient().LeaveChannel(ctx, guildID); err != nil {
				fmt.Fprintln(os.Stderr, soundboard.LeaveErrorMessage(err))
				return err
			}
			return nil
		},
	}
}

func newRecordingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recordings",
		Short: "List saved voice recordings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()
			recs, err := newClient().ListRecordings(ctx)
			if err != nil {
				return err
			}
			return printJSON(recs)
		},
	}
}

func newEventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "Tail the guild's live event stream until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireGuild(); err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			// The default client timeout would cut the stream short.
			client := soundboard.New(baseURL, eventStreamOptions()...)
			stream, err := client.SubscribeEvents(ctx, guildID)
			if err != nil {
				return err
			}
			defer stream.Close()

			for ev := range stream.Events() {
				base := ev.Base()
				fmt.Printf("%s %s %s\n",
					base.Timestamp.Format(time.RFC3339),
					base.UserName,
					soundboard.DescribeEvent(ev))
			}
			return stream.Err()
		},
	}
}

func eventStreamOptions() []soundboard.Option {
	opts := []soundboard.Option{soundboard.WithHTTPTimeout(24 * time.Hour)}
	if token != "" {
		opts = append(opts, soundboard.WithAuthToken(token))
	}
	return opts
}

func newKeybindsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keybinds",
		Short: "Manage keybinds and generate automation scripts",
	}
	cmd.AddCommand(newKeybindsExportAhkCmd())
	return cmd
}

func newKeybindsExportAhkCmd() *cobra.Command {
	var input, output string
	cmd := &cobra.Command{
		Use:   "export-ahk",
		Short: "Generate an AutoHotkey script from a keybind export",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			client := newClient()
			sounds, err := client.ListSounds(ctx)
			if err != nil {
				return err
			}

			var binds []keybind.Keybind
			if input != "" {
				f, err := os.Open(input)
				if err != nil {
					return err
				}
				defer func() { _ = f.Close() }()
				binds, err = keybind.Import(f, sounds)
				if err != nil {
					return err
				}
			} else {
				store, err := localstore.NewFile(defaultStoreDir())
				if err != nil {
					return err
				}
				binds, err = keybind.Load(store)
				if err != nil {
					return err
				}
				keybind.Rebind(binds, sounds)
			}

			tok, err := client.GetAuthToken(ctx)
			if soundboard.IsNotFound(err) {
				tok, err = client.GenerateAuthToken(ctx)
			}
			if err != nil {
				return err
			}

			script, err := keybind.GenerateAutoHotkey(baseURL, tok.Token, binds)
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				fmt.Print(script)
				return nil
			}
			return os.WriteFile(output, []byte(script), 0o644)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "Keybind JSON export to read (default: local store)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the script here instead of stdout")
	return cmd
}

func defaultStoreDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "soundboardctl")
	}
	return ".soundboardctl"
}
