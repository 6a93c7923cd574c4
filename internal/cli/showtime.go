package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mpeters/sunwatch/internal/config"
	"github.com/mpeters/sunwatch/internal/sun"
)

// timeLayout renders event instants in the configured zone.
const timeLayout = "2006-01-02 15:04:05 MST"

// ShowTimeOptions holds flags for the show-time command.
type ShowTimeOptions struct {
	*RootOptions
	Event string

	// Clock allows overriding "now" (for testing). Nil means system clock.
	Clock sun.Clock
}

// ShowTimeResult is the JSON payload for show-time.
type ShowTimeResult struct {
	Location config.Location `json:"location"`
	Times    sun.Times       `json:"times"`
	Event    sun.Event       `json:"event"`
	Value    float64         `json:"value"`
}

// NewShowTimeCommand creates the show-time command.
func NewShowTimeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowTimeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show-time",
		Short: "Show today's sun-event times and the offset from one event",
		Long: `Show today's dawn, sunrise, noon, sunset, and dusk times for the
configured location, plus the signed offset (in hours) between now and the
requested event. Negative means the event is still ahead.

Example:
  sunwatch show-time --event sunset
  sunwatch show-time --event dawn --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShowTime(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Event, "event", "", "sun event to observe (dawn|sunrise|noon|sunset|dusk)")
	_ = cmd.MarkFlagRequired("event")

	return cmd
}

func runShowTime(opts *ShowTimeOptions, cmd *cobra.Command) error {
	ev, err := sun.ParseEvent(opts.Event)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid event", err)
	}

	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return err
	}

	calc, err := cfg.Calculator()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid location", err)
	}

	clock := opts.Clock
	if clock == nil {
		clock = sun.SystemClock{}
	}
	now := clock.Now().In(calc.Location)

	times, err := calc.Times(now)
	if err != nil {
		return astroError(opts.RootOptions, cmd, err)
	}
	value := now.Sub(times.Of(ev)).Hours()

	slog.Debug("computed sun times", "event", ev, "value", value)

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	if formatter.Format == "json" {
		return formatter.Success(ShowTimeResult{
			Location: cfg.Location,
			Times:    times,
			Event:    ev,
			Value:    value,
		})
	}

	renderShowTime(cmd.OutOrStdout(), cfg.Location, times, ev, value)
	return nil
}

// renderShowTime writes the human-readable show-time report.
func renderShowTime(w io.Writer, loc config.Location, times sun.Times, ev sun.Event, value float64) {
	fmt.Fprintf(w, "Information for %s/%s\n", loc.Name, loc.Region)
	fmt.Fprintf(w, "Timezone: %s\n", loc.Timezone)
	fmt.Fprintf(w, "Latitude: %.2f; Longitude: %.2f\n", loc.Latitude, loc.Longitude)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Dawn:    %s\n", times.Dawn.Format(timeLayout))
	fmt.Fprintf(w, "Sunrise: %s\n", times.Sunrise.Format(timeLayout))
	fmt.Fprintf(w, "Noon:    %s\n", times.Noon.Format(timeLayout))
	fmt.Fprintf(w, "Sunset:  %s\n", times.Sunset.Format(timeLayout))
	fmt.Fprintf(w, "Dusk:    %s\n", times.Dusk.Format(timeLayout))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Offset from %s: %+.2f hours\n", ev, value)
}

// astroError reports a polar day/night condition as an action failure.
func astroError(opts *RootOptions, cmd *cobra.Command, err error) error {
	if errors.Is(err, sun.ErrNeverOccurs) {
		formatter := &OutputFormatter{
			Format:    opts.Format,
			Writer:    cmd.OutOrStdout(),
			ErrWriter: cmd.ErrOrStderr(),
			Verbose:   opts.Verbose,
		}
		_ = formatter.Error(ErrCodeAstro, err.Error(), nil)
		return WrapExitError(ExitFailure, "astronomical computation failed", err)
	}
	return WrapExitError(ExitFailure, "sun computation failed", err)
}
