package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/starford/mauvelian/internal"
	"github.com/starford/mauvelian/internal/dateparse"
	"github.com/starford/mauvelian/internal/mauvelian"
)

// newConverter builds a converter carrying the configured reference pair.
func newConverter(cfg *internal.Config) (*mauvelian.Converter, error) {
	conv := mauvelian.NewConverter()
	ref, err := cfg.Reference.Pair()
	if err != nil {
		return nil, err
	}
	if !ref.IsZero() {
		if err := conv.SetReference(ref); err != nil {
			return nil, err
		}
	}
	return conv, nil
}

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert a date to the other calendar",
		ArgsUsage: "<date>",
		Description: `Accepts a real day (2016-11-05) or a Mauvelian date ("1328 305",
"1328 35 Colossus") and converts it the other way using the reference
pair from the config file.`,
		Action: runConvert,
	}
}

func runConvert(ctx context.Context, cmd *cli.Command) error {
	arg := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
	if arg == "" {
		return fmt.Errorf("convert: date argument is required")
	}

	cfg, err := loadConfigSoft(cmd)
	if err != nil {
		return err
	}
	conv, err := newConverter(cfg)
	if err != nil {
		return err
	}

	// A real day first; BE years like "-12 40" also start with a dash,
	// so failing over to the Mauvelian form handles both.
	if day, err := dateparse.Real(arg); err == nil {
		d, err := conv.ToMauvelian(day)
		if err != nil {
			return err
		}
		fmt.Println(d)
		return nil
	}

	d, err := dateparse.Mauvelian(arg)
	if err != nil {
		return err
	}
	t, err := conv.ToReal(d)
	if err != nil {
		return err
	}
	fmt.Println(t.Format("2006-01-02"))
	return nil
}

func todayCommand() *cli.Command {
	return &cli.Command{
		Name:   "today",
		Usage:  "Today's date on the Mauvelian calendar",
		Action: runToday,
	}
}

func runToday(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfigSoft(cmd)
	if err != nil {
		return err
	}
	conv, err := newConverter(cfg)
	if err != nil {
		return err
	}
	d, err := conv.ToMauvelian(time.Now())
	if err != nil {
		return err
	}
	fmt.Println(d)
	return nil
}

func betweenCommand() *cli.Command {
	return &cli.Command{
		Name:        "between",
		Usage:       "Days between two Mauvelian dates",
		ArgsUsage:   "<date> <date>",
		Description: `Dates with spaces need quoting: between "1306 256" "1318 128".`,
		Action:      runBetween,
	}
}

func runBetween(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) != 2 {
		return fmt.Errorf(`between: two dates are required, e.g. between "1306 256" "1318 128"`)
	}
	a, err := dateparse.Mauvelian(args[0])
	if err != nil {
		return err
	}
	b, err := dateparse.Mauvelian(args[1])
	if err != nil {
		return err
	}
	fmt.Println(a.DaysBetween(b))
	return nil
}

func seasonsCommand() *cli.Command {
	return &cli.Command{
		Name:   "seasons",
		Usage:  "Print the four seasons and their day ranges",
		Action: runSeasons,
	}
}

func runSeasons(ctx context.Context, cmd *cli.Command) error {
	for _, s := range mauvelian.Seasons() {
		fmt.Printf("%-9s days %3d-%3d (%d days)\n", s.Name(), s.FirstDay(), s.LastDay(), s.Days())
	}
	return nil
}
