package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/starford/mauvelian/internal/dateparse"
	"github.com/starford/mauvelian/internal/dateservice"
)

func almanacCommand() *cli.Command {
	return &cli.Command{
		Name:  "almanac",
		Usage: "Manage named events on the Mauvelian calendar",
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Save a named event",
				ArgsUsage: "<name> <date>",
				Description: `The date uses the Mauvelian forms, quoted or not:
almanac add "Harvest Feast" 1328 311 --note "east market closes early"`,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "note",
						Usage: "Free-form note stored with the event",
					},
					&cli.BoolFlag{
						Name:  "replace",
						Usage: "Overwrite an existing event with the same name",
					},
				},
				Action: runAlmanacAdd,
			},
			{
				Name:   "list",
				Usage:  "List events in calendar order",
				Action: runAlmanacList,
			},
			{
				Name:      "show",
				Usage:     "Show one event",
				ArgsUsage: "<name>",
				Action:    runAlmanacShow,
			},
			{
				Name:      "rm",
				Usage:     "Delete an event",
				ArgsUsage: "<name>",
				Action:    runAlmanacRemove,
			},
			{
				Name:      "search",
				Usage:     "Search event names and notes",
				ArgsUsage: "<query>",
				Action:    runAlmanacSearch,
			},
		},
	}
}

func runAlmanacAdd(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) < 2 {
		return fmt.Errorf(`almanac add: name and date are required, e.g. almanac add "Harvest Feast" "1328 311"`)
	}
	name := args[0]
	d, err := dateparse.Mauvelian(strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	return withService(ctx, cmd, func(svc *dateservice.Service) error {
		ev, err := svc.SaveEvent(ctx, name, d, cmd.String("note"), cmd.Bool("replace"))
		if err != nil {
			return err
		}
		printEvent(ev)
		return nil
	})
}

func runAlmanacList(ctx context.Context, cmd *cli.Command) error {
	return withService(ctx, cmd, func(svc *dateservice.Service) error {
		events, err := svc.ListEvents(ctx)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			fmt.Println("no events found")
			return nil
		}
		for _, ev := range events {
			printEvent(ev)
		}
		return nil
	})
}

func runAlmanacShow(ctx context.Context, cmd *cli.Command) error {
	name := strings.Join(cmd.Args().Slice(), " ")
	if name == "" {
		return fmt.Errorf("almanac show: event name is required")
	}
	return withService(ctx, cmd, func(svc *dateservice.Service) error {
		ev, err := svc.GetEvent(ctx, name)
		if err != nil {
			return err
		}
		printEvent(ev)
		if ev.Note != "" {
			fmt.Printf("  note: %s\n", ev.Note)
		}
		return nil
	})
}

func runAlmanacRemove(ctx context.Context, cmd *cli.Command) error {
	name := strings.Join(cmd.Args().Slice(), " ")
	if name == "" {
		return fmt.Errorf("almanac rm: event name is required")
	}
	return withService(ctx, cmd, func(svc *dateservice.Service) error {
		if err := svc.DeleteEvent(ctx, name); err != nil {
			return err
		}
		fmt.Printf("deleted: %s\n", name)
		return nil
	})
}

func runAlmanacSearch(ctx context.Context, cmd *cli.Command) error {
	query := strings.Join(cmd.Args().Slice(), " ")
	if query == "" {
		return fmt.Errorf("almanac search: query is required")
	}
	return withService(ctx, cmd, func(svc *dateservice.Service) error {
		events, err := svc.SearchEvents(ctx, query, 20)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			fmt.Println("no events found")
			return nil
		}
		for _, ev := range events {
			printEvent(ev)
		}
		return nil
	})
}

// printEvent writes one event per line, with the real day when a
// reference pair lets the service resolve it.
func printEvent(ev dateservice.EventDetail) {
	fmt.Printf("%s: %s", ev.Name, ev.Date.Display)
	if ev.Real != "" {
		fmt.Printf(" (%s)", ev.Real)
	}
	fmt.Println()
}
