package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/starford/mauvelian/internal/dateparse"
	"github.com/starford/mauvelian/internal/mauvelian"
)

func interactiveCommand() *cli.Command {
	return &cli.Command{
		Name:   "interactive",
		Usage:  "Prompt for a reference pair and run one conversion",
		Action: runInteractive,
	}
}

func runInteractive(ctx context.Context, cmd *cli.Command) error {
	in := bufio.NewScanner(os.Stdin)

	fmt.Println("Input reference point:")
	realDay, err := promptReal(in)
	if err != nil {
		return err
	}
	md, err := promptMauvelian(in)
	if err != nil {
		return err
	}

	conv := mauvelian.NewConverter()
	if err := conv.SetReference(mauvelian.Reference{Real: realDay, Mauvelian: md}); err != nil {
		return err
	}

	choice, err := prompt(in, "(1) Mauvelian -> Real; (2) Real -> Mauvelian: ")
	if err != nil {
		return err
	}
	switch choice {
	case "1":
		d, err := promptMauvelian(in)
		if err != nil {
			return err
		}
		t, err := conv.ToReal(d)
		if err != nil {
			return err
		}
		fmt.Println("Converted:", t.Format("2006-01-02"))
	case "2":
		day, err := promptReal(in)
		if err != nil {
			return err
		}
		d, err := conv.ToMauvelian(day)
		if err != nil {
			return err
		}
		fmt.Println("Converted:", d)
	default:
		return fmt.Errorf("unknown choice %q", choice)
	}

	fmt.Println("Bye!")
	return nil
}

func prompt(in *bufio.Scanner, label string) (string, error) {
	fmt.Print(label)
	if !in.Scan() {
		if err := in.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("input closed")
	}
	return strings.TrimSpace(in.Text()), nil
}

func promptReal(in *bufio.Scanner) (time.Time, error) {
	s, err := prompt(in, "Real date (YYYY-MM-DD): ")
	if err != nil {
		return time.Time{}, err
	}
	return dateparse.Real(s)
}

func promptMauvelian(in *bufio.Scanner) (mauvelian.Date, error) {
	s, err := prompt(in, "Mauvelian date (like: '1306 256' for 256th day of 1306 year): ")
	if err != nil {
		return mauvelian.Date{}, err
	}
	return dateparse.Mauvelian(s)
}
