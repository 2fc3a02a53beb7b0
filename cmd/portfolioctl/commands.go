package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"folio/internal/database"
	"folio/internal/portfolio"
	"folio/internal/view"

	"github.com/google/subcommands"
)

type analyzeCmd struct {
	user   string
	asJSON bool
}

func (*analyzeCmd) Name() string     { return "analyze" }
func (*analyzeCmd) Synopsis() string { return "analyze a trade CSV file and store the result" }
func (*analyzeCmd) Usage() string {
	return `portfolioctl analyze [-user <id>] [-json] <trades.csv>

  Validates the trades, computes holdings, summary and value history, and
  replaces the cached portfolio. Nothing is stored when a row is invalid.
`
}

func (c *analyzeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "user id the result is cached under")
	f.BoolVar(&c.asJSON, "json", false, "print the full result as JSON")
}

func (c *analyzeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "exactly one CSV file is required")
		return subcommands.ExitUsageError
	}
	file, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening file: %v\n", err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.close()

	res, err := a.svc.UploadCSV(ctx, c.user, file)
	if err != nil {
		var verr *portfolio.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintln(os.Stderr, verr.Error())
		} else {
			fmt.Fprintf(os.Stderr, "Error analyzing portfolio: %v\n", err)
		}
		return subcommands.ExitFailure
	}
	if c.asJSON {
		if err := writeJSON(os.Stdout, res); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(view.ReportMarkdown(res))
	return subcommands.ExitSuccess
}

type showCmd struct {
	user   string
	asJSON bool
	search string
	sort   string
	dir    string
	page   int
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "display the cached portfolio" }
func (*showCmd) Usage() string {
	return `portfolioctl show [-user <id>] [-json] [-search s] [-sort field] [-dir asc|desc] [-page n]

  Displays the last analyzed portfolio without recomputing it.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "user id the result is cached under")
	f.BoolVar(&c.asJSON, "json", false, "print the full result as JSON")
	f.StringVar(&c.search, "search", "", "only show symbols containing this text")
	f.StringVar(&c.sort, "sort", "marketValue", "holdings sort field")
	f.StringVar(&c.dir, "dir", "desc", "sort direction")
	f.IntVar(&c.page, "page", 1, "holdings page")
}

func (c *showCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	field, err := view.ParseSortField(c.sort)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	dir, err := view.ParseSortDirection(c.dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.close()

	res, err := a.svc.Current(ctx, c.user)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	if res == nil {
		fmt.Fprintln(os.Stderr, "no portfolio has been analyzed yet")
		return subcommands.ExitFailure
	}
	if c.asJSON {
		if err := writeJSON(os.Stdout, res); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	q := view.TableQuery{Search: c.search, Field: field, Direction: dir, Page: c.page}
	printMarkdown(view.SummaryMarkdown(res.Summary) + "\n" + view.HoldingsMarkdown(view.QueryHoldings(res.Holdings, q)))
	return subcommands.ExitSuccess
}

type resetCmd struct {
	user string
}

func (*resetCmd) Name() string     { return "reset" }
func (*resetCmd) Synopsis() string { return "clear the cached portfolio" }
func (*resetCmd) Usage() string {
	return `portfolioctl reset [-user <id>]
`
}

func (c *resetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "user id the result is cached under")
}

func (c *resetCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.close()

	if err := a.svc.Reset(ctx, c.user); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type chartCmd struct {
	user string
	kind string
	out  string
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "render a PNG chart of the cached portfolio" }
func (*chartCmd) Usage() string {
	return `portfolioctl chart [-user <id>] [-kind history|allocation] -o <file.png>
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "user id the result is cached under")
	f.StringVar(&c.kind, "kind", "history", "history or allocation")
	f.StringVar(&c.out, "o", "", "output PNG file")
}

func (c *chartCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.out == "" || (c.kind != "history" && c.kind != "allocation") {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}

	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.close()

	res, err := a.svc.Current(ctx, c.user)
	if err != nil || res == nil {
		fmt.Fprintf(os.Stderr, "no portfolio available: %v\n", err)
		return subcommands.ExitFailure
	}

	var png []byte
	if c.kind == "history" {
		png, err = view.RenderHistoryChart(res.PortfolioHistory)
	} else {
		png, err = view.RenderAllocationChart(res.Holdings)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering chart: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := os.WriteFile(c.out, png, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", c.out, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type listCmd struct{}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list cached portfolios" }
func (*listCmd) Usage() string {
	return `portfolioctl list
`
}

func (*listCmd) SetFlags(*flag.FlagSet) {}

func (*listCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.close()

	repo, ok := a.store.(*database.Repo)
	if !ok {
		fmt.Fprintf(os.Stderr, "listing needs a sql driver, not %q\n", a.cfg.Database.Driver)
		return subcommands.ExitFailure
	}
	entries, err := repo.Entries(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, e := range entries {
		fmt.Printf("%s\t%s\t%d bytes\n", e.Key, e.UpdatedAt.Format("2006-01-02 15:04:05"), len(e.Payload))
	}
	return subcommands.ExitSuccess
}
