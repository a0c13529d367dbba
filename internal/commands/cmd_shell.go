package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/artfolio/internal/catalog"
	"github.com/hay-kot/artfolio/internal/core/artwork"
	"github.com/hay-kot/artfolio/internal/printer"
	"github.com/hay-kot/artfolio/internal/store/csvfile"
	"github.com/hay-kot/artfolio/internal/styles"
	"github.com/hay-kot/artfolio/internal/tui"
)

const shellHelp = `Commands:
  ls                         list every artwork
  artist <name>              list artworks by an artist
  year <n>                   list artworks from a year
  add [t,a,y,k]              add an artwork (form when no fields given)
  update <title> [= t,a,y,k] edit an artwork (form when no fields given);
                             quote a title containing '=' ("A=B" = ...)
  rm <title>                 remove an artwork
  undo, redo                 revert or re-apply the last change
  history                    show undo history
  help                       show this help
  quit                       leave the shell`

type ShellCmd struct {
	flags *Flags
}

func NewShellCmd(flags *Flags) *ShellCmd {
	return &ShellCmd{flags: flags}
}

func (cmd *ShellCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "shell",
		Usage:     "Browse and edit the catalog interactively",
		UsageText: "artfolio shell",
		Description: `Starts an interactive session over the catalog. Every change is recorded
in the same undo history the other commands use.

Type 'help' inside the shell for a list of commands.`,
		Action: cmd.run,
	})
	return app
}

func (cmd *ShellCmd) run(ctx context.Context, c *cli.Command) error {
	in := c.Root().Reader
	if in == nil {
		in = os.Stdin
	}

	sh := newShell(cmd.flags.Service, c.Root().Writer, stdinIsTerminal())
	return sh.Run(ctx, in)
}

// shell is a line-oriented loop over a catalog.Service.
type shell struct {
	svc         *catalog.Service
	out         io.Writer
	p           *printer.Printer
	interactive bool
}

func newShell(svc *catalog.Service, out io.Writer, interactive bool) *shell {
	return &shell{
		svc:         svc,
		out:         out,
		p:           printer.New(out),
		interactive: interactive,
	}
}

// Run reads commands from in until quit or end of input.
func (sh *shell) Run(ctx context.Context, in io.Reader) error {
	if sh.interactive {
		_, _ = fmt.Fprintln(sh.out, styles.BannerStyle.Render(styles.Banner))
		_, _ = fmt.Fprintln(sh.out, styles.MutedStyle.Render("  type 'help' for commands"))
		_, _ = fmt.Fprintln(sh.out)
	}

	scanner := bufio.NewScanner(in)
	for {
		if sh.interactive {
			_, _ = fmt.Fprint(sh.out, styles.PromptStyle.Render("artfolio> "))
		}

		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		verb, args, _ := strings.Cut(line, " ")
		args = strings.TrimSpace(args)

		if verb == "quit" || verb == "exit" {
			return nil
		}

		if err := sh.exec(ctx, verb, args); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				sh.p.Infof("Cancelled")
				continue
			}
			sh.report(err)
		}
	}

	return scanner.Err()
}

func (sh *shell) exec(ctx context.Context, verb, args string) error {
	switch verb {
	case "ls", "list":
		records, err := sh.svc.GetAll(ctx)
		if err != nil {
			return err
		}
		return sh.list(records)
	case "artist":
		if args == "" {
			return fmt.Errorf("usage: artist <name>")
		}
		records, err := sh.svc.FilterByArtist(ctx, args)
		if err != nil {
			return err
		}
		return sh.list(records)
	case "year":
		year, err := strconv.Atoi(args)
		if err != nil {
			return fmt.Errorf("usage: year <n>")
		}
		records, err := sh.svc.FilterByYear(ctx, year)
		if err != nil {
			return err
		}
		return sh.list(records)
	case "add":
		return sh.add(ctx, args)
	case "update", "edit":
		return sh.update(ctx, args)
	case "rm", "remove":
		return sh.remove(ctx, args)
	case "undo":
		if !sh.svc.CanUndo() {
			sh.p.Infof("Nothing to undo")
			return nil
		}
		records, err := sh.svc.Undo(ctx)
		if err != nil {
			return err
		}
		sh.p.Changef(len(records), "Undone")
		return nil
	case "redo":
		if !sh.svc.CanRedo() {
			sh.p.Infof("Nothing to redo")
			return nil
		}
		records, err := sh.svc.Redo(ctx)
		if err != nil {
			return err
		}
		sh.p.Changef(len(records), "Redone")
		return nil
	case "history":
		applied, pending := sh.svc.History()
		if len(applied) == 0 && len(pending) == 0 {
			sh.p.Infof("No history")
			return nil
		}
		return writeHistory(sh.out, applied, pending)
	case "help", "?":
		_, _ = fmt.Fprintln(sh.out, shellHelp)
		return nil
	default:
		return fmt.Errorf("unknown command %q (type 'help' for commands)", verb)
	}
}

func (sh *shell) list(records []artwork.Artwork) error {
	if len(records) == 0 {
		sh.p.Infof("No artworks found")
		return nil
	}

	if err := writeTable(sh.out, records); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(sh.out, styles.MutedStyle.Render(printer.Plural(len(records), "artwork")))
	return nil
}

func (sh *shell) add(ctx context.Context, args string) error {
	var a artwork.Artwork

	switch {
	case args != "":
		parsed, err := parseFields(args)
		if err != nil {
			return fmt.Errorf("usage: add <title>,<artist>,<year>,<type>: %w", err)
		}
		a = parsed
	case sh.interactive:
		records, err := sh.svc.GetAll(ctx)
		if err != nil {
			return err
		}
		a, err = tui.NewArtworkForm("New artwork", artwork.Artwork{}, titleSet(records)).Run()
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("usage: add <title>,<artist>,<year>,<type>")
	}

	records, err := sh.svc.Add(ctx, a)
	if err != nil {
		return err
	}
	sh.p.Changef(len(records), "Added %q", a.Title)
	return nil
}

func (sh *shell) update(ctx context.Context, args string) error {
	title, fields, hasFields, err := splitUpdate(args)
	if err != nil {
		return fmt.Errorf("usage: update <title> [= <title>,<artist>,<year>,<type>]: %w", err)
	}
	if title == "" {
		return fmt.Errorf("usage: update <title> [= <title>,<artist>,<year>,<type>]")
	}

	records, err := sh.svc.GetAll(ctx)
	if err != nil {
		return err
	}

	current, found := artwork.Find(records, title)

	var updated artwork.Artwork
	switch {
	case hasFields:
		updated, err = parseFields(fields)
		if err != nil {
			return fmt.Errorf("usage: update <title> = <title>,<artist>,<year>,<type>: %w", err)
		}
	case !found:
		return fmt.Errorf("%q: %w", title, artwork.ErrNotFound)
	case sh.interactive:
		updated, err = tui.NewArtworkForm("Update "+title, current, titleSet(records)).Run()
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("usage: update <title> = <title>,<artist>,<year>,<type>")
	}

	records, err = sh.svc.Update(ctx, title, updated)
	if err != nil {
		return err
	}

	if !found {
		sh.p.Warnf("No artwork titled %q, nothing updated", title)
		return nil
	}
	sh.p.Changef(len(records), "Updated %q", title)
	return nil
}

func (sh *shell) remove(ctx context.Context, title string) error {
	if title == "" {
		if !sh.interactive {
			return fmt.Errorf("usage: rm <title>")
		}

		records, err := sh.svc.GetAll(ctx)
		if err != nil {
			return err
		}
		title, err = tui.PickTitle("Remove which artwork?", titlesOf(records))
		if err != nil {
			return err
		}
	}

	exists, err := sh.svc.Exists(ctx, title)
	if err != nil {
		return err
	}

	records, err := sh.svc.Remove(ctx, title)
	if err != nil {
		return err
	}

	if !exists {
		sh.p.Warnf("No artwork titled %q, nothing removed", title)
		return nil
	}
	sh.p.Changef(len(records), "Removed %q", title)
	return nil
}

func (sh *shell) report(err error) {
	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		sh.p.FatalError(err)
		return
	}
	sh.p.Errorf("%v", err)
}

// parseFields reads one delimited line of four fields, trimming the space
// people tend to type after commas.
// splitUpdate separates "<title> [= <fields>]". A title containing '=' must
// be quoted, with inner quotes doubled as in the delimited format.
func splitUpdate(args string) (title, fields string, hasFields bool, err error) {
	args = strings.TrimSpace(args)
	if !strings.HasPrefix(args, `"`) {
		title, fields, hasFields = strings.Cut(args, "=")
		return strings.TrimSpace(title), fields, hasFields, nil
	}

	var b strings.Builder
	for i := 1; i < len(args); i++ {
		if args[i] != '"' {
			b.WriteByte(args[i])
			continue
		}
		if i+1 < len(args) && args[i+1] == '"' {
			b.WriteByte('"')
			i++
			continue
		}

		rest := strings.TrimSpace(args[i+1:])
		if rest == "" {
			return b.String(), "", false, nil
		}
		if !strings.HasPrefix(rest, "=") {
			return "", "", false, fmt.Errorf("unexpected %q after quoted title", rest)
		}
		return b.String(), rest[1:], true, nil
	}

	return "", "", false, errors.New("unterminated quoted title")
}

func parseFields(line string) (artwork.Artwork, error) {
	records, skipped := csvfile.Decode([]byte(line))
	if len(skipped) > 0 {
		return artwork.Artwork{}, errors.New(skipped[0].Reason)
	}
	if len(records) != 1 {
		return artwork.Artwork{}, errors.New("expected one record")
	}

	a := records[0]
	a.Title = strings.TrimSpace(a.Title)
	a.Artist = strings.TrimSpace(a.Artist)
	a.Type = strings.TrimSpace(a.Type)
	return a, nil
}
