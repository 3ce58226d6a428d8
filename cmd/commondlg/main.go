package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/skratchdot/open-golang/open"

	"commondlg.app/commondlg"
)

var (
	openArg   = flag.Bool("open", false, "Show a file-open dialog and print the selected path.")
	folderArg = flag.Bool("folder", false, "Show a folder-open dialog and print the selected path.")
	saveArg   = flag.Bool("save", false, "Show a file-save dialog and print the selected path.")
	infoArg   = flag.Bool("info", false, "Show an informational message box.")
	errorArg  = flag.Bool("error", false, "Show an error message box.")
	titleArg  = flag.String("title", "", "Message box title.")
	textArg   = flag.String("text", "", "Message box description.")
	likeArg   = flag.String("like", "", "Add a save filter for the media group of this file's content.")
	revealArg = flag.Bool("reveal", false, "Open the selected path with the default application.")
	debugArg  = flag.Bool("debug", false, "Log dialog activity to stderr.")
)

// filterList collects repeated -filter "Name:ext,ext" flags.
type filterList struct {
	filters []commondlg.FileFilter
}

func (f *filterList) String() string {
	parts := make([]string, 0, len(f.filters))
	for _, ff := range f.filters {
		parts = append(parts, ff.Name+":"+strings.Join(ff.Extensions, ","))
	}
	return strings.Join(parts, " ")
}

func (f *filterList) Set(v string) error {
	name, exts, ok := strings.Cut(v, ":")
	if !ok || name == "" {
		return errors.New(`expected "Name:ext,ext"`)
	}
	filter := commondlg.FileFilter{Name: name}
	for _, ext := range strings.Split(exts, ",") {
		if ext = strings.TrimSpace(ext); ext != "" {
			filter.Extensions = append(filter.Extensions, ext)
		}
	}
	f.filters = append(f.filters, filter)
	return nil
}

func main() {
	var filters filterList
	flag.Var(&filters, "filter", `Save filter as "Name:ext,ext". May be repeated.`)
	flag.Parse()

	if *debugArg {
		commondlg.SetLogOutput(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	if *likeArg != "" {
		filter, err := commondlg.FilterForFile(*likeArg)
		if err != nil {
			fatal(err)
		}
		filters.filters = append(filters.filters, filter)
	}

	switch {
	case *infoArg:
		commondlg.ShowMessage(nil, *titleArg, *textArg)
	case *errorArg:
		commondlg.ShowError(nil, *titleArg, *textArg)
	case *folderArg:
		emit(commondlg.OpenFolder(nil))
	case *saveArg:
		if len(filters.filters) > 0 {
			emit(commondlg.SaveFileWithFilters(nil, filters.filters))
		} else {
			emit(commondlg.SaveFile(nil))
		}
	case *openArg:
		emit(commondlg.OpenFile(nil))
	default:
		flag.Usage()
		os.Exit(2)
	}
}

// emit prints an accepted path. Cancellation exits 1 without output, the
// way the zenity helper does.
func emit(path string, err error) {
	if errors.Is(err, commondlg.ErrCancelled) {
		os.Exit(1)
	}
	if err != nil {
		fatal(err)
	}

	fmt.Println(path)
	if *revealArg {
		if err := open.Run(path); err != nil {
			fatal(err)
		}
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Encountered error(s): %s\n", err)
	os.Exit(1)
}
