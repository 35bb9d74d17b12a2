// resget reads packed resources back out of a data blob and index.
//
//	resget [-root dir] list
//	resget [-root dir] get <key> [key ...]
//	resget [-root dir] report
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/charmbracelet/log"

	"github.com/mrhapile/respack/pkg/logging"
	"github.com/mrhapile/respack/pkg/pack"
)

var errUsage = errors.New("usage: resget [-root dir] [-data file] [-index file] list | get <key>... | report")

func main() {
	if err := mainE(os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			logging.Sender(log.New(os.Stderr), logging.TagCLI).Error(err.Error())
		}
		os.Exit(-1)
	}
}

func mainE(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("resget", flag.ContinueOnError)
	rootFlag := fs.String("root", ".", "directory holding the blob and index")
	dataFlag := fs.String("data", pack.DataFileName, "data blob file name")
	indexFlag := fs.String("index", pack.IndexFileName, "index file name")
	verbose := fs.Bool("v", false, "log lookups")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errUsage
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	logger, err := logging.New(os.Stderr, level)
	if err != nil {
		return err
	}
	store := pack.NewStore(*rootFlag,
		pack.DataFile(*dataFlag),
		pack.IndexFile(*indexFlag),
		pack.Logger(logger),
	)

	switch fs.Arg(0) {
	case "list":
		return list(store, stdout)
	case "get":
		if fs.NArg() < 2 {
			return errUsage
		}
		return get(store, fs.Args()[1:], stdout)
	case "report":
		report, err := pack.ReadReport(filepath.Join(*rootFlag, pack.ReportFileName))
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "build %s at %s: %d resources, content %s\n",
			report.BuildID, report.GeneratedAt.Format("2006-01-02 15:04:05"), report.TotalResources, report.ContentHash)
		return nil
	}
	return errUsage
}

func list(store *pack.Store, stdout io.Writer) error {
	recs, err := store.Records()
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tTYPE\tOFFSET\tLENGTH")
	for _, r := range recs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", r.Key, r.Type, r.Offset, r.Length)
	}
	return tw.Flush()
}

func get(store *pack.Store, keys []string, stdout io.Writer) error {
	if len(keys) == 1 {
		data, err := store.Load(keys[0])
		if err != nil {
			return err
		}
		_, err = stdout.Write(data)
		return err
	}

	cat, err := pack.OpenCatalog(store)
	if err != nil {
		return err
	}
	defer cat.Close()
	for _, key := range keys {
		data, err := cat.Load(key)
		if err != nil {
			return err
		}
		if _, err := stdout.Write(data); err != nil {
			return err
		}
	}
	return nil
}
