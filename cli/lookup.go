package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"git.thinkinpower.net/bindb/file"
	"git.thinkinpower.net/bindb/mod"
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const prompt = "Enter BIN (or 'exit'): "

func lookupSingle(opts *LookupOptions, out io.Writer) error {
	record, err := opts.DB.Search(opts.Bin)
	if err != nil {
		return err
	}
	if !opts.printRecords() {
		return nil
	}
	return opts.formatter().Write(out, record)
}

type batchResult struct {
	bin    string
	record mod.Record
	err    error
}

// lookupBatch searches every line of opts.File concurrently and prints the
// results in input order. Lookup failures, overlong lines included, are
// reported per line on errOut.
func lookupBatch(ctx context.Context, opts *LookupOptions, out, errOut io.Writer) error {
	var (
		f   *os.File
		err error
	)
	if f, err = os.Open(opts.File); err != nil {
		return errors.Wrap(err, "cannot open input file")
	}
	defer f.Close()

	var bins []string
	reader := bufio.NewReader(f)
	for {
		line, err := file.ReadLine(reader)
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrapf(err, "read input file %s", opts.File)
		}
		bins = append(bins, line)
	}

	results := make([]batchResult, len(bins))
	g, ctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}
	for i, bin := range bins {
		i, bin := i, bin
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			record, err := opts.DB.Search(bin)
			results[i] = batchResult{bin: bin, record: record, err: err}
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return err
	}

	formatter := opts.formatter()
	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
			fmt.Fprintf(errOut, "Error for %s: %s\n", r.bin, r.err)
			continue
		}
		if !opts.printRecords() {
			continue
		}
		if err = formatter.Write(out, r.record); err != nil {
			return errors.Wrap(err, "write output")
		}
	}
	logger.Debugf("batch lookup done, total: %d, failed: %d", len(results), failed)
	return nil
}

// lookupInteractive prompts on promptOut and reads one BIN per line from in
// until "exit" or end of input. Input lines have no length limit.
func lookupInteractive(opts *LookupOptions, in io.Reader, promptOut, out, errOut io.Writer) error {
	formatter := opts.formatter()
	reader := bufio.NewReader(in)
	for {
		fmt.Fprint(promptOut, prompt)
		input, err := file.ReadLine(reader)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "read input")
		}
		if input == "exit" {
			return nil
		}
		record, err := opts.DB.Search(input)
		if err != nil {
			fmt.Fprintf(errOut, "Error: %s\n", err)
			continue
		}
		if err = formatter.Write(out, record); err != nil {
			return errors.Wrap(err, "write output")
		}
	}
}
