package fbdecode

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// DefaultWorkers is the number of dumps converted concurrently by Scan.
const DefaultWorkers = 10

func (c *Converter) findDumps(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal file
			if !info.Mode().IsRegular() || !isDump(file) {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (c *Converter) convertWorker(ctx context.Context, in <-chan string, base, dir string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			select {
			case <-ctx.Done():
				return
			default:
			}

			rel, err := filepath.Rel(base, file)
			if err != nil {
				errc <- err
				return
			}

			out := filepath.Join(dir, OutputName(rel, c.format))
			if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
				errc <- err
				return
			}

			if err := c.ConvertFile(file, out); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

// waitForPipeline returns the first error from errs. The first error cancels
// the pipeline and every channel is drained before returning, so no stage is
// still running once it returns.
func waitForPipeline(cancel context.CancelFunc, errs ...<-chan error) error {
	var first error
	for err := range mergeErrors(errs...) {
		if err != nil && first == nil {
			first = err
			cancel()
		}
	}
	return first
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks the directory in looking for dumps, converting each one into the
// directory out using workers concurrent conversions. The directory structure
// under in is recreated under out. Hidden files and directories are skipped.
func (c *Converter) Scan(in, out string, workers int) error {
	base, err := filepath.Abs(in)
	if err != nil {
		return err
	}

	dir, err := filepath.Abs(out)
	if err != nil {
		return err
	}

	if workers < 1 {
		workers = DefaultWorkers
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := c.findDumps(ctx, base)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < workers; i++ {
		errc, err := c.convertWorker(ctx, files, base, dir)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(cancelFunc, errcList...)
}
