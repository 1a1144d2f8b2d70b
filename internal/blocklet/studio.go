package blocklet

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"sync"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/raphi011/btm/internal/log"
)

var urlPattern = regexp.MustCompile(`https?://[^\s]+`)

// Studio is a running `blocklet dev studio` process.
type Studio struct {
	dir  string
	cmd  *exec.Cmd
	done chan struct{}
	err  error

	mu     sync.Mutex
	url    string
	urlCh  chan string
	urlSet bool
}

// StartStudio starts `blocklet dev studio` in dir and returns once the
// process is running. The process is not bound to ctx; ctx only supplies
// the logger. Output is forwarded to out (may be nil) and the first URL
// the tool prints is logged and exposed through URL.
func StartStudio(ctx context.Context, dir string, out io.Writer) (*Studio, error) {
	l := log.FromContext(ctx)

	c := exec.Command("blocklet", "dev", "studio")
	c.Dir = dir

	pr, pw := io.Pipe()
	c.Stdout = pw
	c.Stderr = pw

	done := l.Command(dir, "blocklet", "dev", "studio")
	start := time.Now()
	if err := c.Start(); err != nil {
		_ = pw.Close()
		_ = pr.Close()
		return nil, fmt.Errorf("start blocklet dev studio: %w", err)
	}

	s := &Studio{
		dir:   dir,
		cmd:   c,
		done:  make(chan struct{}),
		urlCh: make(chan string, 1),
	}

	go s.scan(pr, out, l)
	go func() {
		s.err = c.Wait()
		_ = pw.Close()
		done(time.Since(start))
		if s.err != nil {
			l.Warn("studio in %s exited: %v", dir, s.err)
		}
		close(s.done)
	}()

	return s, nil
}

func (s *Studio) scan(r io.Reader, out io.Writer, l *log.Logger) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if out != nil {
			fmt.Fprintln(out, line)
		}
		if u := urlPattern.FindString(ansi.Strip(line)); u != "" {
			s.setURL(u, l)
		}
	}
	// Drain so the child never blocks on a full pipe.
	_, _ = io.Copy(io.Discard, r)
	close(s.urlCh)
}

func (s *Studio) setURL(u string, l *log.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.urlSet {
		return
	}
	s.url = u
	s.urlSet = true
	s.urlCh <- u
	l.Printf("Studio for %s available at %s\n", s.dir, u)
}

// URL returns the first URL the studio printed, or "" if none yet.
func (s *Studio) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.url
}

// WaitURL blocks until the studio prints a URL, exits, or ctx ends.
func (s *Studio) WaitURL(ctx context.Context) (string, bool) {
	select {
	case u, ok := <-s.urlCh:
		return u, ok
	case <-ctx.Done():
		return "", false
	}
}

// Wait blocks until the studio process exits.
func (s *Studio) Wait() error {
	<-s.done
	return s.err
}

// Stop kills the studio process.
func (s *Studio) Stop() error {
	if s.cmd.Process == nil {
		return nil
	}
	return s.cmd.Process.Kill()
}

// PID returns the process id of the studio.
func (s *Studio) PID() int {
	if s.cmd.Process == nil {
		return 0
	}
	return s.cmd.Process.Pid
}
