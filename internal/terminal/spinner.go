package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"atomicgo.dev/cursor"
)

// StartSpinner starts a simple inline spinner animation on a single line:
// rotating frames followed by text, redrawn in place. The cursor is hidden
// while the spinner runs. The returned function stops the spinner, clears
// the line, and restores the cursor.
func StartSpinner(w io.Writer, text string) func() {
	frames := []string{"-", "\\", "|", "/"}
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)

	cursor.Hide()
	go func() {
		defer wg.Done()
		i := 0
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				// Clear the line to remove any spinner remnants
				fmt.Fprint(w, "\r")
				fmt.Fprint(w, strings.Repeat(" ", len(text)+2))
				fmt.Fprint(w, "\r")
				return
			case <-ticker.C:
				fmt.Fprintf(w, "\r%s %s", frames[i%len(frames)], text)
				i++
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			wg.Wait()
			cursor.Show()
		})
	}
}
