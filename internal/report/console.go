package report

import (
	"fmt"
	"io"

	"github.com/garyjia/post-review/internal/application/scenario"
)

// ConsoleWriter prints scenario results as plain text
type ConsoleWriter struct {
	w              io.Writer
	showUnfinished bool
}

// NewConsoleWriter creates a console writer. Posts that were not approved are
// only printed when showUnfinished is set.
func NewConsoleWriter(w io.Writer, showUnfinished bool) *ConsoleWriter {
	return &ConsoleWriter{w: w, showUnfinished: showUnfinished}
}

// Write prints every result. An approved post is printed as its history,
// its content, a "-- by <author>" line and a blank line.
func (c *ConsoleWriter) Write(results []scenario.Result) error {
	for _, r := range results {
		if err := c.writeResult(r); err != nil {
			return err
		}
	}
	return nil
}

func (c *ConsoleWriter) writeResult(r scenario.Result) error {
	approved, ok := r.Post.Approved()
	if !ok {
		if !c.showUnfinished {
			return nil
		}
		reason := "not approved"
		if r.Err != nil {
			reason = r.Err.Error()
		}
		_, err := fmt.Fprintf(c.w, "%s\n-- %s stopped in %s: %s\n\n", r.Post.History(), r.Name, r.Post.State(), reason)
		return err
	}

	_, err := fmt.Fprintf(c.w, "%s\n%s\n-- by %s\n\n", approved.History(), approved.Content(), approved.Author())
	return err
}
