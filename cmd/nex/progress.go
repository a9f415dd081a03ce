package main

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// hashProgress shows a progress bar while duplicates are hashed. It stays
// silent when the writer is not a terminal.
type hashProgress struct {
	w       io.Writer
	enabled bool
	bar     *progressbar.ProgressBar
}

func newHashProgress(w io.Writer) *hashProgress {
	return &hashProgress{w: w, enabled: shouldColorize(w)}
}

func (p *hashProgress) update(done, total int) {
	if !p.enabled || total == 0 {
		return
	}
	if p.bar == nil {
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(p.w),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(15),
			progressbar.OptionSetDescription("Checking for duplicates..."),
			progressbar.OptionClearOnFinish(),
		)
	}
	_ = p.bar.Set(done)
}

func (p *hashProgress) finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
		p.bar = nil
	}
}
