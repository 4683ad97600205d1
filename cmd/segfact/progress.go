package main

import (
	"fmt"
	"io"

	"github.com/gosuri/uiprogress"

	"github.com/revelaction/segfact/storage"
)

// newProgress starts a progress rendering on w with one bar of total steps.
// The caller must Stop the progress.
func newProgress(w io.Writer, total int) (*uiprogress.Progress, *uiprogress.Bar) {
	p := uiprogress.New()
	p.SetOut(w)
	p.Start()
	bar := p.AddBar(total)
	bar.AppendCompleted()
	bar.PrependElapsed()
	return p, bar
}

func preload(pl storage.Preloader, ui UI) error {
	var (
		p   *uiprogress.Progress
		bar *uiprogress.Bar
	)
	err := pl.Preload(func(current, total int, name string) {
		if bar == nil {
			p, bar = newProgress(ui.Err, total)
		}
		_ = bar.Set(current)
	})
	if p != nil {
		p.Stop()
	}
	if err != nil {
		return fmt.Errorf("failed to load docs: %w", err)
	}
	return nil
}
