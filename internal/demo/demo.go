// Package demo runs the foreground side of the shared counter: it starts a
// ticker, increments the same counter at its own pace until a threshold is
// observed, then joins the ticker.
package demo

import (
	"context"
	"fmt"
	"io"
	"time"

	"tickshare/internal/counter"
	"tickshare/internal/job"
	"tickshare/internal/logger"
	"tickshare/internal/sched"
)

// SourceMain is the source recorded on the shared counter for foreground increments.
const SourceMain = "main"

var log = logger.New("demo")

// Result summarizes one run.
type Result struct {
	Final       int                 // counter value after the ticker was joined
	TickerTicks int                 // increments made by the ticker
	MainTicks   int                 // increments made by the foreground loop
	Elapsed     time.Duration       // wall time from start to join
	History     []counter.Increment // every increment in commit order
}

// Run executes one demo with cfg, printing the count after every foreground
// increment to out. If ctx ends early the ticker is stopped and joined, and the
// partial result is returned together with ctx.Err().
func Run(ctx context.Context, cfg sched.Config, out io.Writer) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	shared := counter.New()
	ticker, err := sched.NewTicker(shared, cfg.MaxTicks, cfg.TickInterval())
	if err != nil {
		return nil, err
	}
	if err = ticker.Start(); err != nil {
		return nil, err
	}
	log.Debugf("ticker started: max_ticks=%d tick=%s", cfg.MaxTicks, cfg.TickInterval())

	// ctx ending at any point before Join returns cuts the ticker short.
	stopTicker := context.AfterFunc(ctx, ticker.Stop)

	err = loop(ctx, shared, cfg, out)
	if jerr := ticker.Join(); jerr != nil && err == nil {
		err = jerr
	}
	if !stopTicker() && err == nil {
		err = ctx.Err()
	}

	res := &Result{
		Final:       shared.Value(),
		TickerTicks: shared.Contributions(sched.SourceTicker),
		MainTicks:   shared.Contributions(SourceMain),
		Elapsed:     time.Since(start),
		History:     shared.History(),
	}
	if err != nil {
		log.Warningf("run interrupted: %s", err)
		return res, err
	}

	if cfg.TraceCSV != "" {
		if err = WriteTrace(cfg.TraceCSV, res.History); err != nil {
			return res, err
		}
		log.Debugf("trace written to %s", cfg.TraceCSV)
	}

	log.Infof("final count %d (ticker %d, main %d) in %s",
		res.Final, res.TickerTicks, res.MainTicks, res.Elapsed.Round(time.Millisecond))
	return res, nil
}

// loop increments until the observed value reaches the threshold.
func loop(ctx context.Context, shared *counter.Shared, cfg sched.Config, out io.Writer) error {
	for shared.Value() < cfg.Threshold {
		v := shared.Increment(SourceMain)
		fmt.Fprintf(out, "Main: Shared Count = %d\n", v)

		if err := job.Sleep(ctx, cfg.MainInterval()); err != nil {
			return err
		}
	}
	return nil
}
