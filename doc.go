// Package happylog is a small, concurrency-safe logging core where raising a
// domain error and recording it are the same act.
//
// Key features
//   - Named channels, created once per name by a Registry even under
//     concurrent first use, so re-instantiation never duplicates output
//   - Per-sink severity thresholds: an append-only file sink with a plain
//     timestamped format and a color-coded, column-aligned console sink
//   - Best-effort fan-out: a failing sink is reported but never stops the
//     remaining sinks and never aborts the program
//   - Signals: Notice and Warn log and return, Error logs with the caller's
//     location and hands back a *Failure to propagate
//
// Typical usage
//
//	svc := happylog.NewService(&happylog.Config{Dir: "logs", CreateDir: true})
//	if err := svc.Initialize(); err != nil { panic(err) }
//	defer svc.Close()
//
//	_ = svc.Info("application", "started", happylog.Fields{"pid": os.Getpid()})
//
//	sig := svc.Signals()
//	sig.Notice("cache warmed")
//	if err := save(); err != nil {
//		return sig.Error("save failed", happylog.WithCause(err))
//	}
package happylog
