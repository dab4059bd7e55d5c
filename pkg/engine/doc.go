// Package engine hosts a component tree and runs its frames.
//
// An App mounts the root widget under providers for its Clock and
// *slog.Logger, then runs frames on demand:
//
//	app := engine.New(demo.App{}, engine.WithLogger(logger))
//	defer app.Unmount()
//	err := app.Run(ctx, func(output string) {
//	    fmt.Print(output)
//	})
//
// Each frame drains callbacks dispatched from other goroutines, rebuilds
// dirty components in depth order and runs the effects they scheduled,
// repeating until nothing is pending. Effects that keep setting state
// would never settle; the frame stops after DefaultMaxUpdateDepth passes
// and reports an errors.KindUpdateDepth error.
package engine
