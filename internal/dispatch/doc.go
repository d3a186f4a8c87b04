// Package dispatch turns resolved chords into side effects.
//
// A Dispatcher resolves an input chord against the binding registry and
// hands the bound action to an Executor. The stock executor is a Router:
// spawn actions go to a Spawner that starts and tracks child processes,
// every other kind goes to a Host, the adapter to the window manager that
// owns groups, layouts and windows.
//
//	router := dispatch.NewRouter(spawner, dispatch.NewLogHost(log, nil))
//	d := dispatch.NewDispatcher(registry, router, dispatch.WithLogger(log))
//	handled, err := d.Handle(ctx, chord)
package dispatch
