// Package request provides a keyed async fetch unit and the hooks that bind
// it to components.
//
// A Unit runs one fetch per key on its own goroutine and tracks the outcome
// as a State: Loading, Success or Error. Every attempt carries a generation
// number and a cancellable context. Changing the key, refreshing or
// disposing the unit supersedes the attempt in flight, and a superseded
// attempt never commits, however late it returns:
//
//	unit := request.New(func(ctx context.Context, id int) (swapi.Planet, error) {
//	    return client.Planet(ctx, id)
//	}, request.WithDispatcher(owner))
//	defer unit.Dispose()
//
//	unsubscribe := unit.Subscribe(func(s request.State[swapi.Planet]) {
//	    fmt.Println(s.Status, s.Data.Name, s.Err)
//	})
//	defer unsubscribe()
//
//	unit.Request(1)
//	unit.Request(2) // the result for 1 is dropped
//
// Failures end the attempt. There are no retries; Refresh starts over.
package request
