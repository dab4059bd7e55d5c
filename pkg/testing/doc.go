// Package testing provides a widget testing framework for hookslab.
//
// # Quick Start
//
// Create a tester, pump a widget, and make assertions:
//
//	func TestMyWidget(t *testing.T) {
//	    tester := hooktest.NewWidgetTesterWithT(t)
//	    tester.PumpWidget(MyWidget())
//
//	    // Find elements
//	    label := tester.Find(hooktest.ByText("count: 0")).First()
//
//	    // Tap buttons by label; Tap pumps a frame afterwards
//	    tester.Tap("+")
//
//	    if !tester.FindText("count: 1") {
//	        t.Error("expected 'count: 1' text")
//	    }
//	}
//
// # Time
//
// The tree gets a FakeClock through engine.ClockContext. Timers fire only
// when the test advances it:
//
//	tester.Clock().Advance(4 * time.Second)
//	tester.Pump()
//
// # Background Work
//
// Work that finishes on another goroutine reaches the tree through
// dispatch. PumpUntil waits for it in real time:
//
//	err := tester.PumpUntil(func() bool {
//	    return tester.FindText("Planet Name: Tatooine")
//	}, time.Second)
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import hooktest "github.com/go-drift/hookslab/pkg/testing"
package testing
