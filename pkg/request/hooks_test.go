package request

import (
	"context"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/go-drift/hookslab/pkg/core"
	hooktest "github.com/go-drift/hookslab/pkg/testing"
	"github.com/go-drift/hookslab/pkg/widgets"
)

func describeState(s State[planet]) core.Widget {
	switch s.Status {
	case Error:
		return widgets.Text{Content: "Something is wrong"}
	case Loading:
		return widgets.Text{Content: "loading..."}
	default:
		return widgets.Text{Content: "Planet Name: " + s.Data.Name}
	}
}

// planetPage renders a "+" button and the request state for the current id.
func planetPage(useState func(c *core.BuildContext, id int) State[planet]) core.Widget {
	return core.Func("PlanetPage", func(c *core.BuildContext) core.Widget {
		id := core.UseState(c, 1)
		return widgets.ColumnOf(
			widgets.ButtonOf("+", func() { id.Update(func(n int) int { return n + 1 }) }),
			describeState(useState(c, id.Value())),
		)
	})
}

var _ = Describe("Hooks", func() {
	var (
		fetcher *gatedFetcher
		tester  *hooktest.WidgetTester
	)

	nextCall := func() *call {
		var c *call
		Eventually(fetcher.calls).Should(Receive(&c))
		return c
	}

	showsText := func(text string) func() bool {
		return func() bool { return tester.FindText(text) }
	}

	BeforeEach(func() {
		fetcher = newGatedFetcher()
		tester = hooktest.NewWidgetTester()
		DeferCleanup(tester.Cleanup)
	})

	Describe("Use", func() {
		BeforeEach(func() {
			Expect(tester.PumpWidget(planetPage(func(c *core.BuildContext, id int) State[planet] {
				return Use(c, id, fetcher.fetch)
			}))).To(Succeed())
		})

		It("shows loading, then the fetched planet", func() {
			Expect(tester.FindText("loading...")).To(BeTrue())

			nextCall().succeed("Tatooine")
			Expect(tester.PumpUntil(showsText("Planet Name: Tatooine"), time.Second)).To(Succeed())
		})

		It("shows the failure branch", func() {
			nextCall().fail(errNotFound)
			Expect(tester.PumpUntil(showsText("Something is wrong"), time.Second)).To(Succeed())
		})

		It("refetches when the key changes", func() {
			nextCall().succeed("Tatooine")
			Expect(tester.PumpUntil(showsText("Planet Name: Tatooine"), time.Second)).To(Succeed())

			Expect(tester.Tap("+")).To(Succeed())
			Expect(tester.FindText("loading...")).To(BeTrue())

			c := nextCall()
			Expect(c.key).To(Equal(2))
			c.succeed("Alderaan")
			Expect(tester.PumpUntil(showsText("Planet Name: Alderaan"), time.Second)).To(Succeed())
		})

		It("never shows a superseded result", func() {
			first := nextCall()
			Expect(tester.Tap("+")).To(Succeed())
			second := nextCall()

			first.succeed("Tatooine")
			Consistently(func() bool {
				Expect(tester.Pump()).To(Succeed())
				return tester.FindText("loading...")
			}, 50*time.Millisecond).Should(BeTrue())

			second.succeed("Alderaan")
			Expect(tester.PumpUntil(showsText("Planet Name: Alderaan"), time.Second)).To(Succeed())
		})

		It("cancels the in-flight attempt on unmount", func() {
			c := nextCall()
			tester.Unmount()

			Expect(c.ctx.Err()).To(MatchError(context.Canceled))
			c.succeed("Tatooine")
			Consistently(tester.App().Owner().PendingDispatches, 50*time.Millisecond).Should(BeZero())
		})
	})

	Describe("UseRequest", func() {
		var renders int

		BeforeEach(func() {
			renders = 0
			Expect(tester.PumpWidget(planetPage(func(c *core.BuildContext, id int) State[planet] {
				renders++
				cb := core.UseCallback(c, func(ctx context.Context) (planet, error) {
					return fetcher.fetch(ctx, id)
				}, core.Deps(id))
				return UseRequest(c, cb)
			}))).To(Succeed())
		})

		It("fetches once per memoized handle", func() {
			c := nextCall()
			Expect(c.key).To(Equal(1))
			c.succeed("Tatooine")
			Expect(tester.PumpUntil(showsText("Planet Name: Tatooine"), time.Second)).To(Succeed())

			Consistently(fetcher.calls, 50*time.Millisecond).ShouldNot(Receive())
			Expect(renders).To(BeNumerically("<=", 3))
		})

		It("fetches again when the handle's deps change", func() {
			nextCall().succeed("Tatooine")
			Expect(tester.PumpUntil(showsText("Planet Name: Tatooine"), time.Second)).To(Succeed())

			Expect(tester.Tap("+")).To(Succeed())
			c := nextCall()
			Expect(c.key).To(Equal(2))
			c.succeed("Alderaan")
			Expect(tester.PumpUntil(showsText("Planet Name: Alderaan"), time.Second)).To(Succeed())
		})
	})

	Describe("UseRequest with a nil handle", func() {
		It("commits ErrNoCallback", func() {
			Expect(tester.PumpWidget(core.Func("Nil", func(c *core.BuildContext) core.Widget {
				s := UseRequest[planet](c, nil)
				if s.IsError() {
					return widgets.Text{Content: fmt.Sprint(s.Err)}
				}
				return widgets.Text{Content: s.Status.String()}
			}))).To(Succeed())

			Expect(tester.PumpUntil(showsText(ErrNoCallback.Error()), time.Second)).To(Succeed())
		})
	})
})
