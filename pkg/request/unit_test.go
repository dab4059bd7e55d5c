package request

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/go-drift/hookslab/pkg/core"
	"github.com/go-drift/hookslab/pkg/errors"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

var errNotFound = stderrors.New("not found")

type reportingHandler struct {
	reported chan *errors.HookError
	panics   chan *errors.PanicError
}

func (h *reportingHandler) HandleError(err *errors.HookError) { h.reported <- err }

func (h *reportingHandler) HandlePanic(err *errors.PanicError) {
	if h.panics != nil {
		h.panics <- err
	}
}

func (h *reportingHandler) HandleBuildError(*errors.BuildError) {}

var _ = Describe("Unit", func() {
	var (
		fetcher *gatedFetcher
		unit    *Unit[int, planet]
		rec     *recorder
	)

	nextCall := func() *call {
		var c *call
		Eventually(fetcher.calls).Should(Receive(&c))
		return c
	}

	Context("without a dispatcher", func() {
		BeforeEach(func() {
			fetcher = newGatedFetcher()
			unit = New(fetcher.fetch, WithLogger(quiet))
			rec = &recorder{}
			DeferCleanup(unit.Subscribe(rec.record))
			DeferCleanup(unit.Dispose)
		})

		It("starts Loading with no key", func() {
			Expect(unit.State()).To(Equal(State[planet]{Status: Loading}))
			_, ok := unit.Key()
			Expect(ok).To(BeFalse())
		})

		It("commits a success", func() {
			unit.Request(1)
			nextCall().succeed("Tatooine")

			Eventually(unit.State).Should(Equal(State[planet]{
				Status: Success,
				Data:   planet{Name: "Tatooine"},
			}))
			Expect(rec.all()).To(Equal([]State[planet]{
				{Status: Success, Data: planet{Name: "Tatooine"}},
			}))
		})

		It("commits a failure with zero data", func() {
			unit.Request(1)
			nextCall().fail(errNotFound)

			Eventually(unit.State).Should(HaveField("Status", Error))
			state := unit.State()
			Expect(state.Err).To(MatchError(errNotFound))
			Expect(state.Data).To(BeZero())
		})

		It("is Loading right after a key change", func() {
			unit.Request(1)
			nextCall().succeed("Tatooine")
			Eventually(unit.State).Should(HaveField("Status", Success))

			unit.Request(2)
			Expect(unit.State()).To(Equal(State[planet]{Status: Loading}))
			key, ok := unit.Key()
			Expect(ok).To(BeTrue())
			Expect(key).To(Equal(2))
		})

		It("only commits the last of several rapid key changes", func() {
			var calls []*call
			for key := 1; key <= 5; key++ {
				unit.Request(key)
				calls = append(calls, nextCall())
			}

			for _, c := range calls[:4] {
				Expect(c.ctx.Err()).To(MatchError(context.Canceled))
			}
			Expect(calls[4].ctx.Err()).NotTo(HaveOccurred())

			for i := len(calls) - 1; i >= 0; i-- {
				calls[i].succeed(planetName(calls[i].key))
			}

			Eventually(unit.State).Should(HaveField("Data.Name", "planet-5"))
			Consistently(rec.all, 50*time.Millisecond).Should(Equal([]State[planet]{
				{Status: Success, Data: planet{Name: "planet-5"}},
			}))
		})

		It("discards results that arrive after teardown", func() {
			unit.Request(1)
			c := nextCall()

			unit.Dispose()
			Expect(c.ctx.Err()).To(MatchError(context.Canceled))
			c.succeed("Tatooine")

			Consistently(unit.State, 50*time.Millisecond).Should(Equal(State[planet]{Status: Loading}))
			Expect(rec.all()).To(BeEmpty())
		})

		It("ignores Request and Refresh after Dispose", func() {
			unit.Dispose()
			unit.Dispose()
			unit.Request(1)
			unit.Refresh()

			Consistently(fetcher.calls, 50*time.Millisecond).ShouldNot(Receive())
			Expect(unit.Disposed()).To(BeTrue())
		})

		It("treats a repeated key as a no-op", func() {
			unit.Request(1)
			nextCall().succeed("Tatooine")
			Eventually(unit.State).Should(HaveField("Status", Success))

			unit.Request(1)
			Consistently(fetcher.calls, 50*time.Millisecond).ShouldNot(Receive())
			Expect(unit.State().Status).To(Equal(Success))
		})

		It("re-enters Loading on Refresh of a successful key", func() {
			unit.Request(1)
			nextCall().succeed("Tatooine")
			Eventually(unit.State).Should(HaveField("Status", Success))

			unit.Refresh()
			Expect(unit.State()).To(Equal(State[planet]{Status: Loading}))
			c := nextCall()
			Expect(c.key).To(Equal(1))
			c.succeed("Tatooine")

			Eventually(rec.statuses).Should(Equal([]Status{Success, Loading, Success}))
		})

		It("re-fetches a key visited before", func() {
			unit.Request(1)
			nextCall().succeed("Tatooine")
			Eventually(unit.State).Should(HaveField("Status", Success))

			unit.Request(2)
			nextCall().succeed("Alderaan")
			Eventually(unit.State).Should(HaveField("Data.Name", "Alderaan"))

			unit.Request(1)
			Expect(unit.State()).To(Equal(State[planet]{Status: Loading}))
			c := nextCall()
			Expect(c.key).To(Equal(1))
			c.succeed("Tatooine")

			Eventually(unit.State).Should(HaveField("Data.Name", "Tatooine"))
			Expect(rec.statuses()).To(Equal([]Status{Success, Loading, Success, Loading, Success}))
		})

		It("delivers a key change after a commit that is still being delivered", func() {
			stalling := newStallingListener()
			DeferCleanup(stalling.unblock)
			unit.Subscribe(stalling.record)

			unit.Request(1)
			nextCall().succeed("Tatooine")
			Eventually(stalling.stalled).Should(Receive())

			requested := make(chan struct{})
			go func() {
				defer GinkgoRecover()
				unit.Request(2)
				close(requested)
			}()
			Consistently(requested, 50*time.Millisecond).ShouldNot(BeClosed())

			stalling.unblock()
			Eventually(requested).Should(BeClosed())
			nextCall().succeed("Alderaan")
			Eventually(unit.State).Should(HaveField("Data.Name", "Alderaan"))

			states := rec.all()
			Expect(states[len(states)-1]).To(Equal(unit.State()))
			Expect(rec.statuses()).To(Equal([]Status{Success, Loading, Success}))
			Expect(rec.all()[0].Data.Name).To(Equal("Tatooine"))
		})

		It("notifies nobody once Dispose has returned", func() {
			stalling := newStallingListener()
			DeferCleanup(stalling.unblock)
			unit.Subscribe(stalling.record)

			unit.Request(1)
			nextCall().succeed("Tatooine")
			Eventually(stalling.stalled).Should(Receive())

			disposed := make(chan struct{})
			go func() {
				defer GinkgoRecover()
				unit.Dispose()
				close(disposed)
			}()
			Consistently(disposed, 50*time.Millisecond).ShouldNot(BeClosed())

			stalling.unblock()
			Eventually(disposed).Should(BeClosed())
			calls := stalling.calls.Load()
			delivered := len(rec.all())

			unit.Request(2)
			Consistently(func() int32 { return stalling.calls.Load() }, 50*time.Millisecond).Should(Equal(calls))
			Expect(rec.all()).To(HaveLen(delivered))
			Expect(unit.Disposed()).To(BeTrue())
		})

		It("does nothing on Refresh without a key", func() {
			unit.Refresh()
			Consistently(fetcher.calls, 50*time.Millisecond).ShouldNot(Receive())
		})

		It("stops notifying after unsubscribe", func() {
			other := &recorder{}
			unsubscribe := unit.Subscribe(other.record)
			unsubscribe()
			unsubscribe()

			unit.Request(1)
			nextCall().succeed("Tatooine")
			Eventually(rec.all).Should(HaveLen(1))
			Expect(other.all()).To(BeEmpty())
		})

		It("uses the latest fetcher for new attempts", func() {
			unit.SetFetcher(func(ctx context.Context, key int) (planet, error) {
				return planet{Name: "replaced"}, nil
			})
			unit.Request(3)
			Eventually(unit.State).Should(HaveField("Data.Name", "replaced"))
		})
	})

	Context("with a panicking fetcher", func() {
		It("commits an error and reports it", func() {
			handler := &reportingHandler{reported: make(chan *errors.HookError, 1)}
			errors.SetHandler(handler)
			DeferCleanup(func() { errors.SetHandler(nil) })

			unit := New(func(ctx context.Context, key int) (planet, error) {
				panic("boom")
			}, WithLogger(quiet))
			DeferCleanup(unit.Dispose)

			unit.Request(1)
			Eventually(unit.State).Should(HaveField("Status", Error))
			Expect(unit.State().Err).To(MatchError(ContainSubstring("boom")))

			var reported *errors.HookError
			Eventually(handler.reported).Should(Receive(&reported))
			Expect(reported.Kind).To(Equal(errors.KindRequest))
		})
	})

	Context("with a panicking listener", func() {
		It("reports the panic and keeps the committed state", func() {
			handler := &reportingHandler{panics: make(chan *errors.PanicError, 1)}
			errors.SetHandler(handler)
			DeferCleanup(func() { errors.SetHandler(nil) })

			fetcher = newGatedFetcher()
			unit := New(fetcher.fetch, WithLogger(quiet))
			DeferCleanup(unit.Dispose)
			unit.Subscribe(func(State[planet]) { panic("listener broke") })

			unit.Request(1)
			nextCall().succeed("Tatooine")

			var p *errors.PanicError
			Eventually(handler.panics).Should(Receive(&p))
			Expect(p.Op).To(Equal("request.deliver"))
			Expect(unit.State().Data.Name).To(Equal("Tatooine"))

			unit.Dispose()
			Expect(unit.Disposed()).To(BeTrue())
		})
	})

	Context("with a parent context", func() {
		It("cancels attempts when the parent is cancelled", func() {
			fetcher = newGatedFetcher()
			parent, cancel := context.WithCancel(context.Background())
			unit := New(fetcher.fetch, WithLogger(quiet), WithContext(parent))
			DeferCleanup(unit.Dispose)

			unit.Request(1)
			c := nextCall()
			cancel()
			Expect(c.ctx.Err()).To(MatchError(context.Canceled))

			c.fail(c.ctx.Err())
			Eventually(unit.State).Should(HaveField("Status", Error))
		})
	})

	Context("with a dispatcher", func() {
		var owner *core.BuildOwner

		BeforeEach(func() {
			fetcher = newGatedFetcher()
			owner = core.NewBuildOwner()
			unit = New(fetcher.fetch, WithLogger(quiet), WithDispatcher(owner))
			rec = &recorder{}
			DeferCleanup(unit.Subscribe(rec.record))
			DeferCleanup(unit.Dispose)
		})

		It("commits only when the dispatched callback runs", func() {
			unit.Request(1)
			nextCall().succeed("Tatooine")

			Eventually(owner.PendingDispatches).Should(Equal(1))
			Expect(unit.State().Status).To(Equal(Loading))

			Expect(owner.RunDispatched()).To(Equal(1))
			Expect(unit.State().Data.Name).To(Equal("Tatooine"))
			Expect(rec.statuses()).To(Equal([]Status{Success}))
		})

		It("re-checks staleness when the dispatched commit runs", func() {
			unit.Request(1)
			nextCall().succeed("Tatooine")
			Eventually(owner.PendingDispatches).Should(Equal(1))

			unit.Request(2)
			owner.RunDispatched()

			Expect(unit.State()).To(Equal(State[planet]{Status: Loading}))
			Expect(rec.all()).To(BeEmpty())
		})

		It("drops a dispatched commit after Dispose", func() {
			unit.Request(1)
			nextCall().succeed("Tatooine")
			Eventually(owner.PendingDispatches).Should(Equal(1))

			unit.Dispose()
			owner.RunDispatched()

			Expect(unit.State().Status).To(Equal(Loading))
			Expect(rec.all()).To(BeEmpty())
		})
	})
})

var _ = Describe("Status", func() {
	DescribeTable("String",
		func(s Status, want string) {
			Expect(s.String()).To(Equal(want))
		},
		Entry("loading", Loading, "loading"),
		Entry("success", Success, "success"),
		Entry("error", Error, "error"),
		Entry("unknown", Status(9), "Status(9)"),
	)
})

func planetName(key int) string {
	return "planet-" + string(rune('0'+key))
}
