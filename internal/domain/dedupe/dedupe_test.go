package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shiftsync/shiftsync/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryKeyStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given a fresh key store", t, func() {
		s := dedupe.NewInMemoryKeyStore()

		Convey("The first put records the value", func() {
			v, seen := s.PutIfAbsent(ctx, "k1", "result-1")
			So(seen, ShouldBeFalse)
			So(v, ShouldEqual, "result-1")
			So(s.Size(), ShouldEqual, 1)
		})

		Convey("A repeated key replays the original value", func() {
			s.PutIfAbsent(ctx, "k1", "result-1")
			v, seen := s.PutIfAbsent(ctx, "k1", "result-2")
			So(seen, ShouldBeTrue)
			So(v, ShouldEqual, "result-1")
			So(s.Size(), ShouldEqual, 1)
		})

		Convey("Forget allows the key to be recorded again", func() {
			s.PutIfAbsent(ctx, "k1", "result-1")
			s.Forget(ctx, "k1")
			So(s.Size(), ShouldEqual, 0)
			_, seen := s.PutIfAbsent(ctx, "k1", "result-3")
			So(seen, ShouldBeFalse)
		})

		Convey("Forgetting an unknown key is a no-op", func() {
			s.Forget(ctx, "missing")
			So(s.Size(), ShouldEqual, 0)
		})
	})

	Convey("Given a bounded key store", t, func() {
		s := dedupe.NewInMemoryKeyStore(dedupe.WithMaxSize(3))

		Convey("Size never exceeds the bound", func() {
			for i := 0; i < 10; i++ {
				s.PutIfAbsent(ctx, fmt.Sprintf("k%d", i), i)
			}
			So(s.Size(), ShouldEqual, 3)
		})

		Convey("The newest key survives eviction", func() {
			for i := 0; i < 10; i++ {
				s.PutIfAbsent(ctx, fmt.Sprintf("k%d", i), i)
			}
			v, seen := s.PutIfAbsent(ctx, "k9", "replaced?")
			So(seen, ShouldBeTrue)
			So(v, ShouldEqual, 9)
		})
	})

	Convey("Given concurrent writers", t, func() {
		s := dedupe.NewInMemoryKeyStore(dedupe.WithMaxSize(1000))

		Convey("Only one writer per key records a value", func() {
			const workers = 16
			var firsts sync.Map
			var wg sync.WaitGroup
			wg.Add(workers)
			for w := 0; w < workers; w++ {
				go func(w int) {
					defer wg.Done()
					_, seen := s.PutIfAbsent(ctx, "shared", w)
					if !seen {
						firsts.Store(w, true)
					}
				}(w)
			}
			wg.Wait()

			count := 0
			firsts.Range(func(_, _ any) bool {
				count++
				return true
			})
			So(count, ShouldEqual, 1)
			So(s.Size(), ShouldEqual, 1)
		})
	})
}
