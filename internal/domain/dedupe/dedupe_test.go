package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/telerisk/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	Convey("Given a new in-memory deduper", t, func() {
		ctx := context.Background()

		Convey("When recording a project for the first time", func() {
			d := dedupe.NewInMemoryDeduper()
			seen := d.SeenAndRecord(ctx, dedupe.Key("batch-1", "P-1"))

			Convey("Then it is reported as new", func() {
				So(seen, ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When the same project repeats in a batch", func() {
			d := dedupe.NewInMemoryDeduper()
			d.SeenAndRecord(ctx, dedupe.Key("batch-1", "P-1"))

			Convey("Then the repeat is reported as seen", func() {
				So(d.SeenAndRecord(ctx, dedupe.Key("batch-1", "P-1")), ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})

			Convey("Then another batch may use the same project id", func() {
				So(d.SeenAndRecord(ctx, dedupe.Key("batch-2", "P-1")), ShouldBeFalse)
			})
		})

		Convey("When a key is forgotten", func() {
			d := dedupe.NewInMemoryDeduper()
			key := dedupe.Key("batch-1", "P-1")
			d.SeenAndRecord(ctx, key)
			d.Forget(ctx, key)
			d.Forget(ctx, "never-recorded")

			Convey("Then it can be recorded again", func() {
				So(d.Size(), ShouldEqual, 0)
				So(d.SeenAndRecord(ctx, key), ShouldBeFalse)
			})
		})

		Convey("When the bounded deduper is full", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(2))
			d.SeenAndRecord(ctx, "a")
			d.SeenAndRecord(ctx, "b")
			d.SeenAndRecord(ctx, "c")

			Convey("Then the oldest key is evicted", func() {
				So(d.Size(), ShouldEqual, 2)
				So(d.SeenAndRecord(ctx, "b"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "c"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "a"), ShouldBeFalse)
			})
		})

		Convey("When the deduper is unbounded", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))
			for i := 0; i < 50; i++ {
				d.SeenAndRecord(ctx, fmt.Sprintf("k-%d", i))
			}
			So(d.Size(), ShouldEqual, 50)
		})

		Convey("When many goroutines record the same key", func() {
			d := dedupe.NewInMemoryDeduper()
			var wg sync.WaitGroup
			var mu sync.Mutex
			fresh := 0
			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if !d.SeenAndRecord(ctx, "shared") {
						mu.Lock()
						fresh++
						mu.Unlock()
					}
				}()
			}
			wg.Wait()

			Convey("Then exactly one records it", func() {
				So(fresh, ShouldEqual, 1)
			})
		})
	})
}
