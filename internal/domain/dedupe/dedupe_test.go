package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/careersim/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	Convey("Given a new InMemoryDeduper", t, func() {
		ctx := context.Background()

		Convey("When creating a deduper with default options", func() {
			d := dedupe.NewInMemoryDeduper()

			Convey("Then it should be empty", func() {
				So(d, ShouldNotBeNil)
				So(d.Size(), ShouldEqual, 0)
			})
		})

		Convey("When a key is recorded twice", func() {
			d := dedupe.NewInMemoryDeduper()
			key := dedupe.Key("training", "athlete-1", 3)

			first := d.SeenAndRecord(ctx, key)
			second := d.SeenAndRecord(ctx, key)

			Convey("Then only the first call claims it", func() {
				So(first, ShouldBeFalse)
				So(second, ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When the same athlete moves to the next season", func() {
			d := dedupe.NewInMemoryDeduper()
			d.SeenAndRecord(ctx, dedupe.Key("season", "athlete-1", 1))

			Convey("Then the new season key is fresh", func() {
				So(d.SeenAndRecord(ctx, dedupe.Key("season", "athlete-1", 2)), ShouldBeFalse)
				So(d.Size(), ShouldEqual, 2)
			})
		})

		Convey("When a key is unrecorded", func() {
			d := dedupe.NewInMemoryDeduper()
			d.SeenAndRecord(ctx, "k")
			d.Unrecord(ctx, "k")
			d.Unrecord(ctx, "missing")

			Convey("Then it can be claimed again", func() {
				So(d.Size(), ShouldEqual, 0)
				So(d.SeenAndRecord(ctx, "k"), ShouldBeFalse)
			})
		})

		Convey("When bounded to two keys", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(2))
			d.SeenAndRecord(ctx, "a")
			d.SeenAndRecord(ctx, "b")
			d.SeenAndRecord(ctx, "c")

			Convey("Then the oldest key is evicted", func() {
				So(d.Size(), ShouldEqual, 2)
				So(d.SeenAndRecord(ctx, "c"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "a"), ShouldBeFalse)
			})
		})

		Convey("When an unrecorded slot is reused", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(2))
			d.SeenAndRecord(ctx, "a")
			d.Unrecord(ctx, "a")
			d.SeenAndRecord(ctx, "b")
			d.SeenAndRecord(ctx, "a")

			Convey("Then live keys are kept", func() {
				So(d.Size(), ShouldEqual, 2)
				So(d.SeenAndRecord(ctx, "b"), ShouldBeTrue)
			})
		})

		Convey("When unbounded", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(-1))
			for i := 0; i < 1000; i++ {
				So(d.SeenAndRecord(ctx, fmt.Sprintf("k-%d", i)), ShouldBeFalse)
			}

			Convey("Then nothing is evicted", func() {
				So(d.Size(), ShouldEqual, 1000)
			})
		})

		Convey("When many goroutines race for one key", func() {
			d := dedupe.NewInMemoryDeduper()
			var (
				wg      sync.WaitGroup
				mu      sync.Mutex
				winners int
			)
			for i := 0; i < 50; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if !d.SeenAndRecord(ctx, "season:x:1") {
						mu.Lock()
						winners++
						mu.Unlock()
					}
				}()
			}
			wg.Wait()

			Convey("Then exactly one claims it", func() {
				So(winners, ShouldEqual, 1)
			})
		})
	})
}

func TestKey(t *testing.T) {
	Convey("Key joins action, athlete and season", t, func() {
		So(dedupe.Key("training", "abc", 7), ShouldEqual, "training:abc:7")
	})
}
