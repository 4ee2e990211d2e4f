package queue_test

import (
	"context"
	"testing"

	"github.com/shiftsync/shiftsync/internal/adapters/mq/queue"
	"github.com/shiftsync/shiftsync/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func note(id string) queue.Notification {
	return model.Notification{ID: id, TalentID: "t-" + id, ShiftID: "s-1"}
}

func TestInMemoryQueue(t *testing.T) {
	ctx := context.Background()

	Convey("Given a queue with capacity 2", t, func() {
		q := queue.NewInMemoryQueue(queue.WithCapacity(2))

		Convey("Enqueue succeeds until the buffer fills", func() {
			So(q.Enqueue(ctx, note("1")), ShouldBeTrue)
			So(q.Enqueue(ctx, note("2")), ShouldBeTrue)
			So(q.Enqueue(ctx, note("3")), ShouldBeFalse)
			So(q.Len(ctx), ShouldEqual, 2)
		})

		Convey("Dequeue delivers in FIFO order", func() {
			q.Enqueue(ctx, note("a"))
			q.Enqueue(ctx, note("b"))
			ch := q.Dequeue(ctx)
			So((<-ch).ID, ShouldEqual, "a")
			So((<-ch).ID, ShouldEqual, "b")
		})

		Convey("Close stops enqueues and closes the channel", func() {
			q.Enqueue(ctx, note("x"))
			So(q.Close(), ShouldBeNil)
			So(q.IsClosed(), ShouldBeTrue)
			So(q.Enqueue(ctx, note("y")), ShouldBeFalse)

			ch := q.Dequeue(ctx)
			So((<-ch).ID, ShouldEqual, "x")
			_, open := <-ch
			So(open, ShouldBeFalse)

			Convey("Closing twice is safe", func() {
				So(q.Close(), ShouldBeNil)
			})
		})
	})
}
