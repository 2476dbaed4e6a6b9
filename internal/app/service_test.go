package service_test

import (
	"context"
	"testing"
	"time"

	service "github.com/okian/outreach/internal/app"
	"github.com/okian/outreach/internal/domain/model"
	"github.com/okian/outreach/internal/domain/scoring"
	"github.com/okian/outreach/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, false)
			So(stats["modelPathConfigured"], ShouldEqual, false)
			So(stats["batchConcurrency"], ShouldEqual, 0)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithLogger(logger.Get()),
			service.WithModelPath("/models/outreach.bin"),
			service.WithBatchConcurrency(4),
			service.WithRandomSeed(42),
		)

		Convey("Then the options are reflected in stats", func() {
			stats := svc.GetStats()
			So(stats["modelPathConfigured"], ShouldEqual, true)
			So(stats["batchConcurrency"], ShouldEqual, 4)
		})
	})

	Convey("Given a negative batch concurrency", t, func() {
		svc := service.New(service.WithBatchConcurrency(-1))

		Convey("Then it is ignored", func() {
			So(svc.GetStats()["batchConcurrency"], ShouldEqual, 0)
		})
	})
}

func TestService_Start(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New()
		// Ensure service is stopped after test
		defer svc.Stop()

		Convey("When starting the service", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			err := svc.Start(ctx)

			Convey("Then it should start successfully", func() {
				So(err, ShouldBeNil)
			})

			Convey("And it should be marked as started", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
			})

			Convey("And starting again is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
				So(svc.GetStats()["started"], ShouldEqual, true)
			})
		})
	})
}

func TestService_Stop(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := svc.Start(ctx)
		So(err, ShouldBeNil)

		Convey("When stopping the service", func() {
			svc.Stop()

			Convey("Then it should be marked as stopped", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, false)
			})

			Convey("And stopping twice is safe", func() {
				So(func() { svc.Stop() }, ShouldNotPanic)
			})
		})
	})
}

func TestService_Operations(t *testing.T) {
	ctx := context.Background()
	content := model.ContentItem{
		ID:      "c-1",
		Title:   "Launch of our AI service",
		Summary: "An AI service that accelerates DX",
	}

	Convey("Given a service with a fixed random term", t, func() {
		svc := service.New(service.WithRandomSource(scoring.FixedSource(0)))

		Convey("When suggesting tags", func() {
			tags := svc.SuggestTags(ctx, content)

			Convey("Then the catalog rules fire", func() {
				So(tags, ShouldHaveLength, 2)
				So(tags[0].Name, ShouldEqual, "AI/ML")
				So(tags[1].Name, ShouldEqual, "DX (Digital Transformation)")
			})
		})

		Convey("When scoring a recipient", func() {
			res := svc.ScoreMatch(ctx, model.RecipientProfile{ID: "r-1", Company: "AI desk"}, content)

			Convey("Then the score is deterministic and counted", func() {
				So(res.Score, ShouldEqual, 75.0)
				So(svc.GetStats()["matchesScored"], ShouldEqual, int64(1))
			})
		})

		Convey("When drafting a message", func() {
			msg := svc.DraftMessage(ctx, model.RecipientProfile{Name: "Taro", Company: "Example Newspaper Co."}, content, 90)

			Convey("Then the draft is urgent and counted", func() {
				So(msg.Tone, ShouldEqual, model.ToneUrgent)
				So(svc.GetStats()["draftsGenerated"], ShouldEqual, int64(1))
			})
		})
	})
}
