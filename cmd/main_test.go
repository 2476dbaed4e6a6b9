package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	app "github.com/okian/outreach/internal/app"
	"github.com/okian/outreach/internal/config"
	"github.com/okian/outreach/internal/domain/scoring"
	"github.com/okian/outreach/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			// Test with environment variables
			_ = os.Setenv("OUTREACH_ADDR", ":8080")
			_ = os.Setenv("OUTREACH_MAX_RECIPIENTS", "5")
			defer func() {
				_ = os.Unsetenv("OUTREACH_ADDR")
				_ = os.Unsetenv("OUTREACH_MAX_RECIPIENTS")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.MaxRecipients, convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When building the HTTP handler", func() {
			ctx := context.Background()
			cfg := config.New()
			cfg.MaxRecipients = 1
			svc := app.New(app.WithRandomSource(scoring.FixedSource(0)))
			h := newHandler(ctx, cfg, svc, logger.Nop())

			serve := func(method, path, body string) *httptest.ResponseRecorder {
				req := httptest.NewRequest(method, path, strings.NewReader(body))
				w := httptest.NewRecorder()
				h.ServeHTTP(w, req)
				return w
			}

			convey.Convey("Then every route is reachable", func() {
				convey.So(serve("GET", "/healthz", "").Code, convey.ShouldEqual, http.StatusOK)
				convey.So(serve("GET", "/stats", "").Code, convey.ShouldEqual, http.StatusOK)
				convey.So(serve("GET", "/metrics", "").Code, convey.ShouldEqual, http.StatusOK)
				convey.So(serve("GET", "/openapi.yaml", "").Code, convey.ShouldEqual, http.StatusOK)
				convey.So(serve("GET", "/api-docs", "").Code, convey.ShouldEqual, http.StatusOK)
				convey.So(serve("POST", "/tags", `{"content":{"id":"c"}}`).Code, convey.ShouldEqual, http.StatusOK)
			})

			convey.Convey("Then responses carry a request id", func() {
				convey.So(serve("GET", "/healthz", "").Header().Get("X-Request-ID"), convey.ShouldNotBeEmpty)
			})

			convey.Convey("Then the configured recipient cap applies", func() {
				w := serve("POST", "/process", `{"content":{"id":"c"},"recipients":[{"id":"a"},{"id":"b"}]}`)
				convey.So(w.Code, convey.ShouldEqual, http.StatusBadRequest)
			})
		})

		convey.Convey("When sampling system metrics", func() {
			convey.Convey("Then it does not panic", func() {
				convey.So(updateSystemMetrics, convey.ShouldNotPanic)
			})
		})
	})
}
