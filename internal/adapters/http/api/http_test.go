package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/outreach/internal/adapters/http/api"
	service "github.com/okian/outreach/internal/app"
	"github.com/okian/outreach/internal/domain/model"
	"github.com/okian/outreach/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

// Mock implementations for testing
type mockDependencies struct {
	processErr error
	processed  []model.RecipientProfile
}

func (m *mockDependencies) SuggestTags(_ context.Context, _ model.ContentItem) []model.TagSuggestion {
	return []model.TagSuggestion{{Name: "AI/ML", Category: model.CategoryTechnology, Confidence: 0.95}}
}

func (m *mockDependencies) ScoreMatch(_ context.Context, r model.RecipientProfile, c model.ContentItem) model.MatchResult {
	return model.MatchResult{RecipientID: r.ID, ContentID: c.ID, Score: 80, Reasons: []string{"AI"}}
}

func (m *mockDependencies) DraftMessage(_ context.Context, _ model.RecipientProfile, c model.ContentItem, score float64) model.DraftMessage {
	return model.DraftMessage{Subject: fmt.Sprintf("%s %g", c.Title, score), Tone: model.ToneFormal}
}

func (m *mockDependencies) ProcessContent(_ context.Context, _ model.ContentItem, rs []model.RecipientProfile) (model.ProcessResult, error) {
	m.processed = rs
	if m.processErr != nil {
		return model.ProcessResult{}, m.processErr
	}
	return model.ProcessResult{RunID: "run-1"}, nil
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func newMux(deps api.Dependencies, opts ...api.Option) http.Handler {
	server := api.NewServer(deps, &mockStatsProvider{stats: map[string]interface{}{"started": true}}, opts...)
	mux := http.NewServeMux()
	server.Register(mux)
	return api.RequestIDMiddleware(mux)
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(w *httptest.ResponseRecorder) map[string]string {
	var out map[string]string
	_ = json.NewDecoder(w.Body).Decode(&out)
	return out
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		h := newMux(&mockDependencies{})

		Convey("Then health reports ok as JSON", func() {
			w := do(h, "GET", "/healthz", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldEqual, "application/json; charset=utf-8")
			So(strings.TrimSpace(w.Body.String()), ShouldEqual, `{"status":"ok"}`)
		})

		Convey("Then metrics are exposed", func() {
			_ = do(h, "GET", "/healthz", "")
			w := do(h, "GET", "/metrics", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "outreach_assistant_http_requests_total")
		})

		Convey("Then stats are served", func() {
			w := do(h, "GET", "/stats", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"started":true`)
		})

		Convey("Then wrong methods are not found", func() {
			for _, c := range []struct{ method, path string }{
				{"GET", "/process"}, {"GET", "/tags"}, {"GET", "/match"}, {"GET", "/draft"},
				{"POST", "/stats"}, {"POST", "/healthz"},
			} {
				So(do(h, c.method, c.path, "{}").Code, ShouldEqual, http.StatusNotFound)
			}
		})

		Convey("Then unknown paths are not found", func() {
			So(do(h, "GET", "/unknown", "").Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestRequestID(t *testing.T) {
	Convey("Given the request id middleware", t, func() {
		h := newMux(&mockDependencies{})

		Convey("When the client sends an id", func() {
			req := httptest.NewRequest("GET", "/healthz", nil)
			req.Header.Set(api.RequestIDHeader, "abc-123")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			Convey("Then it is echoed", func() {
				So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "abc-123")
			})
		})

		Convey("When the client sends none", func() {
			w := do(h, "GET", "/healthz", "")

			Convey("Then a fresh one is generated", func() {
				So(w.Header().Get(api.RequestIDHeader), ShouldHaveLength, 36)
			})
		})

		Convey("When the client sends an oversized id", func() {
			req := httptest.NewRequest("GET", "/healthz", nil)
			req.Header.Set(api.RequestIDHeader, strings.Repeat("x", 500))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			Convey("Then it is replaced", func() {
				So(w.Header().Get(api.RequestIDHeader), ShouldHaveLength, 36)
			})
		})

		Convey("When a handler reads the context", func() {
			var seen string
			inner := api.RequestIDMiddleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				seen = api.RequestIDFromContext(r.Context())
			}))
			req := httptest.NewRequest("GET", "/", nil)
			req.Header.Set(api.RequestIDHeader, "ctx-id")
			inner.ServeHTTP(httptest.NewRecorder(), req)

			Convey("Then the id is available", func() {
				So(seen, ShouldEqual, "ctx-id")
				So(api.RequestIDFromContext(context.Background()), ShouldBeEmpty)
			})
		})
	})
}

func TestProcessHandler(t *testing.T) {
	Convey("Given the process endpoint", t, func() {
		deps := &mockDependencies{}
		h := newMux(deps, api.WithMaxRecipients(2), api.WithMaxBodyBytes(512))

		Convey("When the request is valid", func() {
			w := do(h, "POST", "/process", `{"content":{"id":"c-1","title":"T"},"recipients":[{"id":"r-1"}]}`)

			Convey("Then the result is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"run_id":"run-1"`)
				So(deps.processed, ShouldHaveLength, 1)
			})
		})

		Convey("When recipients are omitted", func() {
			w := do(h, "POST", "/process", `{"content":{"id":"c-1"}}`)

			Convey("Then an empty batch is processed", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.processed, ShouldNotBeNil)
				So(deps.processed, ShouldBeEmpty)
			})
		})

		Convey("When the content id is missing", func() {
			w := do(h, "POST", "/process", `{"content":{"title":"T"},"recipients":[]}`)

			Convey("Then it is a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				body := decodeError(w)
				So(body["code"], ShouldEqual, "bad_request")
				So(body["message"], ShouldContainSubstring, "missing content.id")
			})
		})

		Convey("When a recipient id is missing", func() {
			w := do(h, "POST", "/process", `{"content":{"id":"c-1"},"recipients":[{"id":"r-1"},{"name":"x"}]}`)

			Convey("Then the offending index is named", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decodeError(w)["message"], ShouldContainSubstring, "recipients[1].id")
			})
		})

		Convey("When too many recipients are sent", func() {
			w := do(h, "POST", "/process", `{"content":{"id":"c-1"},"recipients":[{"id":"a"},{"id":"b"},{"id":"c"}]}`)

			Convey("Then it is a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decodeError(w)["message"], ShouldContainSubstring, "too many recipients")
			})
		})

		Convey("When the body is malformed", func() {
			for _, body := range []string{"", "{", `{"content":{"id":"c-1"}} trailing`} {
				So(do(h, "POST", "/process", body).Code, ShouldEqual, http.StatusBadRequest)
			}
		})

		Convey("When the body is too large", func() {
			big := fmt.Sprintf(`{"content":{"id":"c-1","body":"%s"}}`, strings.Repeat("a", 1024))
			w := do(h, "POST", "/process", big)

			Convey("Then it is rejected", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decodeError(w)["message"], ShouldContainSubstring, "exceeds 512 bytes")
			})
		})

		Convey("When the pipeline fails", func() {
			deps.processErr = errors.New("recipient not found: ghost")
			w := do(h, "POST", "/process", `{"content":{"id":"c-1"},"recipients":[{"id":"r-1"}]}`)

			Convey("Then it is an internal error", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				body := decodeError(w)
				So(body["code"], ShouldEqual, "internal")
				So(body["message"], ShouldContainSubstring, "recipient not found")
			})
		})
	})
}

func TestSingleStepHandlers(t *testing.T) {
	Convey("Given the single step endpoints", t, func() {
		h := newMux(&mockDependencies{})

		Convey("When suggesting tags", func() {
			w := do(h, "POST", "/tags", `{"content":{"id":"c-1","title":"AI"}}`)

			Convey("Then tags are wrapped in an object", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"tags":[{"name":"AI/ML","category":"TECHNOLOGY","confidence":0.95}]`)
			})
		})

		Convey("When suggesting tags without a content id", func() {
			So(do(h, "POST", "/tags", `{"content":{}}`).Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When scoring a match", func() {
			w := do(h, "POST", "/match", `{"recipient":{"id":"r-1"},"content":{"id":"c-1"}}`)

			Convey("Then the match result uses snake_case names", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"recipient_id":"r-1"`)
				So(w.Body.String(), ShouldContainSubstring, `"content_id":"c-1"`)
			})
		})

		Convey("When scoring a match without a recipient id", func() {
			w := do(h, "POST", "/match", `{"recipient":{},"content":{"id":"c-1"}}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(decodeError(w)["message"], ShouldContainSubstring, "missing recipient.id")
		})

		Convey("When drafting with a valid score", func() {
			w := do(h, "POST", "/draft", `{"recipient":{"id":"r-1"},"content":{"id":"c-1","title":"T"},"score":0}`)

			Convey("Then the draft is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"subject":"T 0"`)
			})
		})

		Convey("When drafting with an invalid score", func() {
			for _, body := range []string{
				`{"recipient":{"id":"r-1"},"content":{"id":"c-1"}}`,
				`{"recipient":{"id":"r-1"},"content":{"id":"c-1"},"score":-1}`,
				`{"recipient":{"id":"r-1"},"content":{"id":"c-1"},"score":100.5}`,
			} {
				So(do(h, "POST", "/draft", body).Code, ShouldEqual, http.StatusBadRequest)
			}
		})
	})
}

func TestServerWithService(t *testing.T) {
	Convey("Given the API backed by the real service", t, func() {
		svc := service.New(service.WithRandomSource(scoring.FixedSource(0)))
		server := api.NewServer(svc, svc)
		mux := http.NewServeMux()
		server.Register(mux)

		Convey("When processing the end to end scenario", func() {
			body := `{
				"content": {"id": "c-1", "title": "Launch of our new AI service", "summary": "An AI service that accelerates DX", "body": "", "status": "draft"},
				"recipients": [{"id": "r-1", "name": "Taro Yamada", "email": "taro@example.com", "company": "Example Newspaper Co. AI desk"}]
			}`
			w := do(mux, "POST", "/process", body)

			Convey("Then one recommendation with a press draft is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var res model.ProcessResult
				So(json.NewDecoder(w.Body).Decode(&res), ShouldBeNil)
				So(res.Tags, ShouldHaveLength, 2)
				So(res.MatchResults, ShouldHaveLength, 1)
				So(res.MatchResults[0].Score, ShouldEqual, 75.0)
				So(res.Recommendations, ShouldHaveLength, 1)
				So(res.Recommendations[0].Draft.Subject, ShouldEqual, "Press coverage proposal: Launch of our new AI service")
			})
		})

		Convey("When processing with no recipients", func() {
			w := do(mux, "POST", "/process", `{"content":{"id":"c-1","title":"plain"},"recipients":[]}`)

			Convey("Then empty arrays are serialized", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"match_results":[]`)
				So(w.Body.String(), ShouldContainSubstring, `"recommendations":[]`)
			})
		})
	})
}
