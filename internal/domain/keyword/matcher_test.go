package keyword_test

import (
	"sync"
	"testing"

	"github.com/okian/outreach/internal/domain/keyword"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalize(t *testing.T) {
	Convey("Given mixed-case text", t, func() {
		So(keyword.Normalize("Our AI DX Project"), ShouldEqual, "our ai dx project")
		So(keyword.Normalize(""), ShouldEqual, "")
		So(keyword.ContainsFold("Example Newspaper Co.", "newspaper"), ShouldBeTrue)
		So(keyword.ContainsFold("Example Co.", "Newspaper"), ShouldBeFalse)
	})
}

func TestMatcherFind(t *testing.T) {
	Convey("Given a matcher over a small catalog", t, func() {
		m := keyword.NewMatcher([]string{"AI", "DX", "Tech", "Sports"})

		Convey("When the text contains some words in another order and case", func() {
			found := m.Find("sports tech desk, covering ai")

			Convey("Then hits come back once each in catalog order", func() {
				So(found, ShouldResemble, []string{"AI", "Tech", "Sports"})
			})
		})

		Convey("When a word occurs several times", func() {
			found := m.Find("AI ai Ai")

			Convey("Then it is reported once", func() {
				So(found, ShouldResemble, []string{"AI"})
			})
		})

		Convey("When nothing matches", func() {
			Convey("Then an empty, non-nil slice is returned", func() {
				found := m.Find("gardening weekly")
				So(found, ShouldNotBeNil)
				So(found, ShouldBeEmpty)
				So(m.Find(""), ShouldBeEmpty)
			})
		})

		Convey("When words are substrings of longer words", func() {
			Convey("Then substring hits count", func() {
				So(m.Find("techno said"), ShouldResemble, []string{"AI", "Tech"})
			})
		})
	})

	Convey("Given a catalog with duplicates and empty entries", t, func() {
		m := keyword.NewMatcher([]string{"AI", "", "ai", "IT"})

		Convey("Then duplicates each report and empties never match", func() {
			So(m.Find("ai"), ShouldResemble, []string{"AI", "ai"})
			So(m.Words(), ShouldHaveLength, 4)
		})
	})

	Convey("Given an empty catalog", t, func() {
		m := keyword.NewMatcher(nil)

		Convey("Then nothing matches", func() {
			So(m.Find("anything"), ShouldBeEmpty)
		})
	})
}

func TestMatcherConcurrent(t *testing.T) {
	Convey("Given a matcher shared by goroutines", t, func() {
		m := keyword.NewMatcher([]string{"AI", "DX"})
		var wg sync.WaitGroup
		results := make([][]string, 32)
		for i := range results {
			i := i
			wg.Add(1)
			go func() {
				defer wg.Done()
				results[i] = m.Find("AI and DX")
			}()
		}
		wg.Wait()

		Convey("Then every goroutine sees the same hits", func() {
			for _, r := range results {
				So(r, ShouldResemble, []string{"AI", "DX"})
			}
		})
	})
}

func TestIntersect(t *testing.T) {
	Convey("Given recipient and content keywords", t, func() {
		Convey("When both share words", func() {
			So(keyword.Intersect([]string{"AI", "Finance"}, []string{"DX", "AI"}), ShouldResemble, []string{"AI"})
		})

		Convey("When a content word contains a recipient word", func() {
			So(keyword.Intersect([]string{"AI"}, []string{"Entertainment"}), ShouldResemble, []string{"AI"})
		})

		Convey("When either side is empty", func() {
			So(keyword.Intersect(nil, []string{"AI"}), ShouldBeEmpty)
			So(keyword.Intersect([]string{"AI"}, nil), ShouldBeEmpty)
		})
	})
}
