package catalog_test

import (
	"strings"
	"testing"

	"github.com/okian/outreach/internal/domain/catalog"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCatalogTables(t *testing.T) {
	Convey("Given the static catalogs", t, func() {
		Convey("Then the keyword catalog has fifteen entries", func() {
			So(catalog.Keywords(), ShouldHaveLength, 15)
		})

		Convey("Then the tag catalog has four valid entries with confidence in [0,1]", func() {
			tags := catalog.Tags()
			So(tags, ShouldHaveLength, 4)
			for _, tag := range tags {
				So(tag.Category.Valid(), ShouldBeTrue)
				So(tag.Confidence, ShouldBeBetweenOrEqual, 0, 1)
			}
		})

		Convey("Then every rule marker names at least one catalog tag", func() {
			for _, rule := range catalog.TagRules() {
				found := false
				for _, tag := range catalog.Tags() {
					if strings.Contains(tag.Name, rule.NameMarker) {
						found = true
					}
				}
				So(found, ShouldBeTrue)
				So(rule.Triggers, ShouldNotBeEmpty)
			}
		})

		Convey("When a caller mutates a returned table", func() {
			kw := catalog.Keywords()
			kw[0] = "mutated"
			rules := catalog.TagRules()
			rules[0].Triggers[0] = "mutated"

			Convey("Then the shared tables are unchanged", func() {
				So(catalog.Keywords()[0], ShouldEqual, "AI")
				So(catalog.TagRules()[0].Triggers[0], ShouldEqual, "ai")
			})
		})

		Convey("Then the fixed reasons come in order", func() {
			So(catalog.FixedReasons(), ShouldResemble, []string{"recipient expertise", "high relevance"})
		})
	})
}
