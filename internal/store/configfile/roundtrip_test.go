package configfile

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/MrSnakeDoc/golink/internal/domain"
)

func genLink() gopter.Gen {
	return gopter.CombineGens(
		gen.Identifier(),
		gen.Identifier(),
		gen.SliceOf(gen.Identifier()),
		gen.OneConstOf("", "github", "iconify:mdi:home", "house.fill"),
		gen.OneConstOf("", "Firefox", "com.google.Chrome"),
	).Map(func(vals []interface{}) domain.Link {
		keywords := vals[2].([]string)
		if len(keywords) == 0 {
			keywords = nil
		}
		return domain.Link{
			Title:       vals[0].(string),
			URL:         "https://" + vals[1].(string) + ".example.com/p?a=1&b=2",
			Keywords:    keywords,
			Icon:        vals[3].(string),
			Application: vals[4].(string),
		}
	})
}

func genGroup() gopter.Gen {
	return gopter.CombineGens(
		gen.Identifier(),
		gen.AlphaString(),
		gen.SliceOf(genLink()),
	).Map(func(vals []interface{}) domain.Group {
		return domain.Group{
			Name:  vals[0].(string),
			Title: "T" + vals[1].(string),
			Links: vals[2].([]domain.Link),
		}
	})
}

func genConfig() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(0, 5),
		genGroup(),
		gen.SliceOf(genGroup()),
	).Map(func(vals []interface{}) *domain.Config {
		return &domain.Config{
			Version: float64(vals[0].(int)),
			Groups:  append([]domain.Group{vals[1].(domain.Group)}, vals[2].([]domain.Group)...),
		}
	})
}

func TestEncodeParse_RoundTrip(t *testing.T) {
	properties := gopter.NewProperties(nil)

	for _, format := range []Format{FormatYAML, FormatJSON} {
		format := format
		properties.Property(string(format)+" round trip preserves config", prop.ForAll(
			func(cfg *domain.Config) bool {
				data, err := Encode(cfg, format)
				if err != nil {
					return false
				}
				got, err := Parse(data, format)
				if err != nil {
					return false
				}
				normalize(got)
				return reflect.DeepEqual(cfg, got)
			},
			genConfig(),
		))
	}

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
