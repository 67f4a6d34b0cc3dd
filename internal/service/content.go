package service

import (
	_ "embed"
	"fmt"
	"regexp"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/limbo/dayslide/pkg/entity"
)

//go:embed content.yaml
var contentYAML []byte

type focusBundle struct {
	Someday         string   `yaml:"someday"`
	FiveYear        string   `yaml:"five_year"`
	OneYear         string   `yaml:"one_year"`
	Monthly         string   `yaml:"monthly"`
	Weekly          string   `yaml:"weekly"`
	Daily           string   `yaml:"daily"`
	RightNow        string   `yaml:"right_now"`
	RightNowLowTime string   `yaml:"right_now_low_time"`
	SuccessMetrics  []string `yaml:"success_metrics"`
	Obstacles       []string `yaml:"obstacles"`
	Resources       []string `yaml:"resources"`
}

// title returns the tier title. Each tier reads the bundle entry that
// follows the one above it, right-now additionally depends on how much
// time the user has.
func (b *focusBundle) title(tf entity.Timeframe, lowTime bool) string {
	switch tf {
	case entity.TimeframeSomeday:
		return b.Someday
	case entity.TimeframeFiveYear:
		return b.FiveYear
	case entity.TimeframeOneYear:
		return b.OneYear
	case entity.TimeframeMonthly:
		return b.Monthly
	case entity.TimeframeWeekly:
		return b.Weekly
	case entity.TimeframeDaily:
		return b.Daily
	case entity.TimeframeRightNow:
		if lowTime {
			return b.RightNowLowTime
		}
		return b.RightNow
	}
	return ""
}

// tierContent is shared by every focus area. Metrics entries may hold one
// %s for the focus area.
type tierContent struct {
	Description string   `yaml:"description"`
	Reasoning   string   `yaml:"reasoning"`
	Metrics     []string `yaml:"metrics"`
	Obstacles   []string `yaml:"obstacles"`
	Resources   []string `yaml:"resources"`
}

type titleRewrite struct {
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
	re          *regexp.Regexp
}

type contentCatalog struct {
	Bundles    map[FocusArea]*focusBundle        `yaml:"bundles"`
	Default    *focusBundle                      `yaml:"default"`
	Tiers      map[entity.Timeframe]*tierContent `yaml:"tiers"`
	Refinement struct {
		MinimalResources   map[entity.Timeframe][]string      `yaml:"minimal_resources"`
		AggressiveTimeline map[entity.Timeframe]*titleRewrite `yaml:"aggressive_timeline"`
	} `yaml:"refinement"`
	DailyAction struct {
		QuickSteps []string `yaml:"quick_steps"`
		FullSteps  []string `yaml:"full_steps"`
	} `yaml:"daily_action"`
	Motivation struct {
		Insights map[StreakBucket]string `yaml:"insights"`
	} `yaml:"motivation"`
}

var (
	catalog     *contentCatalog
	catalogErr  error
	catalogOnce sync.Once
)

func loadCatalog() (*contentCatalog, error) {
	catalogOnce.Do(func() {
		var c contentCatalog
		if err := yaml.Unmarshal(contentYAML, &c); err != nil {
			catalogErr = fmt.Errorf("parsing content tables: %w", err)
			return
		}
		if c.Default == nil {
			catalogErr = fmt.Errorf("content tables have no default bundle")
			return
		}
		for tf, rw := range c.Refinement.AggressiveTimeline {
			re, err := regexp.Compile(rw.Pattern)
			if err != nil {
				catalogErr = fmt.Errorf("refinement pattern for %s: %w", tf, err)
				return
			}
			rw.re = re
		}
		catalog = &c
	})
	return catalog, catalogErr
}

// mustCatalog panics on a broken embedded document, which can only happen
// at build time.
func mustCatalog() *contentCatalog {
	c, err := loadCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

// bundleFor resolves a focus area to its bundle. The second result is false
// when the area has no bundle of its own and the default one is returned.
func (c *contentCatalog) bundleFor(area FocusArea) (*focusBundle, bool) {
	if b, ok := c.Bundles[area]; ok {
		return b, true
	}
	return c.Default, false
}

func (c *contentCatalog) tier(tf entity.Timeframe) *tierContent {
	if t, ok := c.Tiers[tf]; ok {
		return t
	}
	return &tierContent{}
}

func (rw *titleRewrite) apply(title string) string {
	loc := rw.re.FindStringIndex(title)
	if loc == nil {
		return title
	}
	return title[:loc[0]] + rw.Replacement + title[loc[1]:]
}
