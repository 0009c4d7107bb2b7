package screens

import (
	"context"
	"log"
	"time"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/user-none/padnav/standalone/style"
)

// contributorTimeout bounds one fetch from the contributor source.
const contributorTimeout = 10 * time.Second

// AboutScreen shows the version and the contributor list. The list starts
// from a bundled fallback and is replaced once the source answers.
type AboutScreen struct {
	BaseScreen

	callback ScreenCallback
	version  string
	source   ContributorSource

	contributors []Contributor
	loading      bool
	loadFailed   bool
	fetched      bool
}

// NewAboutScreen creates the about page. source may be nil, in which case
// only the fallback list is shown.
func NewAboutScreen(callback ScreenCallback, version string, source ContributorSource, fallback []Contributor) *AboutScreen {
	s := &AboutScreen{
		callback:     callback,
		version:      version,
		source:       source,
		contributors: fallback,
	}
	s.InitBase()
	return s
}

func (s *AboutScreen) Title() string { return "About" }
func (s *AboutScreen) OnExit()       {}

// OnEnter starts the contributor fetch the first time the page is shown.
func (s *AboutScreen) OnEnter() {
	if s.fetched || s.source == nil {
		return
	}
	s.fetched = true
	s.loading = true

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), contributorTimeout)
		defer cancel()
		list, err := s.source.Contributors(ctx)
		s.callback.Post(func() {
			s.applyContributors(list, err)
		})
	}()
}

// applyContributors runs on the UI thread with the fetch result.
func (s *AboutScreen) applyContributors(list []Contributor, err error) {
	s.loading = false
	switch {
	case err != nil:
		log.Printf("Failed to load contributors: %v", err)
		s.loadFailed = true
	case len(list) > 0:
		s.contributors = list
	}
	s.callback.RequestRebuild()
}

// Build creates the page UI
func (s *AboutScreen) Build() *widget.Container {
	root := style.PageContainer([]bool{false, false, true})
	root.AddChild(style.Label("padnav "+s.version, style.Text))

	status := "Contributors"
	switch {
	case s.loading:
		status = "Contributors (loading...)"
	case s.loadFailed:
		status = "Contributors (offline list)"
	}
	root.AddChild(style.Label(status, style.TextSecondary))

	list := style.VerticalList(style.SmallSpacing)
	for _, c := range s.contributors {
		list.AddChild(style.Label(contributorLine(c), style.Text))
	}
	scrollContainer, vSlider, wrapper := style.ScrollableContainer(style.ScrollableOpts{Content: list})
	s.SetScrollWidgets(scrollContainer, vSlider)
	root.AddChild(wrapper)

	return root
}

func contributorLine(c Contributor) string {
	line := c.Login
	if c.URL != "" {
		line += "  " + c.URL
	}
	return line
}
