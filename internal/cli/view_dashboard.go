package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/vgn360/internal/cli/formatter"
	"github.com/alexanderramin/vgn360/internal/domain"
	"github.com/alexanderramin/vgn360/internal/nav"
	"github.com/alexanderramin/vgn360/internal/screen"
)

// ── messages ─────────────────────────────────────────────────────────────────

// customerLoadedMsg carries the GetCustomerName answer for one mobile.
type customerLoadedMsg struct {
	scopeTag
	mobile   string
	customer *domain.Customer
	err      error
}

type carouselTickMsg struct{ scopeTag }

// ── menu ─────────────────────────────────────────────────────────────────────

type dashboardItem struct {
	key    string
	label  string
	desc   string
	target nav.Screen
}

var dashboardMenu = []dashboardItem{
	{key: "e", label: "Enquiry", desc: "Ask about a project", target: nav.EnquiryForm},
	{key: "r", label: "Refer a friend", desc: "Share a project with someone", target: nav.ReferralForm},
	{key: "b", label: "Booked history", desc: "Your units, payments and receipts", target: nav.BookedHistory},
}

// ── view ─────────────────────────────────────────────────────────────────────

// dashboardView is the home screen after sign-in: greeting, promotional
// carousel and the entry points to the other screens.
type dashboardView struct {
	scoped
	state    *SharedState
	carousel *screen.Carousel
	cursor   int

	// Greeting
	mobile   string
	customer *domain.Customer
	loading  bool
}

func newDashboardView(state *SharedState) *dashboardView {
	return &dashboardView{
		scoped:   newScoped(state),
		state:    state,
		carousel: screen.NewCarousel(screen.DefaultSlides),
		mobile:   state.Session().Get().Mobile,
	}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "Dashboard" }

func (v *dashboardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "enquiry")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refer")),
		key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bookings")),
		key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "slides")),
	}
}

func (v *dashboardView) Init() tea.Cmd {
	return tea.Batch(v.loadCustomer(), v.nextTick())
}

// ── data loading ─────────────────────────────────────────────────────────────

func (v *dashboardView) loadCustomer() tea.Cmd {
	if domain.ValidatePhone(v.mobile) != "" {
		v.loading = false
		v.customer = nil
		return nil
	}
	v.loading = true
	client, ctx, tag, mobile := v.state.Gateway(), v.sc.Context(), v.tag(), v.mobile
	return func() tea.Msg {
		c, err := client.CustomerName(ctx, mobile)
		return customerLoadedMsg{scopeTag: tag, mobile: mobile, customer: c, err: err}
	}
}

func (v *dashboardView) nextTick() tea.Cmd {
	tag := v.tag()
	return scopedTick(v.sc, v.state.CarouselInterval, func() tea.Msg { return carouselTickMsg{tag} })
}

// displayName is the customer name, or the formatted number when the server
// does not know it.
func (v *dashboardView) displayName() string {
	if v.customer != nil && strings.TrimSpace(v.customer.Name) != "" {
		return v.customer.Name
	}
	if v.mobile == "" {
		return "Guest"
	}
	return formatter.DisplayPhone(v.mobile)
}

// ── update ───────────────────────────────────────────────────────────────────

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case customerLoadedMsg:
		if msg.mobile != v.mobile {
			return v, nil // answer for a number that has since changed
		}
		v.loading = false
		if msg.err != nil {
			v.state.Logger().Error().Err(msg.err).Msg("fetch customer name failed")
			v.customer = nil
			return v, nil
		}
		v.customer = msg.customer
		return v, nil

	case carouselTickMsg:
		v.carousel.Tick()
		return v, v.nextTick()

	case sessionChangedMsg:
		if msg.next.Mobile == v.mobile {
			return v, nil
		}
		v.mobile = msg.next.Mobile
		return v, v.loadCustomer()

	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			v.carousel.Prev()
		case "right", "l":
			v.carousel.Tick()
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(dashboardMenu)-1 {
				v.cursor++
			}
		case "enter":
			return v, navigate(dashboardMenu[v.cursor].target, nil)
		default:
			for _, item := range dashboardMenu {
				if msg.String() == item.key {
					return v, navigate(item.target, nil)
				}
			}
		}
	}

	return v, nil
}

// ── view rendering ───────────────────────────────────────────────────────────

func (v *dashboardView) View() string {
	var b strings.Builder

	b.WriteString("\n  ")
	if v.loading {
		b.WriteString(formatter.Dim("Loading..."))
	} else {
		b.WriteString(formatter.Dim("Welcome, ") + formatter.Bold(v.displayName()))
	}
	b.WriteString("\n\n")

	b.WriteString(v.renderCarousel())
	b.WriteString("\n\n")

	for i, item := range dashboardMenu {
		cursor := "  "
		label := formatter.StyleFg.Render(item.label)
		if i == v.cursor {
			cursor = formatter.StyleBrand.Render("▸ ")
			label = formatter.Bold(item.label)
		}
		b.WriteString(fmt.Sprintf("  %s%s %s  %s\n",
			cursor,
			formatter.Dim("["+item.key+"]"),
			label,
			formatter.Dim(item.desc),
		))
	}

	return b.String()
}

func (v *dashboardView) renderCarousel() string {
	slide, ok := v.carousel.Current()
	if !ok {
		return ""
	}

	var dots strings.Builder
	for i := 0; i < v.carousel.Len(); i++ {
		if i == v.carousel.Index() {
			dots.WriteString(formatter.StyleBrand.Render("●"))
		} else {
			dots.WriteString(formatter.Dim("○"))
		}
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		formatter.Bold(slide.Caption),
		formatter.Dim(slide.URL),
		"",
		dots.String(),
	)
	return lipgloss.NewStyle().PaddingLeft(2).Render(formatter.RenderBox("", body))
}
