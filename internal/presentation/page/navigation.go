package page

const (
	NavbarScrollThreshold = 100
	ScrollOffset          = 80
	ActiveSectionOffset   = 100
	MobileBreakpoint      = 768
)

type Navbar struct {
	scrolled bool
}

func MountNavbar(scrollY float64) *Navbar {
	n := &Navbar{}
	n.OnScroll(scrollY)
	return n
}

func (n *Navbar) OnScroll(scrollY float64) {
	n.scrolled = scrollY > NavbarScrollThreshold
}

func (n *Navbar) Scrolled() bool { return n.scrolled }

// ScrollTarget is where a nav link scrolls to, leaving room for the fixed navbar.
func ScrollTarget(sectionTop float64) float64 {
	return sectionTop - ScrollOffset
}

type Section struct {
	ID     string
	Top    float64
	Height float64
}

// ActiveSection returns the id of the section under scrollY plus the offset,
// or "" when none is. Later sections win on overlap.
func ActiveSection(sections []Section, scrollY float64) string {
	pos := scrollY + ActiveSectionOffset

	current := ""
	for _, s := range sections {
		if pos >= s.Top && pos < s.Top+s.Height {
			current = s.ID
		}
	}
	return current
}

type MobileNav struct {
	open bool
}

func MountMobileNav() *MobileNav {
	return &MobileNav{}
}

func (m *MobileNav) Open() bool { return m.open }

func (m *MobileNav) Toggle() {
	m.open = !m.open
}

func (m *MobileNav) OnLinkClick() {
	m.open = false
}

// OnClick closes the menu for clicks outside both the menu and its toggle.
func (m *MobileNav) OnClick(insideMenu, onToggle bool) {
	if insideMenu || onToggle {
		return
	}
	m.open = false
}

func (m *MobileNav) OnResize(viewportWidth float64) {
	if viewportWidth > MobileBreakpoint {
		m.open = false
	}
}
