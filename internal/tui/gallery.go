package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/shelf/internal/gallery"
	"github.com/idilsaglam/shelf/internal/ui"
)

// terminal key -> keyup key name understood by the gallery
var keyNames = map[string]string{
	"enter": gallery.KeyEnter,
	"esc":   gallery.KeyEscape,
	"left":  gallery.KeyArrowLeft,
	"right": gallery.KeyArrowRight,
}

type thumbRef struct{ g, i int }

type galleryLine struct {
	text  string
	thumb *thumbRef
}

// Gallery lists the thumbnails of every gallery and draws the shared
// overlay on top when it is open. Input is forwarded as keyup and click
// events; the gallery package decides what they do.
type Gallery struct {
	overlay   *gallery.Overlay
	galleries []*gallery.Gallery
	focus     thumbRef
	previews  *previewCache

	width, height int
}

func NewGallery(overlay *gallery.Overlay, galleries []*gallery.Gallery) Gallery {
	return Gallery{
		overlay:   overlay,
		galleries: galleries,
		previews:  newPreviewCache(),
		width:     80,
		height:    24,
	}
}

func (m Gallery) Init() tea.Cmd { return nil }

func (m Gallery) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		k := msg.String()
		if k == "ctrl+c" || k == "q" {
			return m, tea.Quit
		}
		if m.overlay.IsOpen() {
			switch k {
			case "n":
				m.overlay.ClickNext()
			case "p":
				m.overlay.ClickPrev()
			default:
				m.overlay.KeyUp(keyName(k))
			}
			return m, nil
		}
		switch k {
		case "esc":
			return m, tea.Quit
		case "down", "j", "tab":
			m.moveFocus(1)
		case "up", "k", "shift+tab":
			m.moveFocus(-1)
		default:
			if len(m.galleries) > 0 {
				m.galleries[m.focus.g].KeyUpThumbnail(m.focus.i, keyName(k))
			}
		}
		return m, nil

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		m.click(msg.X, msg.Y)
		return m, nil
	}
	return m, nil
}

func keyName(k string) string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	return k
}

func (m *Gallery) moveFocus(delta int) {
	var refs []thumbRef
	cur := 0
	for gi, g := range m.galleries {
		for i := 0; i < g.Len(); i++ {
			if gi == m.focus.g && i == m.focus.i {
				cur = len(refs)
			}
			refs = append(refs, thumbRef{gi, i})
		}
	}
	if len(refs) == 0 {
		return
	}
	m.focus = refs[(cur+delta+len(refs))%len(refs)]
}

func (m *Gallery) click(x, y int) {
	if m.overlay.IsOpen() {
		box, navRow := m.modal()
		x0, y0, w, h := m.modalRect(box)
		inside := x >= x0 && x < x0+w && y >= y0 && y < y0+h
		if !inside {
			m.overlay.Click(false)
			return
		}
		if y == y0+1+navRow {
			if x < x0+w/2 {
				m.overlay.ClickPrev()
			} else {
				m.overlay.ClickNext()
			}
		}
		m.overlay.Click(true)
		return
	}
	lines := m.lines()
	if y < 0 || y >= len(lines) || lines[y].thumb == nil {
		return
	}
	ref := *lines[y].thumb
	m.focus = ref
	m.galleries[ref.g].ClickThumbnail(ref.i)
}

// lines is the closed-state layout, one entry per screen row.
func (m Gallery) lines() []galleryLine {
	t := ui.Current()
	out := []galleryLine{{text: t.Title.Render("Gallery")}, {}}
	for gi, g := range m.galleries {
		out = append(out, galleryLine{text: t.Accent.Render(g.Name)})
		for i, img := range g.Images() {
			prefix := "  "
			text := img.Title
			if gi == m.focus.g && i == m.focus.i {
				prefix = t.Selected.Render("> ")
			}
			out = append(out, galleryLine{text: prefix + text, thumb: &thumbRef{gi, i}})
		}
		out = append(out, galleryLine{})
	}
	out = append(out, galleryLine{text: t.Help.Render("↑/↓ move • enter open • ←/→ browse • esc close • q quit")})
	return out
}

func (m Gallery) innerWidth() int {
	w := m.width - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

// modal renders the overlay box and reports which body row holds the
// prev/next controls.
func (m Gallery) modal() (string, int) {
	t := ui.Current()
	iw := m.innerWidth()
	rows := m.height/2 - 2
	if rows < 3 {
		rows = 3
	}

	position := ""
	for _, g := range m.galleries {
		if g.Status() == gallery.Open {
			i, _ := g.Current()
			position = fmt.Sprintf("  %d/%d", i+1, g.Len())
		}
	}

	prev, next := "‹ prev", "next ›"
	gap := iw - lipgloss.Width(prev) - lipgloss.Width(next)
	if gap < 1 {
		gap = 1
	}
	nav := t.Accent.Render(prev) + strings.Repeat(" ", gap) + t.Accent.Render(next)

	body := lipgloss.JoinVertical(lipgloss.Left,
		t.Title.Render(m.overlay.Title)+t.Muted.Render(position),
		m.previews.get(m.overlay.Src, iw, rows),
		lipgloss.NewStyle().Width(iw).Render(t.Muted.Render(m.overlay.Caption)),
		"",
		nav,
	)
	box := lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1).
		Render(body)
	return box, lipgloss.Height(body) - 1
}

// modalRect is where View places the box: centered, clamped to the screen.
func (m Gallery) modalRect(box string) (x0, y0, w, h int) {
	w, h = lipgloss.Width(box), lipgloss.Height(box)
	x0, y0 = (m.width-w)/2, (m.height-h)/2
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	return x0, y0, w, h
}

func (m Gallery) View() string {
	if m.overlay.IsOpen() {
		box, _ := m.modal()
		x0, y0, _, _ := m.modalRect(box)
		pad := strings.Repeat(" ", x0)
		var sb strings.Builder
		sb.WriteString(strings.Repeat("\n", y0))
		for i, ln := range strings.Split(box, "\n") {
			if i > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(pad + ln)
		}
		return sb.String()
	}
	lines := m.lines()
	out := make([]string, len(lines))
	for i, ln := range lines {
		out[i] = ln.text
	}
	return strings.Join(out, "\n")
}

// RunGallery starts the gallery viewer with mouse support.
func RunGallery(overlay *gallery.Overlay, galleries []*gallery.Gallery) error {
	if len(galleries) == 0 {
		return gallery.ErrNoGallery
	}
	p := tea.NewProgram(NewGallery(overlay, galleries), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
