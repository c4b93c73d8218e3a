// Package gallery drives a lightbox overlay over one or more fixed,
// cyclic image sets.
//
// The overlay is shared by every gallery. It is either closed or open on
// one image. While it is open, exactly one set of navigation listeners
// (keyboard on the window, clicks on next/prev) is attached, owned by the
// gallery that opened it; closing detaches them. Navigation always moves
// through the gallery whose image is on screen.
package gallery

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/idilsaglam/shelf/internal/event"
	"github.com/idilsaglam/shelf/internal/model"
)

var ErrNoGallery = errors.New("no gallery found")

// Key names carried by keyup events.
const (
	KeyEnter      = "Enter"
	KeyEscape     = "Escape"
	KeyArrowRight = "ArrowRight"
	KeyArrowLeft  = "ArrowLeft"
)

const (
	EventClick = "click"
	EventKeyUp = "keyup"
)

// Overlay is the single modal shared by all galleries.
type Overlay struct {
	Root    *event.Target // backdrop; clicks that land here close the overlay
	Content *event.Target // figure inside the backdrop
	Window  *event.Target
	Next    *event.Target
	Prev    *event.Target

	Src, Title, Caption string

	open  bool
	owner *Gallery // attached the navigation listeners
	shown *Gallery // wrote the current content
}

func NewOverlay() *Overlay {
	return &Overlay{
		Root:    event.NewTarget("modal"),
		Content: event.NewTarget("modal-content"),
		Window:  event.NewTarget("window"),
		Next:    event.NewTarget("next"),
		Prev:    event.NewTarget("prev"),
	}
}

func (o *Overlay) IsOpen() bool { return o.open }

// Click delivers a click to the overlay. onContent reports whether it
// landed on the figure rather than the backdrop.
func (o *Overlay) Click(onContent bool) {
	ev := event.Event{Type: EventClick}
	if onContent {
		ev.Target = o.Content
	}
	o.Root.Dispatch(ev)
}

// KeyUp delivers a key release to the window.
func (o *Overlay) KeyUp(key string) {
	o.Window.Dispatch(event.Event{Type: EventKeyUp, Key: key})
}

func (o *Overlay) ClickNext() { o.Next.Dispatch(event.Event{Type: EventClick}) }
func (o *Overlay) ClickPrev() { o.Prev.Dispatch(event.Event{Type: EventClick}) }

// Status is the modal state.
type Status int

const (
	Closed Status = iota
	Open
)

func (s Status) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Gallery is one ordered, cyclic set of images bound to the shared overlay.
type Gallery struct {
	Name    string
	images  []model.GalleryImage
	thumbs  []*event.Target
	overlay *Overlay
	current int

	keyup, next, prev *event.Listener
	log               zerolog.Logger
}

// New binds images to overlay. Each thumbnail opens the overlay on click
// or on Enter; a click on the overlay backdrop closes it.
func New(name string, images []model.GalleryImage, overlay *Overlay, log zerolog.Logger) (*Gallery, error) {
	if len(images) == 0 || overlay == nil {
		return nil, ErrNoGallery
	}
	g := &Gallery{
		Name:    name,
		images:  append([]model.GalleryImage(nil), images...),
		overlay: overlay,
		current: -1,
		log:     log.With().Str("gallery", name).Logger(),
	}
	g.keyup = event.NewListener(func(ev event.Event) { g.onScreen().handleKeyUp(ev) })
	g.next = event.NewListener(func(event.Event) { g.onScreen().Next() })
	g.prev = event.NewListener(func(event.Event) { g.onScreen().Prev() })

	for i := range g.images {
		i := i
		th := event.NewTarget(g.images[i].Title)
		th.AddListener(EventClick, event.NewListener(func(event.Event) { g.Show(i) }))
		th.AddListener(EventKeyUp, event.NewListener(func(ev event.Event) {
			if ev.Key == KeyEnter {
				g.Show(i)
			}
		}))
		g.thumbs = append(g.thumbs, th)
	}
	overlay.Root.AddListener(EventClick, event.NewListener(func(ev event.Event) {
		if ev.Target == ev.CurrentTarget {
			g.Close()
		}
	}))
	return g, nil
}

func (g *Gallery) Len() int { return len(g.images) }

func (g *Gallery) Image(i int) model.GalleryImage { return g.images[i] }

func (g *Gallery) Images() []model.GalleryImage {
	return append([]model.GalleryImage(nil), g.images...)
}

func (g *Gallery) ClickThumbnail(i int) {
	if i >= 0 && i < len(g.thumbs) {
		g.thumbs[i].Dispatch(event.Event{Type: EventClick})
	}
}

func (g *Gallery) KeyUpThumbnail(i int, key string) {
	if i >= 0 && i < len(g.thumbs) {
		g.thumbs[i].Dispatch(event.Event{Type: EventKeyUp, Key: key})
	}
}

// onScreen is the gallery that wrote the overlay's current content.
func (g *Gallery) onScreen() *Gallery {
	if s := g.overlay.shown; s != nil {
		return s
	}
	return g
}

// Current returns the index of the image last shown by this gallery.
func (g *Gallery) Current() (int, bool) {
	return g.current, g.current >= 0
}

// Status reports whether the overlay is open on this gallery's image.
func (g *Gallery) Status() Status {
	if g.overlay.open && g.overlay.shown == g {
		return Open
	}
	return Closed
}

// Show writes image i into the overlay and opens it.
func (g *Gallery) Show(i int) {
	if i < 0 || i >= len(g.images) {
		g.log.Info().Int("index", i).Msg("no image to show")
		return
	}
	img := g.images[i]
	g.overlay.Src = img.Src
	g.overlay.Title = img.Title
	g.overlay.Caption = img.Description
	g.overlay.shown = g
	g.current = i
	g.log.Debug().Int("index", i).Str("title", img.Title).Msg("show image")
	g.open()
}

func (g *Gallery) open() {
	o := g.overlay
	if o.open {
		g.log.Debug().Msg("modal already open")
		return
	}
	o.open = true
	o.owner = g
	o.Window.AddListener(EventKeyUp, g.keyup)
	o.Next.AddListener(EventClick, g.next)
	o.Prev.AddListener(EventClick, g.prev)
}

// Close closes the overlay and detaches the navigation listeners of the
// gallery that opened it. Closing a closed overlay does nothing.
func (g *Gallery) Close() {
	o := g.overlay
	if !o.open {
		return
	}
	if owner := o.owner; owner != nil {
		o.Window.RemoveListener(EventKeyUp, owner.keyup)
		o.Next.RemoveListener(EventClick, owner.next)
		o.Prev.RemoveListener(EventClick, owner.prev)
	}
	o.open = false
	o.owner = nil
	g.log.Debug().Msg("modal closed")
}

// Next shows the following image, wrapping from the last to the first.
func (g *Gallery) Next() {
	if g.current < 0 {
		g.log.Info().Msg("no image to show")
		return
	}
	g.Show((g.current + 1) % len(g.images))
}

// Prev shows the preceding image, wrapping from the first to the last.
func (g *Gallery) Prev() {
	if g.current < 0 {
		g.log.Info().Msg("no image to show")
		return
	}
	g.Show((g.current - 1 + len(g.images)) % len(g.images))
}

func (g *Gallery) handleKeyUp(ev event.Event) {
	switch ev.Key {
	case KeyEscape:
		g.Close()
	case KeyArrowRight:
		g.Next()
	case KeyArrowLeft:
		g.Prev()
	}
}
