package cli

import (
	"github.com/spf13/cobra"

	"github.com/idilsaglam/shelf/internal/gallery"
	"github.com/idilsaglam/shelf/internal/log"
	"github.com/idilsaglam/shelf/internal/tui"
)

func newGalleryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "gallery <manifest.json...>",
		Short: "Browse one or more image galleries",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usageErr("usage: shelf gallery <manifest.json...>")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			closeLog := tuiLogger(app)
			defer closeLog()
			galleries, overlay, err := loadGalleries(args)
			if err != nil {
				return err
			}
			if err := tui.RunGallery(overlay, galleries); err != nil {
				log.Error().Err(err).Msg("gallery tui")
				return err
			}
			return nil
		},
	}
}

// loadGalleries builds one gallery per manifest, all sharing one overlay.
func loadGalleries(paths []string) ([]*gallery.Gallery, *gallery.Overlay, error) {
	overlay := gallery.NewOverlay()
	out := make([]*gallery.Gallery, 0, len(paths))
	for _, p := range paths {
		m, err := gallery.LoadManifest(p)
		if err != nil {
			return nil, nil, err
		}
		g, err := gallery.New(m.Name, m.Images, overlay, log.Component("gallery"))
		if err != nil {
			return nil, nil, err
		}
		out = append(out, g)
	}
	return out, overlay, nil
}
