package mirax

import (
	"github.com/go-kit/log/level"

	"github.com/arloliu/mirax/errs"
	"github.com/arloliu/mirax/format"
	"github.com/arloliu/mirax/index"
)

// scanDataLayer is the non-hierarchical layer holding the associated images.
const scanDataLayer = "Scan data layer"

// associatedSource names where the configuration describes one associated image.
type associatedSource struct {
	kind      format.AssociatedKind
	level     string
	formatKey string
}

var associatedSources = []associatedSource{
	{format.AssociatedMacro, "ScanDataLayer_SlideThumbnail", "THUMBNAIL_IMAGE_TYPE"},
	{format.AssociatedLabel, "ScanDataLayer_SlideBarcode", "BARCODE_IMAGE_TYPE"},
	{format.AssociatedThumbnail, "ScanDataLayer_SlidePreview", "PREVIEW_IMAGE_TYPE"},
}

// AssociatedImage is an auxiliary image stored with the slide.
type AssociatedImage struct {
	Kind format.AssociatedKind
	// Format is the image type named by the configuration, e.g. "JPEG".
	Format string
	Record Record
}

type associatedRef struct {
	kind   format.AssociatedKind
	format string
	record int
}

// associatedRefs resolves the associated images the configuration describes.
// Images whose layer, level or format key is missing are skipped.
func (s *Slide) associatedRefs() ([]associatedRef, error) {
	refs := make([]associatedRef, 0, len(associatedSources))
	for _, src := range associatedSources {
		_, lv, err := s.nonHier.LookupLevel(scanDataLayer, src.level)
		if errs.IsKeyNotFound(err) {
			level.Debug(s.logger).Log("msg", "associated image not configured", "kind", src.kind, "err", err)
			continue
		}
		if err != nil {
			return nil, err
		}

		imageFormat, err := s.dat.GetString(lv.Section, src.formatKey)
		if errs.IsKeyNotFound(err) {
			level.Debug(s.logger).Log("msg", "associated image has no format", "kind", src.kind, "err", err)
			continue
		}
		if err != nil {
			return nil, err
		}

		refs = append(refs, associatedRef{kind: src.kind, format: imageFormat, record: lv.Record})
	}

	return refs, nil
}

// AssociatedImages decodes the macro, label and thumbnail records, in that order.
// Images the configuration does not describe are omitted; a described image
// whose section is empty is returned with Record.Empty set.
func (s *Slide) AssociatedImages() ([]AssociatedImage, error) {
	refs, err := s.associatedRefs()
	if err != nil {
		return nil, err
	}

	images := make([]AssociatedImage, 0, len(refs))
	err = s.withIndex(func(r *index.Reader) error {
		for _, ref := range refs {
			rec, err := s.decodeRecord(r, ref.record)
			if err != nil {
				return err
			}
			images = append(images, AssociatedImage{Kind: ref.kind, Format: ref.format, Record: rec})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return images, nil
}

// AssociatedImage returns the decoded record of one associated image.
// The boolean is false if the configuration does not describe it.
func (s *Slide) AssociatedImage(kind format.AssociatedKind) (AssociatedImage, bool, error) {
	images, err := s.AssociatedImages()
	if err != nil {
		return AssociatedImage{}, false, err
	}

	for _, img := range images {
		if img.Kind == kind {
			return img, true, nil
		}
	}

	return AssociatedImage{}, false, nil
}
