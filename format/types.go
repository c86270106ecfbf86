package format

type (
	CompressionType    uint8
	PositionMapVariant uint8
	AssociatedKind     uint8
	TreeKind           uint8
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
	CompressionZlib CompressionType = 0x5 // CompressionZlib represents zlib (RFC 1950) compression.
)

const (
	PositionMapPlain      PositionMapVariant = 0x1 // PositionMapPlain is the uncompressed "index" position buffer.
	PositionMapCompressed PositionMapVariant = 0x2 // PositionMapCompressed is the zlib-compressed "zindex" stitching buffer.
)

const (
	AssociatedMacro     AssociatedKind = 0x1 // AssociatedMacro is the slide overview image.
	AssociatedLabel     AssociatedKind = 0x2 // AssociatedLabel is the barcode label image.
	AssociatedThumbnail AssociatedKind = 0x3 // AssociatedThumbnail is the slide preview image.
)

const (
	TreeHierarchical    TreeKind = 0x1 // TreeHierarchical is the zoom pyramid tree.
	TreeNonHierarchical TreeKind = 0x2 // TreeNonHierarchical is the auxiliary data tree.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionZlib:
		return "Zlib"
	default:
		return "Unknown"
	}
}

// ParseCompressionType maps a lower-case name ("none", "zstd", "s2", "lz4", "zlib")
// to its CompressionType. The boolean is false for unknown names.
func ParseCompressionType(name string) (CompressionType, bool) {
	switch name {
	case "none":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	case "zlib":
		return CompressionZlib, true
	default:
		return 0, false
	}
}

// Key returns the short name used for the variant in reports.
func (v PositionMapVariant) Key() string {
	switch v {
	case PositionMapPlain:
		return "index"
	case PositionMapCompressed:
		return "zindex"
	default:
		return "unknown"
	}
}

// Compression returns the compression applied to the variant's stored bytes.
func (v PositionMapVariant) Compression() CompressionType {
	if v == PositionMapCompressed {
		return CompressionZlib
	}

	return CompressionNone
}

func (k AssociatedKind) String() string {
	switch k {
	case AssociatedMacro:
		return "macro"
	case AssociatedLabel:
		return "label"
	case AssociatedThumbnail:
		return "thumbnail"
	default:
		return "unknown"
	}
}

// ParseAssociatedKind maps "macro", "label" or "thumbnail" to its kind.
func ParseAssociatedKind(name string) (AssociatedKind, bool) {
	switch name {
	case "macro":
		return AssociatedMacro, true
	case "label":
		return AssociatedLabel, true
	case "thumbnail":
		return AssociatedThumbnail, true
	default:
		return 0, false
	}
}

func (t TreeKind) String() string {
	switch t {
	case TreeHierarchical:
		return "Hierarchical"
	case TreeNonHierarchical:
		return "NonHierarchical"
	default:
		return "Unknown"
	}
}
