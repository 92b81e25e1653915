package unsplash

// Photo is the Unsplash API photo object, limited to the fields this
// server consumes.
type Photo struct {
	ID             string     `json:"id"`
	Description    string     `json:"description"`
	AltDescription string     `json:"alt_description"`
	Width          int        `json:"width"`
	Height         int        `json:"height"`
	URLs           PhotoURLs  `json:"urls"`
	User           PhotoUser  `json:"user"`
	Links          PhotoLinks `json:"links"`
}

// PhotoURLs holds the resolution variants Unsplash provides for a photo.
type PhotoURLs struct {
	Raw     string `json:"raw"`
	Full    string `json:"full"`
	Regular string `json:"regular"`
	Small   string `json:"small"`
	Thumb   string `json:"thumb"`
}

// PhotoUser identifies the photographer for attribution.
type PhotoUser struct {
	Name     string    `json:"name"`
	Username string    `json:"username"`
	Links    UserLinks `json:"links"`
}

// UserLinks holds the photographer's profile links.
type UserLinks struct {
	HTML string `json:"html"`
}

// PhotoLinks holds the photo-level links. DownloadLocation is the
// endpoint Unsplash requires servers to hit when a photo is downloaded.
type PhotoLinks struct {
	Self             string `json:"self"`
	HTML             string `json:"html"`
	Download         string `json:"download"`
	DownloadLocation string `json:"download_location"`
}

// SearchPhotosResult is the response payload of the photo search endpoint.
type SearchPhotosResult struct {
	Total      int     `json:"total"`
	TotalPages int     `json:"total_pages"`
	Results    []Photo `json:"results"`
}

// Quality names a photo resolution variant.
type Quality string

const (
	QualityRaw     Quality = "raw"
	QualityFull    Quality = "full"
	QualityRegular Quality = "regular"
	QualitySmall   Quality = "small"
	QualityThumb   Quality = "thumb"
)

// ParseQuality maps a quality string onto a known Quality, defaulting to
// regular for unrecognised or empty values.
func ParseQuality(s string) Quality {
	switch Quality(s) {
	case QualityRaw, QualityFull, QualityRegular, QualitySmall, QualityThumb:
		return Quality(s)
	default:
		return QualityRegular
	}
}

// ForQuality returns the URL matching the requested quality, falling back
// to the regular variant for unrecognised values.
func (u PhotoURLs) ForQuality(q Quality) string {
	urls := map[Quality]string{
		QualityRaw:     u.Raw,
		QualityFull:    u.Full,
		QualityRegular: u.Regular,
		QualitySmall:   u.Small,
		QualityThumb:   u.Thumb,
	}
	if url, ok := urls[q]; ok && url != "" {
		return url
	}
	return u.Regular
}

// noDescription is used when a photo carries neither a description nor an
// alt description.
const noDescription = "No description available"

// Image is the outward-facing projection of a Photo returned in tool
// responses.
type Image struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	Width       int        `json:"width"`
	Height      int        `json:"height"`
	URLs        PhotoURLs  `json:"urls"`
	User        ImageUser  `json:"user"`
	Links       ImageLinks `json:"links"`
}

// ImageUser carries the attribution fields for the photographer.
type ImageUser struct {
	Name        string `json:"name"`
	Username    string `json:"username"`
	ProfileLink string `json:"profileLink"`
}

// ImageLinks carries the photo page and download links.
type ImageLinks struct {
	HTML     string `json:"html"`
	Download string `json:"download"`
}

// NewImage projects a Photo into an Image. The description falls back to
// the alt description, then to a placeholder, so it is never empty.
func NewImage(p Photo) Image {
	description := p.Description
	if description == "" {
		description = p.AltDescription
	}
	if description == "" {
		description = noDescription
	}

	return Image{
		ID:          p.ID,
		Description: description,
		Width:       p.Width,
		Height:      p.Height,
		URLs:        p.URLs,
		User: ImageUser{
			Name:        p.User.Name,
			Username:    p.User.Username,
			ProfileLink: p.User.Links.HTML,
		},
		Links: ImageLinks{
			HTML:     p.Links.HTML,
			Download: p.Links.Download,
		},
	}
}

// NewImages projects a slice of Photos into Images, preserving order.
func NewImages(photos []Photo) []Image {
	images := make([]Image, 0, len(photos))
	for _, p := range photos {
		images = append(images, NewImage(p))
	}
	return images
}
