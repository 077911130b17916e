// Package viewport derives device and breakpoint classifications from runtime
// viewport signals. Classification is pure and recomputed per signal; nothing
// here is persisted.
package viewport

const (
	mobileMaxWidth = 768
	tabletMaxWidth = 1024
)

const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

type Classification struct {
	IsMobile      bool   `json:"isMobile"`
	IsTablet      bool   `json:"isTablet"`
	IsDesktop     bool   `json:"isDesktop"`
	ScreenWidth   int    `json:"screenWidth"`
	ScreenHeight  int    `json:"screenHeight"`
	Orientation   string `json:"orientation"`
	IsTouchDevice bool   `json:"isTouchDevice"`
}

// Classify maps a viewport to exactly one device class: mobile <768,
// tablet [768,1024), desktop >=1024. Orientation is portrait iff height
// exceeds width.
func Classify(width, height int, touch bool) Classification {
	orientation := OrientationLandscape
	if height > width {
		orientation = OrientationPortrait
	}

	return Classification{
		IsMobile:      width < mobileMaxWidth,
		IsTablet:      width >= mobileMaxWidth && width < tabletMaxWidth,
		IsDesktop:     width >= tabletMaxWidth,
		ScreenWidth:   width,
		ScreenHeight:  height,
		Orientation:   orientation,
		IsTouchDevice: touch,
	}
}
