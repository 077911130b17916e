package viewport

type Breakpoint string

const (
	BreakpointXS Breakpoint = "xs"
	BreakpointSM Breakpoint = "sm"
	BreakpointMD Breakpoint = "md"
	BreakpointLG Breakpoint = "lg"
	BreakpointXL Breakpoint = "xl"
)

// BreakpointFor selects exactly one bucket: xs<480, sm[480,768), md[768,1024),
// lg[1024,1280), xl>=1280.
func BreakpointFor(width int) Breakpoint {
	switch {
	case width < 480:
		return BreakpointXS
	case width < 768:
		return BreakpointSM
	case width < 1024:
		return BreakpointMD
	case width < 1280:
		return BreakpointLG
	default:
		return BreakpointXL
	}
}

// ResponsiveValue returns the value registered for the exact current bucket,
// else the explicit default. There is deliberately no nearest-bucket search.
func ResponsiveValue[T any](current Breakpoint, values map[Breakpoint]T, fallback T) T {
	if value, ok := values[current]; ok {
		return value
	}
	return fallback
}
