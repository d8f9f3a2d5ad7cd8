package media

// BlendMode selects how bitmap content is composited over what is
// already in the target. The zero value is the usual source-over.
type BlendMode int

const (
	BlendSourceOver BlendMode = iota
	BlendClear
	BlendSource
	BlendDestination
	BlendDestinationOver
	BlendSourceIn
	BlendDestinationIn
	BlendSourceOut
	BlendDestinationOut
	BlendSourceAtop
	BlendDestinationAtop
	BlendXor
	BlendPlus
	BlendModulate
	BlendMultiply
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
	BlendDifference
	BlendExclusion
)

func (m BlendMode) String() string {
	switch m {
	case BlendSourceOver:
		return "SourceOver"
	case BlendClear:
		return "Clear"
	case BlendSource:
		return "Source"
	case BlendDestination:
		return "Destination"
	case BlendDestinationOver:
		return "DestinationOver"
	case BlendSourceIn:
		return "SourceIn"
	case BlendDestinationIn:
		return "DestinationIn"
	case BlendSourceOut:
		return "SourceOut"
	case BlendDestinationOut:
		return "DestinationOut"
	case BlendSourceAtop:
		return "SourceAtop"
	case BlendDestinationAtop:
		return "DestinationAtop"
	case BlendXor:
		return "Xor"
	case BlendPlus:
		return "Plus"
	case BlendModulate:
		return "Modulate"
	case BlendMultiply:
		return "Multiply"
	case BlendScreen:
		return "Screen"
	case BlendOverlay:
		return "Overlay"
	case BlendDarken:
		return "Darken"
	case BlendLighten:
		return "Lighten"
	case BlendDifference:
		return "Difference"
	case BlendExclusion:
		return "Exclusion"
	default:
		return "Unknown"
	}
}
